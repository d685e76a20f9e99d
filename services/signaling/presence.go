package signaling

import (
	"context"
	"fmt"
	"time"

	"meetbook/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Presence mirrors room occupancy to a shared cache so the meeting-access
// endpoint can report whether a peer is already waiting. Advisory only; the
// in-memory registry stays authoritative.
type Presence interface {
	SetOccupancy(roomID string, count int)
	Occupancy(roomID string) int
}

const presenceTTL = 30 * time.Second

// RedisPresence stores occupancy counters with a short TTL so stale entries
// age out after a crash.
type RedisPresence struct {
	Client *redis.Client
}

func presenceKey(roomID string) string {
	return fmt.Sprintf("meeting:presence:%s", roomID)
}

func (p *RedisPresence) SetOccupancy(roomID string, count int) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var err error
	if count == 0 {
		err = p.Client.Del(ctx, presenceKey(roomID)).Err()
	} else {
		err = p.Client.Set(ctx, presenceKey(roomID), count, presenceTTL).Err()
	}
	if err != nil {
		utils.GetLogger().Warn("failed to mirror room presence",
			zap.String("roomID", roomID), zap.Error(err))
	}
}

func (p *RedisPresence) Occupancy(roomID string) int {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	count, err := p.Client.Get(ctx, presenceKey(roomID)).Int()
	if err != nil {
		return 0
	}
	return count
}
