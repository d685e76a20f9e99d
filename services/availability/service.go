package availability

import (
	"fmt"
	"strings"
	"time"

	"meetbook/models"
	"meetbook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Create validates and persists a new template for the host.
func (svc *DefaultAvailabilityService) Create(hostID string, tpl models.AvailabilityTemplate) (*models.AvailabilityTemplate, error) {
	if err := validateTemplate(&tpl); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	tpl.ID = uuid.New().String()
	tpl.HostID = hostID
	tpl.CreatedAt = now
	tpl.UpdatedAt = now

	if err := svc.Repo.Create(&tpl); err != nil {
		return nil, err
	}
	utils.GetLogger().Info("availability template created",
		zap.String("templateID", tpl.ID), zap.String("hostID", hostID))
	return &tpl, nil
}

// GetForHost returns all templates owned by the host.
func (svc *DefaultAvailabilityService) GetForHost(hostID string) ([]models.AvailabilityTemplate, error) {
	return svc.Repo.GetByHost(hostID)
}

// ListAll returns every host's templates, for guests picking a slot.
func (svc *DefaultAvailabilityService) ListAll() ([]models.AvailabilityTemplate, error) {
	return svc.Repo.ListAll()
}

// Update validates and replaces an existing template owned by the host.
func (svc *DefaultAvailabilityService) Update(hostID, id string, tpl models.AvailabilityTemplate) (*models.AvailabilityTemplate, error) {
	if err := validateTemplate(&tpl); err != nil {
		return nil, err
	}
	if err := svc.Repo.Update(id, hostID, &tpl); err != nil {
		return nil, err
	}
	return svc.Repo.GetByID(id)
}

// Delete removes a template owned by the host. Bookings created against it
// keep their snapshotted buffers and remain valid.
func (svc *DefaultAvailabilityService) Delete(hostID, id string) error {
	return svc.Repo.Delete(id, hostID)
}

func validateTemplate(tpl *models.AvailabilityTemplate) error {
	if len(tpl.Durations) == 0 {
		return fmt.Errorf("allowed durations must not be empty")
	}
	for _, d := range tpl.Durations {
		if d <= 0 {
			return fmt.Errorf("allowed duration %d must be positive", d)
		}
	}
	if tpl.BufferBefore < 0 || tpl.BufferAfter < 0 {
		return fmt.Errorf("buffer minutes must not be negative")
	}
	if tpl.MaxPerDay <= 0 {
		return fmt.Errorf("max bookings per day must be positive")
	}
	if _, err := time.LoadLocation(tpl.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", tpl.Timezone, err)
	}
	for _, slot := range tpl.Weekly {
		if _, ok := weekdayNames[strings.ToLower(slot.Day)]; !ok {
			return fmt.Errorf("invalid weekday %q", slot.Day)
		}
		startMin, err := parseLocalTime(slot.Start)
		if err != nil {
			return fmt.Errorf("invalid slot start %q: %w", slot.Start, err)
		}
		endMin, err := parseLocalTime(slot.End)
		if err != nil {
			return fmt.Errorf("invalid slot end %q: %w", slot.End, err)
		}
		if endMin <= startMin {
			return fmt.Errorf("slot end %q must be after start %q", slot.End, slot.Start)
		}
	}
	for _, d := range tpl.BlockedDates {
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return fmt.Errorf("invalid blocked date %q: %w", d, err)
		}
	}
	return nil
}

// parseLocalTime converts "HH:MM" to minutes from midnight.
func parseLocalTime(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}
