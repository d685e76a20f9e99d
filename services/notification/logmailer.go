package notification

import (
	"context"

	"meetbook/utils"

	"go.uber.org/zap"
)

// LogMailer records sends without delivering anything. It stands in for the
// real delivery collaborator in development and tests.
type LogMailer struct{}

func (LogMailer) SendEmail(ctx context.Context, to, subject, template string, data map[string]string) error {
	utils.GetLogger().Info("email send requested",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("template", template),
		zap.Any("data", data))
	return nil
}
