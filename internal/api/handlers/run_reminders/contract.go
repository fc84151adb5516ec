package run_reminders

import (
	"context"

	runReminders "github.com/velline/salon-booking-service/internal/usecase/run_reminders"
)

type RunRemindersUseCase interface {
	Execute(ctx context.Context, req *runReminders.Request) (*runReminders.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
