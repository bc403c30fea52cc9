package session

import (
	"log/slog"

	"github.com/robfig/cron/v3"
)

// StartPruner schedules Revocations.Prune on the given cron spec and starts
// the scheduler. Callers stop it with Stop() on shutdown.
func StartPruner(revocations *Revocations, spec string, logger *slog.Logger) (*cron.Cron, error) {
	scheduler := cron.New()

	_, err := scheduler.AddFunc(spec, func() {
		removed := revocations.Prune()
		logger.Info("pruned expired session revocations", "removed", removed, "remaining", revocations.Len())
	})
	if err != nil {
		return nil, err
	}

	scheduler.Start()
	return scheduler, nil
}
