package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/polyview/moderation-api/databases"
	"github.com/polyview/moderation-api/models"
)

// Scheduler handles periodic background jobs for the moderation pipeline
type Scheduler struct {
	cron *cron.Cron
	RDB  databases.ReportDatabase
	EDB  databases.EntityDatabase
}

// NewScheduler creates a new scheduler instance
func NewScheduler(rDB databases.ReportDatabase, eDB databases.EntityDatabase) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithLocation(time.UTC)),
		RDB:  rDB,
		EDB:  eDB,
	}
}

// Start begins the scheduler with all registered jobs
func (s *Scheduler) Start() {
	// Resolved reports must leave their target flagged as illegal. A crash
	// between the status write and the flag write can break that, so sweep
	// every 15 minutes and re-apply any missing flags.
	_, err := s.cron.AddFunc("*/15 * * * *", s.repairResolvedReports)
	if err != nil {
		zap.S().Errorw("failed to register cascade repair job", "error", err)
	}

	s.cron.Start()
	zap.S().Info("Moderation scheduler started")
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("Moderation scheduler stopped")
}

// repairResolvedReports re-applies the illegality flag for resolved reports
// whose target never got flagged
func (s *Scheduler) repairResolvedReports() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	reports, err := s.RDB.Find(ctx, bson.M{"status": models.ReportStatusResolved})
	if err != nil {
		zap.S().Errorw("cascade repair: failed to list resolved reports", "error", err)
		return
	}

	repaired := 0
	for _, rep := range reports {
		flagged, err := s.EDB.ViolatesLaw(ctx, rep.Target.Kind, rep.Target.ID)
		if err != nil {
			if errors.Is(err, databases.ErrEntityNotFound) {
				// target was deleted after resolution, nothing to repair
				continue
			}
			zap.S().Errorw("cascade repair: failed to read violation flag",
				"reportId", rep.ID.Hex(),
				"error", err,
			)
			continue
		}
		if flagged {
			continue
		}

		if err := s.EDB.SetViolatesLaw(ctx, rep.Target.Kind, rep.Target.ID, true, nil); err != nil {
			zap.S().Errorw("cascade repair: failed to flag target",
				"reportId", rep.ID.Hex(),
				"kind", rep.Target.Kind,
				"targetId", rep.Target.ID,
				"error", err,
			)
			continue
		}
		repaired++
		zap.S().Infow("cascade repair: flagged target for resolved report",
			"reportId", rep.ID.Hex(),
			"kind", rep.Target.Kind,
			"targetId", rep.Target.ID,
		)
	}

	if repaired > 0 {
		zap.S().Infow("cascade repair pass complete", "repaired", repaired)
	}
}
