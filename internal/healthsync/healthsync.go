// Package healthsync exports completed workout sessions to an external
// health platform. The export is best effort: a completed session is
// considered complete once local persistence succeeds, and platform failures
// are only logged, never surfaced to the user as an error.
package healthsync

import (
	"context"

	"alcyxob/reptrack/internal/domain"

	"github.com/sirupsen/logrus"
)

// Exporter sends a finalized session to the health platform.
type Exporter interface {
	ExportSession(ctx context.Context, session *domain.WorkoutSession) error
}

// logExporter records the export in the application log. It stands in for a
// real platform client in deployments without one, and is what the platform
// client wraps for its own logging.
type logExporter struct {
	log      *logrus.Logger
	platform string
}

// NewLogExporter creates an exporter that only logs.
func NewLogExporter(log *logrus.Logger, platform string) Exporter {
	return &logExporter{log: log, platform: platform}
}

func (e *logExporter) ExportSession(_ context.Context, session *domain.WorkoutSession) error {
	e.log.WithFields(logrus.Fields{
		"platform":    e.platform,
		"sessionId":   session.ID.Hex(),
		"kind":        session.Kind,
		"durationSec": session.TotalDurationSec,
		"volumeKg":    session.TotalVolumeKg,
		"distanceM":   session.TotalDistanceM,
	}).Info("exported session to health platform")
	return nil
}

// noopExporter is used when health sync is disabled in configuration.
type noopExporter struct{}

// NewNoopExporter creates an exporter that does nothing.
func NewNoopExporter() Exporter {
	return noopExporter{}
}

func (noopExporter) ExportSession(context.Context, *domain.WorkoutSession) error {
	return nil
}
