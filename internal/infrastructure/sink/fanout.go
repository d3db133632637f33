// Package sink fans a fraud report out to several report sinks.
package sink

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/jayanth2212/AgriSure/internal/domain/model"
	"github.com/jayanth2212/AgriSure/internal/domain/port"
)

// Fanout implements port.ReportSink by persisting to every sink
// concurrently. The primary sink's confirmation is returned; secondary sink
// failures are logged and do not fail the write.
type Fanout struct {
	primary   port.ReportSink
	secondary []port.ReportSink
	logger    *slog.Logger
}

func NewFanout(logger *slog.Logger, primary port.ReportSink, secondary ...port.ReportSink) *Fanout {
	return &Fanout{primary: primary, secondary: secondary, logger: logger}
}

func (f *Fanout) Persist(ctx context.Context, farmerID string, assessment *model.FraudAssessment, externalRecordHash string) (port.Confirmation, error) {
	var (
		g       errgroup.Group
		primary port.Confirmation
		errs    = make([]error, len(f.secondary))
	)

	g.Go(func() error {
		c, err := f.primary.Persist(ctx, farmerID, assessment, externalRecordHash)
		if err != nil {
			return err
		}
		primary = c
		return nil
	})
	for i, s := range f.secondary {
		g.Go(func() error {
			c, err := s.Persist(ctx, farmerID, assessment, externalRecordHash)
			if err != nil {
				errs[i] = err
				return nil
			}
			f.logger.Debug("secondary report sink confirmed", "sink", c.Sink, "reference", c.Reference)
			return nil
		})
	}

	err := g.Wait()
	if serr := errors.Join(errs...); serr != nil {
		f.logger.Warn("secondary report sink failed",
			"assessment_id", assessment.ID(),
			"error", serr,
		)
	}
	if err != nil {
		return port.Confirmation{}, fmt.Errorf("failed to persist fraud report: %w", err)
	}
	return primary, nil
}
