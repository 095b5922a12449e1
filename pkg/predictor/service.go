package predictor

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"landlink/pkg/session"
)

const OpPredict = "predictor.predict"

// Service runs one prediction per session at a time; while it computes the
// submit control is considered disabled.
type Service struct {
	est   Estimator
	delay time.Duration
	log   *zap.Logger
}

func NewService(est Estimator, delay time.Duration, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{est: est, delay: delay, log: log}
}

func (s *Service) Computing(sess *session.Session) bool { return sess.Busy(OpPredict) }

func (s *Service) Predict(ctx context.Context, sess *session.Session, in Input) (Result, error) {
	release, err := sess.Begin(OpPredict)
	if err != nil {
		return Result{}, err
	}
	defer release()

	if s.delay > 0 {
		t := time.NewTimer(s.delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		case <-t.C:
		}
	}
	res, err := s.est.Estimate(ctx, in)
	if err != nil {
		return Result{}, fmt.Errorf("estimate: %w", err)
	}
	s.log.Debug("yield predicted",
		zap.String("uid", sess.UserID()),
		zap.String("crop", res.Crop),
		zap.Float64("yield", res.PredictedYield),
		zap.Int("confidence", res.ConfidenceLevel))
	return res, nil
}
