package usecase

import "time"

// RankRows exposes rankRows to external tests.
var RankRows = rankRows

// SetNow overrides the service clock for external tests.
func (s *PredictionService) SetNow(fn func() time.Time) {
	s.now = fn
}
