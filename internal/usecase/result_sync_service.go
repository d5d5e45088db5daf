package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/pompeytony/wff-predictor/internal/domain/fixture"
	"github.com/pompeytony/wff-predictor/internal/platform/logging"
)

// FeedScore is a finished score reported by the upstream feed.
type FeedScore struct {
	HomeTeam  string
	AwayTeam  string
	HomeGoals int
	AwayGoals int
}

// ScoreFeed provides finished scores from an external source.
type ScoreFeed interface {
	FinishedScores(ctx context.Context) ([]FeedScore, error)
}

type SyncResultsOutcome struct {
	FeedCount    int `json:"feed_count"`
	AppliedCount int `json:"applied_count"`
	SkippedCount int `json:"skipped_count"`
}

// ResultSyncService pulls finished scores from the feed and runs the
// result cascade for each fixture it can match.
type ResultSyncService struct {
	feed        ScoreFeed
	fixtureRepo fixture.Repository
	resultSvc   *ResultService
	logger      *logging.Logger
}

func NewResultSyncService(
	feed ScoreFeed,
	fixtureRepo fixture.Repository,
	resultSvc *ResultService,
	logger *logging.Logger,
) *ResultSyncService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ResultSyncService{
		feed:        feed,
		fixtureRepo: fixtureRepo,
		resultSvc:   resultSvc,
		logger:      logger,
	}
}

// SyncResults matches feed scores to fixtures by home and away team name.
// Fixtures that already have a result are re-entered only when the feed
// disagrees with the stored score; unmatched feed rows are skipped.
func (s *ResultSyncService) SyncResults(ctx context.Context) (SyncResultsOutcome, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultSyncService.SyncResults")
	defer span.End()

	if s.feed == nil {
		return SyncResultsOutcome{}, fmt.Errorf("%w: score feed is not configured", ErrDependencyUnavailable)
	}

	scores, err := s.feed.FinishedScores(ctx)
	if err != nil {
		return SyncResultsOutcome{}, fmt.Errorf("%w: fetch finished scores: %v", ErrDependencyUnavailable, err)
	}

	fixtures, err := s.fixtureRepo.List(ctx)
	if err != nil {
		return SyncResultsOutcome{}, fmt.Errorf("list fixtures for result sync: %w", err)
	}
	fixtureByMatch := make(map[string]fixture.Fixture, len(fixtures))
	for _, fx := range fixtures {
		fixtureByMatch[matchKey(fx.HomeTeam, fx.AwayTeam)] = fx
	}

	outcome := SyncResultsOutcome{FeedCount: len(scores)}
	for _, score := range scores {
		fx, ok := fixtureByMatch[matchKey(score.HomeTeam, score.AwayTeam)]
		if !ok {
			outcome.SkippedCount++
			s.logger.WarnContext(ctx, "feed score has no matching fixture",
				"home_team", score.HomeTeam,
				"away_team", score.AwayTeam,
			)
			continue
		}
		if fx.HasResult() && *fx.HomeScore == score.HomeGoals && *fx.AwayScore == score.AwayGoals {
			outcome.SkippedCount++
			continue
		}

		if _, err := s.resultSvc.EnterResult(ctx, fx.ID, score.HomeGoals, score.AwayGoals); err != nil {
			return outcome, fmt.Errorf("apply synced result fixture=%s: %w", fx.ID, err)
		}
		outcome.AppliedCount++
	}

	s.logger.InfoContext(ctx, "result sync finished",
		"feed_count", outcome.FeedCount,
		"applied_count", outcome.AppliedCount,
		"skipped_count", outcome.SkippedCount,
	)
	return outcome, nil
}

func matchKey(homeTeam, awayTeam string) string {
	return strings.ToLower(strings.TrimSpace(homeTeam)) + "|" + strings.ToLower(strings.TrimSpace(awayTeam))
}
