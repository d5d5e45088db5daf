package prediction

import (
	"errors"
	"testing"
)

func TestScore(t *testing.T) {
	t.Parallel()

	// Final score for every case: home 2, away 1.
	cases := []struct {
		name string
		p    Prediction
		want int
	}{
		{
			name: "exact scoreline",
			p:    Prediction{HomeGoals: 2, AwayGoals: 1},
			want: PointsExactScore,
		},
		{
			name: "correct result wrong score",
			p:    Prediction{HomeGoals: 3, AwayGoals: 1},
			want: PointsCorrectResult,
		},
		{
			name: "wrong result draw",
			p:    Prediction{HomeGoals: 1, AwayGoals: 1},
			want: 0,
		},
		{
			name: "wrong result away win",
			p:    Prediction{HomeGoals: 0, AwayGoals: 2},
			want: 0,
		},
		{
			name: "joker doubles exact score",
			p:    Prediction{HomeGoals: 2, AwayGoals: 1, IsJoker: true},
			want: PointsExactScore * 2,
		},
		{
			name: "joker doubles correct result",
			p:    Prediction{HomeGoals: 4, AwayGoals: 2, IsJoker: true},
			want: PointsCorrectResult * 2,
		},
		{
			name: "joker doubles zero",
			p:    Prediction{HomeGoals: 0, AwayGoals: 0, IsJoker: true},
			want: 0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := Score(tc.p, 2, 1); got != tc.want {
				t.Fatalf("Score(%+v, 2, 1) = %d, want %d", tc.p, got, tc.want)
			}
		})
	}
}

func TestScore_Deterministic(t *testing.T) {
	t.Parallel()

	p := Prediction{HomeGoals: 1, AwayGoals: 0, IsJoker: true}
	first := Score(p, 1, 0)
	for i := 0; i < 10; i++ {
		if got := Score(p, 1, 0); got != first {
			t.Fatalf("Score is not deterministic: got %d then %d", first, got)
		}
	}
}

func TestValidateBatch(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		items   []Prediction
		wantErr error
	}{
		{
			name:    "empty batch",
			items:   nil,
			wantErr: ErrEmptyBatch,
		},
		{
			name: "valid batch with one joker",
			items: []Prediction{
				{FixtureID: "fx-1", HomeGoals: 2, AwayGoals: 1, IsJoker: true},
				{FixtureID: "fx-2", HomeGoals: 0, AwayGoals: 0},
			},
		},
		{
			name: "two jokers rejected",
			items: []Prediction{
				{FixtureID: "fx-1", HomeGoals: 1, AwayGoals: 0, IsJoker: true},
				{FixtureID: "fx-2", HomeGoals: 2, AwayGoals: 2, IsJoker: true},
			},
			wantErr: ErrMultipleJokers,
		},
		{
			name: "duplicate fixture rejected",
			items: []Prediction{
				{FixtureID: "fx-1", HomeGoals: 1, AwayGoals: 0},
				{FixtureID: "fx-1", HomeGoals: 2, AwayGoals: 0},
			},
			wantErr: ErrDuplicateFixture,
		},
		{
			name: "negative goals rejected",
			items: []Prediction{
				{FixtureID: "fx-1", HomeGoals: -1, AwayGoals: 0},
			},
			wantErr: ErrNegativeGoals,
		},
		{
			name: "missing fixture id rejected",
			items: []Prediction{
				{HomeGoals: 1, AwayGoals: 0},
			},
			wantErr: ErrMissingFixtureRef,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateBatch(tc.items)
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("ValidateBatch returned %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("ValidateBatch returned %v, want %v", err, tc.wantErr)
			}
		})
	}
}
