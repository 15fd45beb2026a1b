package utils

import (
	"math"
	"testing"

	"chess-ladder-api/models"

	"github.com/bmizerany/assert"
)

func TestExpectedScoreSymmetry(t *testing.T) {
	pairs := [][2]int{
		{1000, 1000},
		{1200, 1000},
		{800, 2200},
		{-100, 50},
		{1500, 1499},
	}
	for _, p := range pairs {
		sum := ExpectedScore(p[0], p[1]) + ExpectedScore(p[1], p[0])
		if math.Abs(sum-1) > 1e-12 {
			t.Errorf("ExpectedScore(%d,%d)+ExpectedScore(%d,%d) = %v, want 1", p[0], p[1], p[1], p[0], sum)
		}
	}
}

func TestExpectedScoreEqualRatings(t *testing.T) {
	for _, r := range []int{0, 1000, 1500, 2800, -200} {
		got := ExpectedScore(r, r)
		if math.Abs(got-0.5) > 1e-12 {
			t.Errorf("ExpectedScore(%d,%d) = %v, want 0.5", r, r, got)
		}
	}
}

func TestExpectedScoreRange(t *testing.T) {
	got := ExpectedScore(800, 2200)
	if got <= 0 || got >= 1 {
		t.Errorf("ExpectedScore(800,2200) = %v, want strictly in (0,1)", got)
	}
}

func TestKFactorTiers(t *testing.T) {
	assert.Equal(t, KFactorProvisional, KFactor(0))
	assert.Equal(t, KFactorProvisional, KFactor(10))
	assert.Equal(t, KFactorProvisional, KFactor(29))
	// The boundary at exactly the threshold uses the established factor.
	assert.Equal(t, KFactorEstablished, KFactor(30))
	assert.Equal(t, KFactorEstablished, KFactor(31))
	assert.Equal(t, KFactorEstablished, KFactor(500))
}

func TestNewRatingRoundsHalfAwayFromZero(t *testing.T) {
	// K=25 against an even opponent puts the delta exactly at ±12.5:
	// 1012.5 rounds to 1013, 987.5 rounds to 988 (both totals are positive,
	// so away-from-zero means up).
	assert.Equal(t, 1013, NewRating(1000, 0.5, 1, 25))
	assert.Equal(t, 988, NewRating(1000, 0.5, 0, 25))
}

func TestNewRatingIsUnclamped(t *testing.T) {
	// No floor at MinElo: a loss can push a rating negative.
	assert.Equal(t, -26, NewRating(10, 0.9, 0, 40))
}

func TestProcessMatchResultEqualProvisional(t *testing.T) {
	// Two 1000-rated players with 10 games each (K=40): the winner gains 20,
	// the loser drops 20.
	res := ProcessMatchResult(
		PlayerSnapshot{Elo: 1000, GamesPlayed: 10},
		PlayerSnapshot{Elo: 1000, GamesPlayed: 10},
		models.ResultWhiteWin,
	)

	assert.Equal(t, 1000, res.White.EloBefore)
	assert.Equal(t, 1020, res.White.EloAfter)
	assert.Equal(t, 20, res.White.EloChange)
	assert.Equal(t, 980, res.Black.EloAfter)
	assert.Equal(t, -20, res.Black.EloChange)
}

func TestProcessMatchResultEstablished(t *testing.T) {
	// 1200 beats 1000, both established (K=32). Expected score for white is
	// 1/(1+10^(-200/400)) ≈ 0.7597, so the favorite gains round(32*0.2403) = 8.
	res := ProcessMatchResult(
		PlayerSnapshot{Elo: 1200, GamesPlayed: 50},
		PlayerSnapshot{Elo: 1000, GamesPlayed: 50},
		models.ResultWhiteWin,
	)

	assert.Equal(t, 1208, res.White.EloAfter)
	assert.Equal(t, 8, res.White.EloChange)
	assert.Equal(t, 992, res.Black.EloAfter)
	assert.Equal(t, -8, res.Black.EloChange)
}

func TestProcessMatchResultDrawEqualRatings(t *testing.T) {
	res := ProcessMatchResult(
		PlayerSnapshot{Elo: 1400, GamesPlayed: 40},
		PlayerSnapshot{Elo: 1400, GamesPlayed: 40},
		models.ResultDraw,
	)

	assert.Equal(t, 0, res.White.EloChange)
	assert.Equal(t, 0, res.Black.EloChange)
}

func TestProcessMatchResultSameTierZeroSum(t *testing.T) {
	// With both players in the same K tier, decisive changes are exact
	// negatives of each other.
	res := ProcessMatchResult(
		PlayerSnapshot{Elo: 1100, GamesPlayed: 50},
		PlayerSnapshot{Elo: 900, GamesPlayed: 60},
		models.ResultBlackWin,
	)

	assert.Equal(t, res.White.EloChange, -res.Black.EloChange)
}

func TestProcessMatchResultMixedTiers(t *testing.T) {
	// Provisional white (K=40) against established black (K=32) at equal
	// ratings: changes differ in magnitude, not just sign.
	res := ProcessMatchResult(
		PlayerSnapshot{Elo: 1000, GamesPlayed: 10},
		PlayerSnapshot{Elo: 1000, GamesPlayed: 50},
		models.ResultWhiteWin,
	)

	assert.Equal(t, 20, res.White.EloChange)
	assert.Equal(t, -16, res.Black.EloChange)
}

func TestProcessMatchResultDeterministic(t *testing.T) {
	white := PlayerSnapshot{Elo: 1327, GamesPlayed: 23}
	black := PlayerSnapshot{Elo: 1289, GamesPlayed: 31}

	first := ProcessMatchResult(white, black, models.ResultDraw)
	second := ProcessMatchResult(white, black, models.ResultDraw)

	assert.Equal(t, first, second)
}
