package utils

import (
	"math"

	"chess-ladder-api/models"
)

// ELO rating system constants. The K-factors and the provisional threshold
// must stay at 40/32/30: every rating already recorded was produced with
// these values.
const (
	StartingElo = 1000

	KFactorProvisional        = 40 // players with fewer than ProvisionalGamesThreshold games
	KFactorEstablished        = 32
	ProvisionalGamesThreshold = 30

	// Plausible rating range. The update path deliberately never clamps to
	// these bounds; ratings can drift below MinElo or above MaxElo.
	MinElo = 0
	MaxElo = 3000
)

// ExpectedScore returns the expected score of a player rated playerElo
// against an opponent rated opponentElo, using the standard logistic model.
// The result is strictly between 0 and 1, and
// ExpectedScore(a, b) + ExpectedScore(b, a) == 1.
func ExpectedScore(playerElo, opponentElo int) float64 {
	return 1.0 / (1.0 + math.Pow(10, float64(opponentElo-playerElo)/400.0))
}

// KFactor selects the rating sensitivity from a player's games-played count.
// Provisional players converge faster; established players drift slowly.
func KFactor(gamesPlayed int) int {
	if gamesPlayed < ProvisionalGamesThreshold {
		return KFactorProvisional
	}
	return KFactorEstablished
}

// NewRating applies one game outcome to a rating. actualScore is 1 for a
// win, 0.5 for a draw and 0 for a loss. The result is rounded to the nearest
// integer with ties going away from zero (math.Round).
func NewRating(currentElo int, expectedScore, actualScore float64, kFactor int) int {
	return int(math.Round(float64(currentElo) + float64(kFactor)*(actualScore-expectedScore)))
}

// PlayerSnapshot is one participant's pre-match state.
type PlayerSnapshot struct {
	Elo         int
	GamesPlayed int
}

// SideResult is the rating transition of one side of a match.
type SideResult struct {
	EloBefore int
	EloAfter  int
	EloChange int
}

// MatchEloResult holds the rating transitions of both sides.
type MatchEloResult struct {
	White SideResult
	Black SideResult
}

// actualScores maps a result tag to the (white, black) score pair.
func actualScores(result models.Result) (whiteScore, blackScore float64) {
	switch result {
	case models.ResultWhiteWin:
		return 1, 0
	case models.ResultBlackWin:
		return 0, 1
	default: // draw
		return 0.5, 0.5
	}
}

// ProcessMatchResult computes both sides' rating transitions for one match.
// Expected scores are derived from the two pre-match ratings only, so the
// outcome is symmetric and independent of computation order. Each side uses
// its own K-factor based on its own games-played count. Pure function: no
// I/O, identical inputs always produce identical outputs.
func ProcessMatchResult(white, black PlayerSnapshot, result models.Result) MatchEloResult {
	whiteScore, blackScore := actualScores(result)

	whiteExpected := ExpectedScore(white.Elo, black.Elo)
	blackExpected := ExpectedScore(black.Elo, white.Elo)

	whiteAfter := NewRating(white.Elo, whiteExpected, whiteScore, KFactor(white.GamesPlayed))
	blackAfter := NewRating(black.Elo, blackExpected, blackScore, KFactor(black.GamesPlayed))

	return MatchEloResult{
		White: SideResult{
			EloBefore: white.Elo,
			EloAfter:  whiteAfter,
			EloChange: whiteAfter - white.Elo,
		},
		Black: SideResult{
			EloBefore: black.Elo,
			EloAfter:  blackAfter,
			EloChange: blackAfter - black.Elo,
		},
	}
}
