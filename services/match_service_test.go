package services

import (
	"errors"
	"testing"
	"time"

	"chess-ladder-api/models"

	"github.com/bmizerany/assert"
)

func TestCreateMatchEqualProvisionalPlayers(t *testing.T) {
	db := newTestDB(t)
	svc := NewMatchService(db)

	white := createTestPlayer(t, db, "White")
	black := createTestPlayer(t, db, "Black")
	setRating(t, db, white.ID, models.TimeCategory5Min, 1000, 10)
	setRating(t, db, black.ID, models.TimeCategory5Min, 1000, 10)

	match, err := svc.CreateMatch(matchRequest(white.ID, black.ID, models.ResultWhiteWin))
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, 1000, match.WhiteEloBefore)
	assert.Equal(t, 1020, match.WhiteEloAfter)
	assert.Equal(t, 20, match.WhiteEloChange)
	assert.Equal(t, 980, match.BlackEloAfter)
	assert.Equal(t, -20, match.BlackEloChange)
	assert.Equal(t, "White", match.WhitePlayer.Name)
	assert.Equal(t, "Black", match.BlackPlayer.Name)

	whiteRating := getRating(t, db, white.ID, models.TimeCategory5Min)
	assert.Equal(t, 1020, whiteRating.CurrentElo)
	assert.Equal(t, 1020, whiteRating.PeakElo)
	assert.Equal(t, 11, whiteRating.GamesPlayed)
	assert.Equal(t, 1, whiteRating.Wins)
	assert.Equal(t, 0, whiteRating.Losses)
	assert.Equal(t, 0, whiteRating.Draws)

	blackRating := getRating(t, db, black.ID, models.TimeCategory5Min)
	assert.Equal(t, 980, blackRating.CurrentElo)
	assert.Equal(t, 1000, blackRating.PeakElo) // loser keeps the prior peak
	assert.Equal(t, 11, blackRating.GamesPlayed)
	assert.Equal(t, 0, blackRating.Wins)
	assert.Equal(t, 1, blackRating.Losses)

	// The other time category is untouched.
	rapid := getRating(t, db, white.ID, models.TimeCategory10Min)
	assert.Equal(t, 1000, rapid.CurrentElo)
	assert.Equal(t, 0, rapid.GamesPlayed)

	var history []models.EloHistory
	if err := db.Where("match_id = ?", match.ID).Order("player_id ASC").Find(&history).Error; err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 2, len(history))
	for _, entry := range history {
		assert.Equal(t, models.TimeCategory5Min, entry.TimeCategory)
		assert.Equal(t, match.PlayedAt.UTC(), entry.RecordedAt.UTC())
	}
}

func TestCreateMatchEstablishedPlayers(t *testing.T) {
	db := newTestDB(t)
	svc := NewMatchService(db)

	white := createTestPlayer(t, db, "Favorite")
	black := createTestPlayer(t, db, "Underdog")
	setRating(t, db, white.ID, models.TimeCategory5Min, 1200, 50)
	setRating(t, db, black.ID, models.TimeCategory5Min, 1000, 50)

	match, err := svc.CreateMatch(matchRequest(white.ID, black.ID, models.ResultWhiteWin))
	if err != nil {
		t.Fatal(err)
	}

	// K=32 for both; the favorite's expected score is ~0.76, so it gains 8.
	assert.Equal(t, 1208, match.WhiteEloAfter)
	assert.Equal(t, 8, match.WhiteEloChange)
	assert.Equal(t, 992, match.BlackEloAfter)
	assert.Equal(t, -8, match.BlackEloChange)
}

func TestCreateMatchDraw(t *testing.T) {
	db := newTestDB(t)
	svc := NewMatchService(db)

	white := createTestPlayer(t, db, "A")
	black := createTestPlayer(t, db, "B")

	match, err := svc.CreateMatch(matchRequest(white.ID, black.ID, models.ResultDraw))
	if err != nil {
		t.Fatal(err)
	}

	// Equal ratings, equal K: a draw changes nothing but the counters.
	assert.Equal(t, 0, match.WhiteEloChange)
	assert.Equal(t, 0, match.BlackEloChange)

	for _, id := range []uint{white.ID, black.ID} {
		rating := getRating(t, db, id, models.TimeCategory5Min)
		assert.Equal(t, 1000, rating.CurrentElo)
		assert.Equal(t, 1, rating.GamesPlayed)
		assert.Equal(t, 1, rating.Draws)
		assert.Equal(t, 0, rating.Wins)
		assert.Equal(t, 0, rating.Losses)
	}
}

func TestCreateMatchSamePlayerRejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewMatchService(db)

	player := createTestPlayer(t, db, "Solo")

	_, err := svc.CreateMatch(matchRequest(player.ID, player.ID, models.ResultDraw))
	if !errors.Is(err, ErrSamePlayer) {
		t.Fatalf("expected ErrSamePlayer, got %v", err)
	}

	var matchCount int64
	db.Model(&models.Match{}).Count(&matchCount)
	assert.Equal(t, int64(0), matchCount)

	rating := getRating(t, db, player.ID, models.TimeCategory5Min)
	assert.Equal(t, 0, rating.GamesPlayed)
}

func TestCreateMatchUnknownPlayer(t *testing.T) {
	db := newTestDB(t)
	svc := NewMatchService(db)

	white := createTestPlayer(t, db, "Known")

	_, err := svc.CreateMatch(matchRequest(white.ID, white.ID+999, models.ResultWhiteWin))
	if !errors.Is(err, ErrPlayerNotFound) {
		t.Fatalf("expected ErrPlayerNotFound, got %v", err)
	}
}

func TestCreateMatchMissingRatingRollsBack(t *testing.T) {
	db := newTestDB(t)
	svc := NewMatchService(db)

	white := createTestPlayer(t, db, "Intact")
	black := createTestPlayer(t, db, "Corrupt")

	// Simulate a data-integrity violation: the black player exists but has
	// lost its 5min rating row.
	if err := db.Where("player_id = ? AND time_category = ?", black.ID, models.TimeCategory5Min).
		Delete(&models.PlayerRating{}).Error; err != nil {
		t.Fatal(err)
	}

	_, err := svc.CreateMatch(matchRequest(white.ID, black.ID, models.ResultWhiteWin))
	if !errors.Is(err, ErrRatingNotFound) {
		t.Fatalf("expected ErrRatingNotFound, got %v", err)
	}

	// Nothing was written: no match, no history, white's row untouched.
	var matchCount, historyCount int64
	db.Model(&models.Match{}).Count(&matchCount)
	db.Model(&models.EloHistory{}).Count(&historyCount)
	assert.Equal(t, int64(0), matchCount)
	assert.Equal(t, int64(0), historyCount)

	whiteRating := getRating(t, db, white.ID, models.TimeCategory5Min)
	assert.Equal(t, 1000, whiteRating.CurrentElo)
	assert.Equal(t, 0, whiteRating.GamesPlayed)
}

func TestSequentialMatchesCompose(t *testing.T) {
	db := newTestDB(t)
	svc := NewMatchService(db)

	a := createTestPlayer(t, db, "A")
	b := createTestPlayer(t, db, "B")
	c := createTestPlayer(t, db, "C")

	if _, err := svc.CreateMatch(matchRequest(a.ID, b.ID, models.ResultWhiteWin)); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.CreateMatch(matchRequest(c.ID, a.ID, models.ResultDraw)); err != nil {
		t.Fatal(err)
	}

	// Both matches composed on A's row: games played advanced by exactly 2,
	// the second match read the first one's committed rating.
	rating := getRating(t, db, a.ID, models.TimeCategory5Min)
	assert.Equal(t, 2, rating.GamesPlayed)
	assert.Equal(t, 1, rating.Wins)
	assert.Equal(t, 1, rating.Draws)

	var second models.Match
	if err := db.Where("white_player_id = ?", c.ID).First(&second).Error; err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 1020, second.BlackEloBefore)
}

func TestPeakRatingMonotonic(t *testing.T) {
	db := newTestDB(t)
	svc := NewMatchService(db)

	a := createTestPlayer(t, db, "A")
	b := createTestPlayer(t, db, "B")

	if _, err := svc.CreateMatch(matchRequest(a.ID, b.ID, models.ResultWhiteWin)); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.CreateMatch(matchRequest(a.ID, b.ID, models.ResultBlackWin)); err != nil {
		t.Fatal(err)
	}

	rating := getRating(t, db, a.ID, models.TimeCategory5Min)
	assert.Equal(t, 998, rating.CurrentElo)
	assert.Equal(t, 1020, rating.PeakElo) // high-water mark survives the loss
}

func TestGetMatchesFiltersAndPagination(t *testing.T) {
	db := newTestDB(t)
	svc := NewMatchService(db)

	a := createTestPlayer(t, db, "A")
	b := createTestPlayer(t, db, "B")
	c := createTestPlayer(t, db, "C")

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	reqs := []models.CreateMatchRequest{
		{TimeCategory: models.TimeCategory5Min, WhitePlayerID: a.ID, BlackPlayerID: b.ID, Result: models.ResultWhiteWin, PlayedAt: base},
		{TimeCategory: models.TimeCategory10Min, WhitePlayerID: b.ID, BlackPlayerID: c.ID, Result: models.ResultDraw, PlayedAt: base.AddDate(0, 0, 1)},
		{TimeCategory: models.TimeCategory5Min, WhitePlayerID: c.ID, BlackPlayerID: a.ID, Result: models.ResultBlackWin, PlayedAt: base.AddDate(0, 0, 2)},
	}
	for _, req := range reqs {
		if _, err := svc.CreateMatch(req); err != nil {
			t.Fatal(err)
		}
	}

	// No filters: everything, newest first.
	all, err := svc.GetMatches(MatchFilters{})
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 3, len(all))
	assert.Equal(t, c.ID, all[0].WhitePlayerID)

	// Category filter.
	blitz := models.TimeCategory5Min
	filtered, err := svc.GetMatches(MatchFilters{TimeCategory: &blitz})
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 2, len(filtered))

	// Participant filter matches either color.
	byPlayer, err := svc.GetMatches(MatchFilters{PlayerID: &b.ID})
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 2, len(byPlayer))

	// Offset skips the newest.
	paged, err := svc.GetMatches(MatchFilters{Limit: 2, Offset: 1})
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 2, len(paged))
	assert.Equal(t, b.ID, paged[0].WhitePlayerID)
}
