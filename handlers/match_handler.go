package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"chess-ladder-api/models"
	"chess-ladder-api/services"

	"github.com/gin-gonic/gin"
)

type MatchHandler struct {
	matchService *services.MatchService
}

func NewMatchHandler(matchService *services.MatchService) *MatchHandler {
	return &MatchHandler{
		matchService: matchService,
	}
}

// CreateMatch records a completed match
// @Summary Record a match
// @Description Record a completed match; both players' ratings, counters and rating history are updated atomically
// @Tags matches
// @Accept json
// @Produce json
// @Param match body models.CreateMatchRequest true "Match data"
// @Success 201 {object} models.Match
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /matches [post]
func (h *MatchHandler) CreateMatch(c *gin.Context) {
	var req models.CreateMatchRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	match, err := h.matchService.CreateMatch(req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSamePlayer):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": err.Error(),
			})
		case errors.Is(err, services.ErrPlayerNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": err.Error(),
			})
		default:
			// Missing rating rows and storage failures both mean the
			// operation did not happen; nothing was written.
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to create match",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, match)
}

// GetMatches lists matches with filters and pagination
// @Summary List matches
// @Description Get matches most-recent-first with optional time category and participant filters
// @Tags matches
// @Produce json
// @Param timeCategory query string false "Time category" Enums(5min,10min)
// @Param playerId query int false "Filter by participant player ID"
// @Param limit query int false "Maximum matches to return (default: 20, max: 100)"
// @Param offset query int false "Number of matches to skip (default: 0)"
// @Success 200 {array} models.Match
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /matches [get]
func (h *MatchHandler) GetMatches(c *gin.Context) {
	var filters services.MatchFilters

	if categoryStr := c.Query("timeCategory"); categoryStr != "" {
		category := models.TimeCategory(categoryStr)
		if !category.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid timeCategory. Must be one of: 5min, 10min",
			})
			return
		}
		filters.TimeCategory = &category
	}

	if playerIDStr := c.Query("playerId"); playerIDStr != "" {
		playerID, err := parseID(playerIDStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid playerId parameter",
			})
			return
		}
		filters.PlayerID = &playerID
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid limit parameter",
		})
		return
	}
	filters.Limit = limit

	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid offset parameter",
		})
		return
	}
	filters.Offset = offset

	matches, err := h.matchService.GetMatches(filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve matches",
		})
		return
	}

	c.JSON(http.StatusOK, matches)
}

// GetRecentMatches retrieves the N most recent matches
// @Summary Get recent matches
// @Description Get the N most recent matches, newest first
// @Tags matches
// @Produce json
// @Param limit query int false "Number of matches to retrieve (default: 10, max: 100)"
// @Success 200 {array} models.Match
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /matches/recent [get]
func (h *MatchHandler) GetRecentMatches(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid limit parameter",
		})
		return
	}
	if limit > 100 {
		limit = 100
	}

	matches, err := h.matchService.GetRecentMatches(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve recent matches",
		})
		return
	}

	c.JSON(http.StatusOK, matches)
}
