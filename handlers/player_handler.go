package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"chess-ladder-api/models"
	"chess-ladder-api/services"

	"github.com/gin-gonic/gin"
)

type PlayerHandler struct {
	playerService     *services.PlayerService
	eloHistoryService *services.EloHistoryService
}

func NewPlayerHandler(playerService *services.PlayerService, eloHistoryService *services.EloHistoryService) *PlayerHandler {
	return &PlayerHandler{
		playerService:     playerService,
		eloHistoryService: eloHistoryService,
	}
}

// CreatePlayer registers a new player
// @Summary Register a player
// @Description Create a player and initialize a rating row for each time category (1000/1000, zero counters)
// @Tags players
// @Accept json
// @Produce json
// @Param player body models.CreatePlayerRequest true "Player data"
// @Success 201 {object} models.Player
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /players [post]
func (h *PlayerHandler) CreatePlayer(c *gin.Context) {
	var req models.CreatePlayerRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Name is required and must be 1-100 characters",
		})
		return
	}

	player, err := h.playerService.CreatePlayer(req.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create player",
		})
		return
	}

	c.JSON(http.StatusCreated, player)
}

// GetPlayers lists players, optionally ranked per time category
// @Summary List players
// @Description Without a filter, returns all players with nested ratings ordered by name. With timeCategory, returns the ranked leaderboard for that category.
// @Tags players
// @Produce json
// @Param timeCategory query string false "Time category" Enums(5min,10min)
// @Success 200 {array} models.LeaderboardEntry
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /players [get]
func (h *PlayerHandler) GetPlayers(c *gin.Context) {
	if categoryStr := c.Query("timeCategory"); categoryStr != "" {
		category := models.TimeCategory(categoryStr)
		if !category.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid timeCategory. Must be one of: 5min, 10min",
			})
			return
		}

		entries, err := h.playerService.GetLeaderboard(category)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to retrieve leaderboard",
			})
			return
		}

		c.JSON(http.StatusOK, entries)
		return
	}

	players, err := h.playerService.ListPlayers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve players",
		})
		return
	}

	c.JSON(http.StatusOK, players)
}

// GetPlayer retrieves player detail
// @Summary Get player by ID
// @Description Get a player with nested ratings, their 10 most recent matches and up to 50 rating history points per time category
// @Tags players
// @Produce json
// @Param id path int true "Player ID"
// @Success 200 {object} models.PlayerDetail
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /players/{id} [get]
func (h *PlayerHandler) GetPlayer(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid player ID",
		})
		return
	}

	detail, err := h.playerService.GetPlayerDetail(id)
	if err != nil {
		if errors.Is(err, services.ErrPlayerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Player not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, detail)
}

// GetEloHistory retrieves a player's rating history
// @Summary Get player ELO history
// @Description Get a player's chronological rating series, optionally filtered by time category
// @Tags players
// @Produce json
// @Param id path int true "Player ID"
// @Param timeCategory query string false "Time category" Enums(5min,10min)
// @Param limit query int false "Maximum points to return (default: 50, max: 50)"
// @Success 200 {array} models.EloHistory
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /players/{id}/elo-history [get]
func (h *PlayerHandler) GetEloHistory(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid player ID",
		})
		return
	}

	// Check if player exists
	if _, err := h.playerService.GetPlayerByID(id); err != nil {
		if errors.Is(err, services.ErrPlayerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Player not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var category *models.TimeCategory
	if categoryStr := c.Query("timeCategory"); categoryStr != "" {
		tc := models.TimeCategory(categoryStr)
		if !tc.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid timeCategory. Must be one of: 5min, 10min",
			})
			return
		}
		category = &tc
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid limit parameter",
		})
		return
	}

	history, err := h.eloHistoryService.GetPlayerHistory(id, category, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve ELO history",
		})
		return
	}

	c.JSON(http.StatusOK, history)
}

// GetPlayerMatches retrieves matches for one player with pagination
// @Summary Get matches for a player
// @Description Get a player's matches, newest first, with optional wins/losses filter and pagination
// @Tags players
// @Produce json
// @Param id path int true "Player ID"
// @Param wins query string false "Filter for wins only (set to '1')"
// @Param losses query string false "Filter for losses only (set to '1')"
// @Param page query int false "Page number (default: 1)"
// @Param pageSize query int false "Matches per page (default: 10, max: 100)"
// @Success 200 {object} models.PaginatedMatchResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /players/{id}/matches [get]
func (h *PlayerHandler) GetPlayerMatches(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid player ID",
		})
		return
	}

	// Check if player exists
	if _, err := h.playerService.GetPlayerByID(id); err != nil {
		if errors.Is(err, services.ErrPlayerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Player not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var filter string
	wins := c.Query("wins")
	losses := c.Query("losses")

	if wins == "1" && losses == "1" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Cannot filter for both wins and losses at the same time",
		})
		return
	} else if wins == "1" {
		filter = "wins"
	} else if losses == "1" {
		filter = "losses"
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid page parameter",
		})
		return
	}

	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", "10"))
	if err != nil || pageSize < 1 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid pageSize parameter",
		})
		return
	}
	if pageSize > 100 {
		pageSize = 100
	}

	paginatedResponse, err := h.playerService.GetPlayerMatches(id, filter, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve player matches",
		})
		return
	}

	c.JSON(http.StatusOK, paginatedResponse)
}

func parseID(param string) (uint, error) {
	id, err := strconv.ParseUint(param, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
