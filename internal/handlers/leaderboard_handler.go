package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gemtrade/internal/services"
)

const defaultLeaderboardSize = 10

// LeaderboardHandler handles ranking requests.
type LeaderboardHandler struct {
	rankingService services.RankingServicer
}

// NewLeaderboardHandler creates a new LeaderboardHandler.
func NewLeaderboardHandler(rankingService services.RankingServicer) *LeaderboardHandler {
	return &LeaderboardHandler{rankingService: rankingService}
}

// LeaderboardQuery holds the leaderboard query string.
type LeaderboardQuery struct {
	TopN *int `form:"top_n" binding:"omitempty,min=1,max=100"`
}

// GetLeaderboard handles reading the leaderboard. Ranks are recomputed first.
// @Summary     Leaderboard
// @Tags        leaderboard
// @Produce     json
// @Param       top_n query int false "Number of entries (default 10, max 100)"
// @Success     200 {object} map[string][]services.LeaderboardEntry "Leaderboard"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /leaderboard [get]
func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	var q LeaderboardQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, bindError(err))
		return
	}
	n := defaultLeaderboardSize
	if q.TopN != nil {
		n = *q.TopN
	}

	entries, err := h.rankingService.Leaderboard(c.Request.Context(), n)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
}

// AssignRanks handles recomputing every user's rank.
// @Summary     Recompute ranks
// @Tags        leaderboard
// @Produce     json
// @Success     200 {object} map[string]int "Number of users ranked"
// @Router      /leaderboard/ranks [post]
func (h *LeaderboardHandler) AssignRanks(c *gin.Context) {
	entries, err := h.rankingService.AssignRanks(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ranked": len(entries)})
}
