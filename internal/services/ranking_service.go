package services

import (
	"context"
	"time"

	apperrors "gemtrade/internal/errors"
	"gemtrade/internal/metrics"
	"gemtrade/internal/models"
	"gemtrade/internal/store"
)

// MaxLeaderboardSize caps TopN and Leaderboard requests.
const MaxLeaderboardSize = 100

// CompetitionRanks assigns "1224" style ranks to gem counts sorted in
// descending order: ties share a rank and the next distinct count takes its
// 1-based position, e.g. [20 15 10 10 4] -> [1 2 3 3 5].
func CompetitionRanks(gems []int64) []int {
	ranks := make([]int, len(gems))
	for i := range gems {
		if i > 0 && gems[i] == gems[i-1] {
			ranks[i] = ranks[i-1]
			continue
		}
		ranks[i] = i + 1
	}
	return ranks
}

// rankingService recomputes leaderboard ranks over the full user set.
type rankingService struct {
	store store.Store
}

// NewRankingService creates a new RankingServicer.
func NewRankingService(s store.Store) RankingServicer {
	return &rankingService{store: s}
}

// AssignRanks ranks every user by gem count and persists the ranks in one
// transaction. Returns the ranked users in leaderboard order.
func (s *rankingService) AssignRanks(ctx context.Context) ([]LeaderboardEntry, error) {
	start := time.Now()

	var entries []LeaderboardEntry
	err := s.store.Transaction(ctx, func(ctx context.Context) error {
		users, err := s.store.RankedUsers(ctx)
		if err != nil {
			return err
		}

		gems := make([]int64, len(users))
		for i := range users {
			gems[i] = users[i].GemCount
		}
		ranks := CompetitionRanks(gems)

		assignments := make([]store.RankAssignment, len(users))
		entries = make([]LeaderboardEntry, len(users))
		for i := range users {
			assignments[i] = store.RankAssignment{UserID: users[i].ID, Rank: ranks[i]}
			entries[i] = toEntry(&users[i], ranks[i])
		}
		return s.store.UpdateRanks(ctx, assignments)
	})
	if err != nil {
		return nil, err
	}

	metrics.RankingDuration.Observe(time.Since(start).Seconds())
	metrics.RankedUsers.Set(float64(len(entries)))
	return entries, nil
}

// TopN returns the n users with the most gems, ties broken by ascending id.
func (s *rankingService) TopN(ctx context.Context, n int) ([]models.User, error) {
	if n <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "n must be greater than zero")
	}
	if n > MaxLeaderboardSize {
		n = MaxLeaderboardSize
	}
	return s.store.TopUsers(ctx, n)
}

// Leaderboard recomputes ranks and returns the top n entries.
func (s *rankingService) Leaderboard(ctx context.Context, n int) ([]LeaderboardEntry, error) {
	if n <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "top_n must be greater than zero")
	}
	entries, err := s.AssignRanks(ctx)
	if err != nil {
		return nil, err
	}
	if n < len(entries) {
		entries = entries[:n]
	}
	return entries, nil
}

func toEntry(u *models.User, rank int) LeaderboardEntry {
	return LeaderboardEntry{
		Rank:     rank,
		UserID:   u.ID,
		Username: u.Username,
		GemCount: u.GemCount,
	}
}
