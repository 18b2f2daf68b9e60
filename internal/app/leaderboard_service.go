package app

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"sort"

	"contest-service/internal/domain"
	"golang.org/x/sync/errgroup"
)

// LeaderboardService ranks contest participants. Every call recomputes from
// stored submissions; nothing is kept between calls.
type LeaderboardService struct {
	contests    ContestRepository
	submissions SubmissionRepository
	users       UserRepository
}

func NewLeaderboardService(contests ContestRepository, submissions SubmissionRepository, users UserRepository) *LeaderboardService {
	return &LeaderboardService{contests: contests, submissions: submissions, users: users}
}

// GetContestLeaderboard returns the dense-ranked leaderboard. The bool is false
// when the contest does not exist.
func (s *LeaderboardService) GetContestLeaderboard(ctx context.Context, contestID string) ([]domain.LeaderboardEntry, bool, error) {
	entries, err := s.compute(ctx, contestID)
	if errors.Is(err, domain.ErrContestNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return entries, true, nil
}

func (s *LeaderboardService) compute(ctx context.Context, contestID string) ([]domain.LeaderboardEntry, error) {
	if _, err := s.contests.GetContest(ctx, contestID); err != nil {
		return nil, err
	}

	var mcqRows, dsaRows []domain.ScoreRow
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.submissions.ListMcqScores(gctx, contestID)
		if err != nil {
			return fmt.Errorf("list mcq scores: %w", err)
		}
		mcqRows = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.submissions.ListDsaScores(gctx, contestID)
		if err != nil {
			return fmt.Errorf("list dsa scores: %w", err)
		}
		dsaRows = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	totals := aggregateScores(mcqRows, dsaRows)
	if len(totals) == 0 {
		return []domain.LeaderboardEntry{}, nil
	}

	ids := make([]string, 0, len(totals))
	for id := range totals {
		ids = append(ids, id)
	}
	users, err := s.users.FindUsersByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	return rankEntries(totals, users), nil
}

// aggregateScores sums MCQ points and the best DSA attempt per problem for every user.
func aggregateScores(mcqRows, dsaRows []domain.ScoreRow) map[string]int {
	totals := make(map[string]int)
	for _, row := range mcqRows {
		totals[row.UserID] += row.Points
	}

	type pair struct{ user, problem string }
	best := make(map[pair]int)
	for _, row := range dsaRows {
		key := pair{row.UserID, row.ItemID}
		if cur, ok := best[key]; !ok || row.Points > cur {
			best[key] = row.Points
		}
	}
	for key, points := range best {
		totals[key.user] += points
	}
	return totals
}

// rankEntries orders users by points desc, then by TieBreakKey asc, and assigns dense ranks.
// Users without an account row are dropped.
func rankEntries(totals map[string]int, users []domain.User) []domain.LeaderboardEntry {
	entries := make([]domain.LeaderboardEntry, 0, len(users))
	for _, u := range users {
		points, ok := totals[u.ID]
		if !ok {
			continue
		}
		entries = append(entries, domain.LeaderboardEntry{
			UserID:      u.ID,
			Name:        u.Name,
			TotalPoints: points,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].TotalPoints != entries[j].TotalPoints {
			return entries[i].TotalPoints > entries[j].TotalPoints
		}
		ki, kj := TieBreakKey(entries[i].UserID), TieBreakKey(entries[j].UserID)
		if ki != kj {
			return ki < kj
		}
		return entries[i].UserID < entries[j].UserID
	})

	rank := 0
	for i := range entries {
		if i == 0 || entries[i].TotalPoints != entries[i-1].TotalPoints {
			rank++
		}
		entries[i].Rank = rank
	}
	return entries
}

// TieBreakKey is a stable, non-cryptographic projection of a user id (FNV-1a, 32 bit).
// Collisions only affect the order among tied users; the id itself breaks them.
func TieBreakKey(userID string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	if sum := h.Sum32(); sum != 0 {
		return sum
	}
	return 1
}
