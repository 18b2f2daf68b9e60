package app_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"contest-service/internal/app"
	"contest-service/internal/domain"
)

func TestLeaderboardDenseRankAndBestAttempt(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	questionID := f.addQuestion(t, 50)
	problemID := f.addProblem(t, 5)

	// Alice: 3/5 then 5/5 -> best is 100.
	f.judge.Queue(
		app.JudgeResult{Status: domain.VerdictWrongAnswer, TestCasesPassed: 3},
		app.JudgeResult{Status: domain.VerdictAccepted, TestCasesPassed: 5},
	)
	for i := 0; i < 2; i++ {
		if _, err := f.submissions.SubmitProblemSolution(ctx, f.alice, problemID, "code", "go"); err != nil {
			t.Fatalf("alice attempt: %v", err)
		}
	}
	// Bob: 50 from the MCQ plus a best DSA attempt of 40.
	if _, err := f.submissions.SubmitMcqAnswer(ctx, f.bob, f.contest.ID, questionID, 2); err != nil {
		t.Fatalf("bob mcq: %v", err)
	}
	f.judge.Queue(app.JudgeResult{Status: domain.VerdictWrongAnswer, TestCasesPassed: 2}) // 40
	f.judge.Queue(app.JudgeResult{Status: domain.VerdictWrongAnswer, TestCasesPassed: 1}) // 20, ignored
	for i := 0; i < 2; i++ {
		if _, err := f.submissions.SubmitProblemSolution(ctx, f.bob, problemID, "code", "go"); err != nil {
			t.Fatalf("bob attempt: %v", err)
		}
	}
	// Carol: 50 from MCQ only.
	if _, err := f.submissions.SubmitMcqAnswer(ctx, f.carol, f.contest.ID, questionID, 2); err != nil {
		t.Fatalf("carol mcq: %v", err)
	}

	entries, found, err := f.leaderboard.GetContestLeaderboard(ctx, f.contest.ID)
	if err != nil || !found {
		t.Fatalf("leaderboard: found=%v err=%v", found, err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %+v", entries)
	}

	want := map[string]struct{ points, rank int }{
		f.alice.UserID: {100, 1},
		f.bob.UserID:   {90, 2},
		f.carol.UserID: {50, 3},
	}
	for i, e := range entries {
		w := want[e.UserID]
		if e.TotalPoints != w.points || e.Rank != w.rank {
			t.Fatalf("entry %d: got %+v, want points=%d rank=%d", i, e, w.points, w.rank)
		}
		if e.Name == nil {
			t.Fatalf("entry %d has no name", i)
		}
	}
}

func TestLeaderboardTiesShareRank(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	problemID := f.addProblem(t, 2)

	f.judge.Queue(
		app.JudgeResult{Status: domain.VerdictAccepted, TestCasesPassed: 2},
		app.JudgeResult{Status: domain.VerdictAccepted, TestCasesPassed: 2},
		app.JudgeResult{Status: domain.VerdictWrongAnswer, TestCasesPassed: 1},
	)
	for _, who := range []domain.Identity{f.alice, f.bob, f.carol} {
		if _, err := f.submissions.SubmitProblemSolution(ctx, who, problemID, "code", "go"); err != nil {
			t.Fatalf("attempt for %s: %v", who.UserID, err)
		}
	}

	entries, _, err := f.leaderboard.GetContestLeaderboard(ctx, f.contest.ID)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	gotRanks := []int{entries[0].Rank, entries[1].Rank, entries[2].Rank}
	if gotRanks[0] != 1 || gotRanks[1] != 1 || gotRanks[2] != 2 {
		t.Fatalf("expected ranks [1 1 2], got %v", gotRanks)
	}
	if entries[2].UserID != f.carol.UserID {
		t.Fatalf("expected carol last, got %s", entries[2].UserID)
	}
	if app.TieBreakKey(entries[0].UserID) > app.TieBreakKey(entries[1].UserID) {
		t.Fatalf("tied users must be ordered by tie-break key")
	}

	again, _, err := f.leaderboard.GetContestLeaderboard(ctx, f.contest.ID)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	for i := range entries {
		if again[i].UserID != entries[i].UserID || again[i].Rank != entries[i].Rank {
			t.Fatalf("ordering must be stable across calls: %+v vs %+v", again, entries)
		}
	}
}

func TestLeaderboardEmptyAndMissingContest(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	entries, found, err := f.leaderboard.GetContestLeaderboard(ctx, f.contest.ID)
	if err != nil || !found {
		t.Fatalf("leaderboard: found=%v err=%v", found, err)
	}
	if entries == nil || len(entries) != 0 {
		t.Fatalf("expected an empty, non-nil leaderboard, got %#v", entries)
	}

	if _, found, err := f.leaderboard.GetContestLeaderboard(ctx, "missing"); err != nil || found {
		t.Fatalf("expected not found, got found=%v err=%v", found, err)
	}
}

// stallingSubmissions blocks the first ListMcqScores call until its context ends.
type stallingSubmissions struct {
	app.SubmissionRepository
	once    sync.Once
	entered chan struct{}
}

func (s *stallingSubmissions) ListMcqScores(ctx context.Context, contestID string) ([]domain.ScoreRow, error) {
	first := false
	s.once.Do(func() { first = true })
	if first {
		close(s.entered)
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return s.SubmissionRepository.ListMcqScores(ctx, contestID)
}

func TestLeaderboardCallsAreIndependent(t *testing.T) {
	f := newFixture(t, nil)
	questionID := f.addQuestion(t, 10)
	if _, err := f.submissions.SubmitMcqAnswer(context.Background(), f.alice, f.contest.ID, questionID, 2); err != nil {
		t.Fatalf("submit: %v", err)
	}

	stalling := &stallingSubmissions{SubmissionRepository: f.store, entered: make(chan struct{})}
	board := app.NewLeaderboardService(f.store, stalling, f.store)

	ctxA, cancelA := context.WithCancel(context.Background())
	errA := make(chan error, 1)
	go func() {
		_, _, err := board.GetContestLeaderboard(ctxA, f.contest.ID)
		errA <- err
	}()
	<-stalling.entered

	// A second caller arriving while the first is stalled gets its own result.
	entries, found, err := board.GetContestLeaderboard(context.Background(), f.contest.ID)
	if err != nil || !found {
		t.Fatalf("second caller: found=%v err=%v", found, err)
	}
	if len(entries) != 1 || entries[0].UserID != f.alice.UserID || entries[0].TotalPoints != 10 {
		t.Fatalf("unexpected entries %+v", entries)
	}

	cancelA()
	if err := <-errA; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected first caller to see its own cancellation, got %v", err)
	}
}
