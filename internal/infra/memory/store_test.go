package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"contest-service/internal/domain"
)

func TestStoreRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	if err := store.CreateUser(ctx, domain.User{ID: "u1", Email: "a@example.com", Role: domain.RoleContestee}); err != nil {
		t.Fatalf("create user: %v", err)
	}
	err := store.CreateUser(ctx, domain.User{ID: "u2", Email: "A@example.com", Role: domain.RoleContestee})
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected email taken, got %v", err)
	}
}

func TestStoreMcqUniquenessUnderRace(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- store.CreateMcqSubmission(ctx, domain.McqSubmission{ID: "s", UserID: "u1", QuestionID: "q1"})
		}()
	}
	wg.Wait()
	close(errs)

	wins, dupes := 0, 0
	for err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, domain.ErrAlreadySubmitted):
			dupes++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 || dupes != 7 {
		t.Fatalf("expected exactly one winner, got wins=%d dupes=%d", wins, dupes)
	}
}

func TestStoreScopesQuestionsToContest(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)
	if err := store.CreateContest(ctx, domain.Contest{ID: "c2"}); err != nil {
		t.Fatalf("create contest: %v", err)
	}

	if _, err := store.GetQuestionInContest(ctx, "c2", "q1"); !errors.Is(err, domain.ErrQuestionNotFound) {
		t.Fatalf("expected question not found across contests, got %v", err)
	}
	found, err := store.GetQuestionInContest(ctx, "c1", "q1")
	if err != nil {
		t.Fatalf("get question: %v", err)
	}
	if found.Contest.CreatorID != "creator" {
		t.Fatalf("expected parent contest joined, got %+v", found.Contest)
	}
}

func TestStoreProblemRejectedWithoutContest(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	err := store.AddProblem(ctx, domain.DsaProblem{ID: "p1", ContestID: "missing", TestCases: []domain.TestCase{{Input: "1"}}})
	if !errors.Is(err, domain.ErrContestNotFound) {
		t.Fatalf("expected contest not found, got %v", err)
	}
	if _, err := store.GetProblem(ctx, "p1"); !errors.Is(err, domain.ErrProblemNotFound) {
		t.Fatalf("expected no partial problem, got %v", err)
	}
}

func TestStoreHidesHiddenTestCases(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)

	cases, err := store.ListVisibleTestCases(ctx, "p1")
	if err != nil {
		t.Fatalf("list test cases: %v", err)
	}
	if len(cases) != 1 || cases[0].Input != "public" {
		t.Fatalf("expected only the public case, got %+v", cases)
	}
	found, err := store.GetProblem(ctx, "p1")
	if err != nil {
		t.Fatalf("get problem: %v", err)
	}
	if found.TestCaseCount != 2 {
		t.Fatalf("expected both cases counted, got %d", found.TestCaseCount)
	}
}

func TestSubmissionLimiterWindow(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewSubmissionLimiterWithClock(2, time.Minute, func() time.Time { return now })
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if ok, _ := limiter.Allow(ctx, "u1", "p1"); !ok {
			t.Fatalf("attempt %d should pass", i+1)
		}
	}
	if ok, _ := limiter.Allow(ctx, "u1", "p1"); ok {
		t.Fatalf("third attempt should be throttled")
	}
	if ok, _ := limiter.Allow(ctx, "u1", "p2"); !ok {
		t.Fatalf("other problem should not share the window")
	}

	now = now.Add(time.Minute)
	if ok, _ := limiter.Allow(ctx, "u1", "p1"); !ok {
		t.Fatalf("window should reset")
	}
}

func TestSubmissionLimiterSweepsOncePerWindow(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewSubmissionLimiterWithClock(5, time.Minute, func() time.Time { return now })
	ctx := context.Background()

	for i := 0; i < 2000; i++ {
		if _, err := limiter.Allow(ctx, fmt.Sprintf("u%d", i), "p1"); err != nil {
			t.Fatalf("allow: %v", err)
		}
	}
	firstSweep := limiter.nextSweep
	now = now.Add(30 * time.Second)
	limiter.Allow(ctx, "late", "p1")
	if !limiter.nextSweep.Equal(firstSweep) {
		t.Fatalf("no sweep expected inside the window")
	}
	if n := len(limiter.windows); n != 2001 {
		t.Fatalf("expected 2001 live windows, got %d", n)
	}

	now = now.Add(30 * time.Second)
	limiter.Allow(ctx, "u0", "p1")
	if n := len(limiter.windows); n != 2 {
		t.Fatalf("expected expired windows dropped, got %d left", n)
	}
}

func seededStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()
	store := NewStore()
	if err := store.CreateContest(ctx, domain.Contest{ID: "c1", CreatorID: "creator"}); err != nil {
		t.Fatalf("create contest: %v", err)
	}
	if err := store.AddQuestion(ctx, domain.MCQQuestion{ID: "q1", ContestID: "c1", Options: []string{"a", "b"}, Points: 1}); err != nil {
		t.Fatalf("add question: %v", err)
	}
	err := store.AddProblem(ctx, domain.DsaProblem{
		ID:        "p1",
		ContestID: "c1",
		Points:    100,
		TestCases: []domain.TestCase{
			{Input: "public", ExpectedOutput: "1"},
			{Input: "secret", ExpectedOutput: "2", IsHidden: true},
		},
	})
	if err != nil {
		t.Fatalf("add problem: %v", err)
	}
	return store
}
