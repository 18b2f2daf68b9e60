package app_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"contest-service/internal/app"
	"contest-service/internal/domain"
	"contest-service/internal/infra/memory"
)

var contestStart = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

type fixture struct {
	store       *memory.Store
	clock       *testClock
	judge       *countingJudge
	contests    *app.ContestService
	submissions *app.SubmissionService
	leaderboard *app.LeaderboardService

	creator domain.Identity
	alice   domain.Identity
	bob     domain.Identity
	carol   domain.Identity
	contest domain.Contest
}

func newFixture(t *testing.T, limiter app.SubmissionLimiter) *fixture {
	t.Helper()
	f := &fixture{
		store: memory.NewStore(),
		clock: &testClock{now: contestStart.Add(10 * time.Minute)},
		judge: &countingJudge{},
	}
	f.contests = app.NewContestServiceWithClock(f.store, f.clock.Now)
	f.submissions = app.NewSubmissionServiceWithClock(f.store, f.store, f.judge, limiter, f.clock.Now)
	f.leaderboard = app.NewLeaderboardService(f.store, f.store, f.store)

	f.creator = f.addUser(t, "creator-1", "Creator", domain.RoleCreator)
	f.alice = f.addUser(t, "user-alice", "Alice", domain.RoleContestee)
	f.bob = f.addUser(t, "user-bob", "Bob", domain.RoleContestee)
	f.carol = f.addUser(t, "user-carol", "Carol", domain.RoleContestee)

	contest, err := f.contests.CreateContest(context.Background(), f.creator, app.CreateContestInput{
		Title:       "Weekly Round",
		Description: "MCQ and DSA",
		StartTime:   contestStart,
		EndTime:     contestStart.Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("create contest: %v", err)
	}
	f.contest = contest
	return f
}

func (f *fixture) addUser(t *testing.T, id, name string, role domain.Role) domain.Identity {
	t.Helper()
	email := id + "@example.com"
	err := f.store.CreateUser(context.Background(), domain.User{
		ID:    id,
		Email: email,
		Name:  &name,
		Role:  role,
	})
	if err != nil {
		t.Fatalf("create user %s: %v", id, err)
	}
	return domain.Identity{UserID: id, Email: email, Role: role}
}

// addQuestion adds a 4-option question whose correct answer is index 2.
func (f *fixture) addQuestion(t *testing.T, points int) string {
	t.Helper()
	ref, err := f.contests.AddMcqQuestion(context.Background(), f.creator, f.contest.ID, app.AddQuestionInput{
		QuestionText:       "Which one?",
		Options:            []string{"a", "b", "c", "d"},
		CorrectOptionIndex: 2,
		Points:             points,
	})
	if err != nil {
		t.Fatalf("add question: %v", err)
	}
	return ref.ID
}

func (f *fixture) addProblem(t *testing.T, testCases int) string {
	t.Helper()
	cases := make([]domain.TestCase, testCases)
	for i := range cases {
		cases[i] = domain.TestCase{Input: "in", ExpectedOutput: "out", IsHidden: i%2 == 1}
	}
	ref, err := f.contests.AddDsaProblem(context.Background(), f.creator, f.contest.ID, app.AddProblemInput{
		Title:       "Two Sum",
		Description: "Find two numbers",
		TestCases:   cases,
	})
	if err != nil {
		t.Fatalf("add problem: %v", err)
	}
	return ref.ID
}

// storedAnswers counts stored MCQ rows for the pair.
func (f *fixture) storedAnswers(t *testing.T, userID, questionID string) int {
	t.Helper()
	rows, err := f.store.ListMcqScores(context.Background(), f.contest.ID)
	if err != nil {
		t.Fatalf("list mcq scores: %v", err)
	}
	return countRows(rows, userID, questionID)
}

// storedAttempts counts stored DSA attempts for the pair.
func (f *fixture) storedAttempts(t *testing.T, userID, problemID string) int {
	t.Helper()
	rows, err := f.store.ListDsaScores(context.Background(), f.contest.ID)
	if err != nil {
		t.Fatalf("list dsa scores: %v", err)
	}
	return countRows(rows, userID, problemID)
}

func countRows(rows []domain.ScoreRow, userID, itemID string) int {
	n := 0
	for _, r := range rows {
		if r.UserID == userID && r.ItemID == itemID {
			n++
		}
	}
	return n
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// countingJudge replays queued results and counts invocations.
type countingJudge struct {
	mu      sync.Mutex
	calls   int
	results []app.JudgeResult
	last    app.JudgeRequest
}

func (j *countingJudge) Queue(results ...app.JudgeResult) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.results = append(j.results, results...)
}

func (j *countingJudge) Judge(_ context.Context, req app.JudgeRequest) (app.JudgeResult, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.calls++
	j.last = req
	if len(j.results) == 0 {
		return app.JudgeResult{Status: domain.VerdictAccepted, TestCasesPassed: req.TotalTestCases}, nil
	}
	next := j.results[0]
	j.results = j.results[1:]
	return next, nil
}

func (j *countingJudge) Calls() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.calls
}
