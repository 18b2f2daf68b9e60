package domain

import "time"

// Role is the closed set of caller roles.
type Role string

const (
	RoleCreator   Role = "creator"
	RoleContestee Role = "contestee"
)

// ParseRole accepts the wire spelling of a role.
func ParseRole(raw string) (Role, bool) {
	switch Role(raw) {
	case RoleCreator:
		return RoleCreator, true
	case RoleContestee:
		return RoleContestee, true
	}
	return "", false
}

// Identity is the resolved caller of an operation.
type Identity struct {
	UserID string
	Email  string
	Role   Role
}

// User is an account. PasswordHash never leaves the service layer.
type User struct {
	ID           string
	Email        string
	Name         *string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// Contest is a time-boxed container of questions and problems.
type Contest struct {
	ID          string
	CreatorID   string
	Title       string
	Description string
	StartTime   time.Time
	EndTime     time.Time
	CreatedAt   time.Time
}

// IsActive reports whether at lies inside [StartTime, EndTime], both ends inclusive.
func (c Contest) IsActive(at time.Time) bool {
	return !at.Before(c.StartTime) && !at.After(c.EndTime)
}

// MCQQuestion models a question with exactly one correct option.
type MCQQuestion struct {
	ID                 string
	ContestID          string
	QuestionText       string
	Options            []string
	CorrectOptionIndex int
	Points             int
	CreatedAt          time.Time
}

// TestCase is an input/expected-output pair of a DSA problem.
type TestCase struct {
	Input          string
	ExpectedOutput string
	IsHidden       bool
}

// DsaProblem is an algorithmic problem judged by its test cases.
type DsaProblem struct {
	ID          string
	ContestID   string
	Title       string
	Description string
	Tags        []string
	Points      int
	TimeLimit   int // milliseconds
	MemoryLimit int // megabytes
	TestCases   []TestCase
	CreatedAt   time.Time
}

// QuestionInContest is a question joined with its parent contest.
type QuestionInContest struct {
	Question MCQQuestion
	Contest  Contest
}

// ProblemInContest is a problem joined with its parent contest and test case count.
type ProblemInContest struct {
	Problem       DsaProblem
	Contest       Contest
	TestCaseCount int
}

// McqSubmission is a write-once answer to a question.
type McqSubmission struct {
	ID                  string
	UserID              string
	QuestionID          string
	SelectedOptionIndex int
	IsCorrect           bool
	PointsEarned        int
	CreatedAt           time.Time
}

// Verdict is the judge outcome of a DSA submission.
type Verdict string

const (
	VerdictAccepted          Verdict = "accepted"
	VerdictWrongAnswer       Verdict = "wrong_answer"
	VerdictTimeLimitExceeded Verdict = "time_limit_exceeded"
	VerdictRuntimeError      Verdict = "runtime_error"
)

// DsaSubmission is one attempt at a problem. Every attempt is stored.
type DsaSubmission struct {
	ID              string
	UserID          string
	ProblemID       string
	Code            string
	Language        string
	Status          Verdict
	PointsEarned    int
	TestCasesPassed int
	TotalTestCases  int
	ExecutionTimeMs *int
	CreatedAt       time.Time
}

// McqResult is returned to the caller after answering a question.
type McqResult struct {
	IsCorrect    bool `json:"isCorrect"`
	PointsEarned int  `json:"pointsEarned"`
}

// DsaResult is returned to the caller after submitting a solution.
type DsaResult struct {
	Status          Verdict `json:"status"`
	PointsEarned    int     `json:"pointsEarned"`
	TestCasesPassed int     `json:"testCasesPassed"`
	TotalTestCases  int     `json:"totalTestCases"`
}

// ScoreRow is the points a user earned on one question or problem.
// For DSA rows the item is the problem and several rows per pair may exist.
type ScoreRow struct {
	UserID string
	ItemID string
	Points int
}

// LeaderboardEntry is one ranked line of a contest leaderboard.
type LeaderboardEntry struct {
	UserID      string  `json:"userId"`
	Name        *string `json:"name"`
	TotalPoints int     `json:"totalPoints"`
	Rank        int     `json:"rank"`
}
