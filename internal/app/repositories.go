package app

import (
	"context"

	"contest-service/internal/domain"
)

// UserRepository stores accounts. Create returns domain.ErrEmailTaken on a duplicate email.
type UserRepository interface {
	CreateUser(ctx context.Context, user domain.User) error
	FindUserByEmail(ctx context.Context, email string) (domain.User, error)
	FindUsersByIDs(ctx context.Context, ids []string) ([]domain.User, error)
}

// ContestRepository stores contests and the questions and problems they own.
type ContestRepository interface {
	CreateContest(ctx context.Context, contest domain.Contest) error
	GetContest(ctx context.Context, contestID string) (domain.Contest, error)
	AddQuestion(ctx context.Context, question domain.MCQQuestion) error
	// AddProblem stores the problem and all of its test cases, or nothing.
	AddProblem(ctx context.Context, problem domain.DsaProblem) error
	ListQuestions(ctx context.Context, contestID string) ([]domain.MCQQuestion, error)
	ListProblems(ctx context.Context, contestID string) ([]domain.DsaProblem, error)
	// GetQuestionInContest only resolves a question owned by contestID.
	GetQuestionInContest(ctx context.Context, contestID, questionID string) (domain.QuestionInContest, error)
	GetProblem(ctx context.Context, problemID string) (domain.ProblemInContest, error)
	ListVisibleTestCases(ctx context.Context, problemID string) ([]domain.TestCase, error)
}

// SubmissionRepository stores MCQ answers and DSA attempts.
type SubmissionRepository interface {
	HasMcqSubmission(ctx context.Context, userID, questionID string) (bool, error)
	// CreateMcqSubmission enforces one row per (user, question) and returns
	// domain.ErrAlreadySubmitted when it loses that race.
	CreateMcqSubmission(ctx context.Context, submission domain.McqSubmission) error
	CreateDsaSubmission(ctx context.Context, submission domain.DsaSubmission) error
	// ListMcqScores returns one row per MCQ submission in the contest.
	ListMcqScores(ctx context.Context, contestID string) ([]domain.ScoreRow, error)
	// ListDsaScores returns at least the best attempt per (user, problem) in the contest.
	ListDsaScores(ctx context.Context, contestID string) ([]domain.ScoreRow, error)
}

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}
