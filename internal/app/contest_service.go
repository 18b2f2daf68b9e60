package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"contest-service/internal/domain"
	"github.com/google/uuid"
)

const (
	minOptions   = 2
	maxOptions   = 10
	minTestCases = 1
	maxTestCases = 200

	defaultProblemPoints = 100
	defaultTimeLimitMs   = 2000
	defaultMemoryLimitMb = 256
)

// ContestService covers contest authoring and read models.
type ContestService struct {
	contests ContestRepository
	now      func() time.Time
}

func NewContestService(contests ContestRepository) *ContestService {
	return NewContestServiceWithClock(contests, time.Now)
}

// NewContestServiceWithClock allows deterministic timestamps in tests.
func NewContestServiceWithClock(contests ContestRepository, now func() time.Time) *ContestService {
	return &ContestService{contests: contests, now: now}
}

type CreateContestInput struct {
	Title       string
	Description string
	StartTime   time.Time
	EndTime     time.Time
}

type AddQuestionInput struct {
	QuestionText       string
	Options            []string
	CorrectOptionIndex int
	Points             int
}

// AddProblemInput leaves Points, TimeLimit and MemoryLimit at zero to take the defaults.
type AddProblemInput struct {
	Title       string
	Description string
	Tags        []string
	Points      int
	TimeLimit   int
	MemoryLimit int
	TestCases   []domain.TestCase
}

// CreateContest stores a new contest owned by the caller.
func (s *ContestService) CreateContest(ctx context.Context, caller domain.Identity, in CreateContestInput) (domain.Contest, error) {
	if caller.Role != domain.RoleCreator {
		return domain.Contest{}, domain.ErrForbidden
	}
	if in.Title == "" {
		return domain.Contest{}, fmt.Errorf("title is required: %w", domain.ErrValidation)
	}
	if !in.EndTime.After(in.StartTime) {
		return domain.Contest{}, fmt.Errorf("end time must be after start time: %w", domain.ErrValidation)
	}

	contest := domain.Contest{
		ID:          uuid.NewString(),
		CreatorID:   caller.UserID,
		Title:       in.Title,
		Description: in.Description,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		CreatedAt:   s.now(),
	}
	if err := s.contests.CreateContest(ctx, contest); err != nil {
		return domain.Contest{}, fmt.Errorf("create contest: %w", err)
	}
	return contest, nil
}

// AddMcqQuestion appends a question to an existing contest.
func (s *ContestService) AddMcqQuestion(ctx context.Context, caller domain.Identity, contestID string, in AddQuestionInput) (domain.CreatedRef, error) {
	if caller.Role != domain.RoleCreator {
		return domain.CreatedRef{}, domain.ErrForbidden
	}
	if len(in.Options) < minOptions || len(in.Options) > maxOptions {
		return domain.CreatedRef{}, fmt.Errorf("options must have %d to %d entries: %w", minOptions, maxOptions, domain.ErrValidation)
	}
	if in.CorrectOptionIndex < 0 || in.CorrectOptionIndex >= len(in.Options) {
		return domain.CreatedRef{}, fmt.Errorf("correct option index out of bounds: %w", domain.ErrValidation)
	}
	if in.Points < 1 {
		return domain.CreatedRef{}, fmt.Errorf("points must be positive: %w", domain.ErrValidation)
	}

	if _, err := s.contests.GetContest(ctx, contestID); err != nil {
		return domain.CreatedRef{}, err
	}

	question := domain.MCQQuestion{
		ID:                 uuid.NewString(),
		ContestID:          contestID,
		QuestionText:       in.QuestionText,
		Options:            append([]string(nil), in.Options...),
		CorrectOptionIndex: in.CorrectOptionIndex,
		Points:             in.Points,
		CreatedAt:          s.now(),
	}
	if err := s.contests.AddQuestion(ctx, question); err != nil {
		return domain.CreatedRef{}, fmt.Errorf("add question: %w", err)
	}
	return domain.CreatedRef{ID: question.ID, ContestID: contestID}, nil
}

// AddDsaProblem creates a problem together with its test cases.
func (s *ContestService) AddDsaProblem(ctx context.Context, caller domain.Identity, contestID string, in AddProblemInput) (domain.CreatedRef, error) {
	if caller.Role != domain.RoleCreator {
		return domain.CreatedRef{}, domain.ErrForbidden
	}
	if len(in.TestCases) < minTestCases || len(in.TestCases) > maxTestCases {
		return domain.CreatedRef{}, fmt.Errorf("test cases must have %d to %d entries: %w", minTestCases, maxTestCases, domain.ErrValidation)
	}
	points := orDefault(in.Points, defaultProblemPoints)
	timeLimit := orDefault(in.TimeLimit, defaultTimeLimitMs)
	memoryLimit := orDefault(in.MemoryLimit, defaultMemoryLimitMb)
	if points < 1 || timeLimit < 1 || memoryLimit < 1 {
		return domain.CreatedRef{}, fmt.Errorf("points and limits must be positive: %w", domain.ErrValidation)
	}

	if _, err := s.contests.GetContest(ctx, contestID); err != nil {
		return domain.CreatedRef{}, err
	}

	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}
	problem := domain.DsaProblem{
		ID:          uuid.NewString(),
		ContestID:   contestID,
		Title:       in.Title,
		Description: in.Description,
		Tags:        tags,
		Points:      points,
		TimeLimit:   timeLimit,
		MemoryLimit: memoryLimit,
		TestCases:   append([]domain.TestCase(nil), in.TestCases...),
		CreatedAt:   s.now(),
	}
	if err := s.contests.AddProblem(ctx, problem); err != nil {
		return domain.CreatedRef{}, fmt.Errorf("add problem: %w", err)
	}
	return domain.CreatedRef{ID: problem.ID, ContestID: contestID}, nil
}

// GetContestDetails returns the contest with its questions and problems.
// The bool is false when the contest does not exist.
func (s *ContestService) GetContestDetails(ctx context.Context, viewer domain.Identity, contestID string) (domain.ContestDetailsView, bool, error) {
	contest, err := s.contests.GetContest(ctx, contestID)
	if errors.Is(err, domain.ErrContestNotFound) {
		return domain.ContestDetailsView{}, false, nil
	}
	if err != nil {
		return domain.ContestDetailsView{}, false, err
	}

	questions, err := s.contests.ListQuestions(ctx, contestID)
	if err != nil {
		return domain.ContestDetailsView{}, false, fmt.Errorf("list questions: %w", err)
	}
	problems, err := s.contests.ListProblems(ctx, contestID)
	if err != nil {
		return domain.ContestDetailsView{}, false, fmt.Errorf("list problems: %w", err)
	}

	view := domain.ContestDetailsView{
		ContestView: contest.View(),
		Mcqs:        make([]domain.QuestionView, 0, len(questions)),
		DsaProblems: make([]domain.ProblemSummary, 0, len(problems)),
	}
	for _, q := range questions {
		view.Mcqs = append(view.Mcqs, q.View(viewer.Role))
	}
	for _, p := range problems {
		view.DsaProblems = append(view.DsaProblems, p.Summary())
	}
	return view, true, nil
}

// GetProblemDetails returns a problem with its non-hidden test cases.
// The bool is false when the problem does not exist.
func (s *ContestService) GetProblemDetails(ctx context.Context, problemID string) (domain.ProblemDetailsView, bool, error) {
	found, err := s.contests.GetProblem(ctx, problemID)
	if errors.Is(err, domain.ErrProblemNotFound) {
		return domain.ProblemDetailsView{}, false, nil
	}
	if err != nil {
		return domain.ProblemDetailsView{}, false, err
	}

	cases, err := s.contests.ListVisibleTestCases(ctx, problemID)
	if err != nil {
		return domain.ProblemDetailsView{}, false, fmt.Errorf("list test cases: %w", err)
	}

	p := found.Problem.Summary()
	view := domain.ProblemDetailsView{
		ID:               p.ID,
		ContestID:        found.Problem.ContestID,
		Title:            p.Title,
		Description:      p.Description,
		Tags:             p.Tags,
		Points:           p.Points,
		TimeLimit:        p.TimeLimit,
		MemoryLimit:      p.MemoryLimit,
		VisibleTestCases: make([]domain.TestCaseView, 0, len(cases)),
	}
	for _, tc := range cases {
		if tc.IsHidden {
			continue
		}
		view.VisibleTestCases = append(view.VisibleTestCases, domain.TestCaseView{
			Input:          tc.Input,
			ExpectedOutput: tc.ExpectedOutput,
		})
	}
	return view, true, nil
}

func orDefault(v, fallback int) int {
	if v == 0 {
		return fallback
	}
	return v
}
