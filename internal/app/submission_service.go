package app

import (
	"context"
	"fmt"
	"time"

	"contest-service/internal/domain"
	"github.com/google/uuid"
)

// JudgeRequest is everything a judge may use to evaluate one attempt.
type JudgeRequest struct {
	Code           string
	Language       string
	TotalTestCases int
	TimeLimitMs    int
	MemoryLimitMb  int
}

// JudgeResult is the verdict for one attempt.
type JudgeResult struct {
	Status          domain.Verdict
	TestCasesPassed int
	ExecutionTimeMs *int
}

// Judge evaluates submitted code. Implementations must not retain the request.
type Judge interface {
	Judge(ctx context.Context, req JudgeRequest) (JudgeResult, error)
}

// SubmissionLimiter throttles DSA attempts per (user, problem).
type SubmissionLimiter interface {
	Allow(ctx context.Context, userID, problemID string) (bool, error)
}

// SubmissionService scores MCQ answers and DSA attempts.
type SubmissionService struct {
	contests    ContestRepository
	submissions SubmissionRepository
	judge       Judge
	limiter     SubmissionLimiter
	now         func() time.Time
}

func NewSubmissionService(contests ContestRepository, submissions SubmissionRepository, judge Judge, limiter SubmissionLimiter) *SubmissionService {
	return NewSubmissionServiceWithClock(contests, submissions, judge, limiter, time.Now)
}

// NewSubmissionServiceWithClock is used by tests to pin the contest window.
// limiter may be nil to disable throttling.
func NewSubmissionServiceWithClock(contests ContestRepository, submissions SubmissionRepository, judge Judge, limiter SubmissionLimiter, now func() time.Time) *SubmissionService {
	return &SubmissionService{
		contests:    contests,
		submissions: submissions,
		judge:       judge,
		limiter:     limiter,
		now:         now,
	}
}

// SubmitMcqAnswer records the caller's only answer to a question.
// Checks run in order: existence, authorization, time window, duplication, option range.
func (s *SubmissionService) SubmitMcqAnswer(ctx context.Context, caller domain.Identity, contestID, questionID string, selectedOptionIndex int) (domain.McqResult, error) {
	found, err := s.contests.GetQuestionInContest(ctx, contestID, questionID)
	if err != nil {
		return domain.McqResult{}, err
	}
	if caller.UserID == found.Contest.CreatorID {
		return domain.McqResult{}, domain.ErrForbidden
	}
	now := s.now()
	if !found.Contest.IsActive(now) {
		return domain.McqResult{}, domain.ErrContestNotActive
	}

	exists, err := s.submissions.HasMcqSubmission(ctx, caller.UserID, questionID)
	if err != nil {
		return domain.McqResult{}, fmt.Errorf("check existing submission: %w", err)
	}
	if exists {
		return domain.McqResult{}, domain.ErrAlreadySubmitted
	}

	question := found.Question
	if selectedOptionIndex < 0 || selectedOptionIndex >= len(question.Options) {
		return domain.McqResult{}, domain.ErrInvalidRequest
	}

	result := domain.McqResult{IsCorrect: selectedOptionIndex == question.CorrectOptionIndex}
	if result.IsCorrect {
		result.PointsEarned = question.Points
	}

	err = s.submissions.CreateMcqSubmission(ctx, domain.McqSubmission{
		ID:                  uuid.NewString(),
		UserID:              caller.UserID,
		QuestionID:          questionID,
		SelectedOptionIndex: selectedOptionIndex,
		IsCorrect:           result.IsCorrect,
		PointsEarned:        result.PointsEarned,
		CreatedAt:           now,
	})
	if err != nil {
		return domain.McqResult{}, err
	}
	return result, nil
}

// SubmitProblemSolution judges and stores one attempt. Attempts are never rejected as duplicates.
func (s *SubmissionService) SubmitProblemSolution(ctx context.Context, caller domain.Identity, problemID, code, language string) (domain.DsaResult, error) {
	found, err := s.contests.GetProblem(ctx, problemID)
	if err != nil {
		return domain.DsaResult{}, err
	}
	if caller.UserID == found.Contest.CreatorID {
		return domain.DsaResult{}, domain.ErrForbidden
	}
	now := s.now()
	if !found.Contest.IsActive(now) {
		return domain.DsaResult{}, domain.ErrContestNotActive
	}

	if s.limiter != nil {
		ok, err := s.limiter.Allow(ctx, caller.UserID, problemID)
		if err != nil {
			return domain.DsaResult{}, fmt.Errorf("submission limiter: %w", err)
		}
		if !ok {
			return domain.DsaResult{}, domain.ErrRateLimited
		}
	}

	problem := found.Problem
	total := found.TestCaseCount
	verdict, err := s.judge.Judge(ctx, JudgeRequest{
		Code:           code,
		Language:       language,
		TotalTestCases: total,
		TimeLimitMs:    problem.TimeLimit,
		MemoryLimitMb:  problem.MemoryLimit,
	})
	if err != nil {
		return domain.DsaResult{}, fmt.Errorf("judge: %w", err)
	}

	passed := clamp(verdict.TestCasesPassed, 0, total)
	result := domain.DsaResult{
		Status:          verdict.Status,
		PointsEarned:    ScoreAttempt(passed, total, problem.Points),
		TestCasesPassed: passed,
		TotalTestCases:  total,
	}

	err = s.submissions.CreateDsaSubmission(ctx, domain.DsaSubmission{
		ID:              uuid.NewString(),
		UserID:          caller.UserID,
		ProblemID:       problemID,
		Code:            code,
		Language:        language,
		Status:          result.Status,
		PointsEarned:    result.PointsEarned,
		TestCasesPassed: result.TestCasesPassed,
		TotalTestCases:  result.TotalTestCases,
		ExecutionTimeMs: verdict.ExecutionTimeMs,
		CreatedAt:       now,
	})
	if err != nil {
		return domain.DsaResult{}, fmt.Errorf("store submission: %w", err)
	}
	return result, nil
}

// ScoreAttempt is floor(passed/total * points) with total treated as 1 when zero.
func ScoreAttempt(passed, total, points int) int {
	if total < 1 {
		total = 1
	}
	return passed * points / total
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
