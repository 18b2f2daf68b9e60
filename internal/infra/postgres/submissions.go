package postgres

import (
	"context"
	"fmt"

	"contest-service/internal/domain"
)

const mcqUniqueConstraint = "mcq_submissions_user_question_key"

func (s *Store) HasMcqSubmission(ctx context.Context, userID, questionID string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM mcq_submissions WHERE user_id = $1 AND question_id = $2)`,
		userID, questionID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("select mcq submission: %w", err)
	}
	return exists, nil
}

// CreateMcqSubmission relies on the (user_id, question_id) constraint to settle races.
func (s *Store) CreateMcqSubmission(ctx context.Context, sub domain.McqSubmission) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO mcq_submissions (id, user_id, question_id, selected_option_index, is_correct, points_earned, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		sub.ID, sub.UserID, sub.QuestionID, sub.SelectedOptionIndex, sub.IsCorrect, sub.PointsEarned, sub.CreatedAt)
	if err != nil {
		switch code, constraint := pgErrorCode(err); {
		case code == uniqueViolation && constraint == mcqUniqueConstraint:
			return domain.ErrAlreadySubmitted
		case code == uniqueViolation:
			return domain.ErrConflict
		}
		return fmt.Errorf("insert mcq submission: %w", err)
	}
	return nil
}

func (s *Store) CreateDsaSubmission(ctx context.Context, sub domain.DsaSubmission) error {
	status, err := toStorageVerdict(sub.Status)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO dsa_submissions (id, user_id, problem_id, code, language, status, points_earned,
		                              test_cases_passed, total_test_cases, execution_time, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		sub.ID, sub.UserID, sub.ProblemID, sub.Code, sub.Language, status, sub.PointsEarned,
		sub.TestCasesPassed, sub.TotalTestCases, sub.ExecutionTimeMs, sub.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert dsa submission: %w", err)
	}
	return nil
}

func (s *Store) ListMcqScores(ctx context.Context, contestID string) ([]domain.ScoreRow, error) {
	return s.scoreRows(ctx,
		`SELECT s.user_id::text, s.question_id::text, s.points_earned
		 FROM mcq_submissions s JOIN mcq_questions q ON q.id = s.question_id
		 WHERE q.contest_id = $1`, contestID)
}

// ListDsaScores returns the best attempt per (user, problem).
func (s *Store) ListDsaScores(ctx context.Context, contestID string) ([]domain.ScoreRow, error) {
	return s.scoreRows(ctx,
		`SELECT s.user_id::text, s.problem_id::text, MAX(s.points_earned)
		 FROM dsa_submissions s JOIN dsa_problems p ON p.id = s.problem_id
		 WHERE p.contest_id = $1
		 GROUP BY s.user_id, s.problem_id`, contestID)
}

func (s *Store) scoreRows(ctx context.Context, query, contestID string) ([]domain.ScoreRow, error) {
	rows, err := s.pool.Query(ctx, query, contestID)
	if err != nil {
		return nil, fmt.Errorf("select scores: %w", err)
	}
	defer rows.Close()

	var out []domain.ScoreRow
	for rows.Next() {
		var r domain.ScoreRow
		if err := rows.Scan(&r.UserID, &r.ItemID, &r.Points); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
