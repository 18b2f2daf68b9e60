package postgres

import (
	"context"
	"errors"
	"fmt"

	"contest-service/internal/domain"
	"github.com/jackc/pgx/v4"
)

func (s *Store) CreateContest(ctx context.Context, c domain.Contest) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO contests (id, creator_id, title, description, start_time, end_time, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, c.CreatorID, c.Title, c.Description, c.StartTime, c.EndTime, c.CreatedAt)
	if err != nil {
		if code, _ := pgErrorCode(err); code == foreignKeyViolation {
			return fmt.Errorf("creator %s: %w", c.CreatorID, domain.ErrUserNotFound)
		}
		return fmt.Errorf("insert contest: %w", err)
	}
	return nil
}

func (s *Store) GetContest(ctx context.Context, contestID string) (domain.Contest, error) {
	var c domain.Contest
	err := s.pool.QueryRow(ctx,
		`SELECT id::text, creator_id::text, title, description, start_time, end_time, created_at
		 FROM contests WHERE id = $1`, contestID).
		Scan(&c.ID, &c.CreatorID, &c.Title, &c.Description, &c.StartTime, &c.EndTime, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Contest{}, domain.ErrContestNotFound
	}
	if err != nil {
		return domain.Contest{}, fmt.Errorf("select contest: %w", err)
	}
	return c, nil
}

func (s *Store) AddQuestion(ctx context.Context, q domain.MCQQuestion) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO mcq_questions (id, contest_id, question_text, options, correct_option_index, points, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		q.ID, q.ContestID, q.QuestionText, q.Options, q.CorrectOptionIndex, q.Points, q.CreatedAt)
	if err != nil {
		if code, _ := pgErrorCode(err); code == foreignKeyViolation {
			return domain.ErrContestNotFound
		}
		return fmt.Errorf("insert question: %w", err)
	}
	return nil
}

// AddProblem writes the problem and its test cases in one transaction.
func (s *Store) AddProblem(ctx context.Context, p domain.DsaProblem) error {
	err := s.pool.BeginFunc(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO dsa_problems (id, contest_id, title, description, tags, points, time_limit, memory_limit, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			p.ID, p.ContestID, p.Title, p.Description, p.Tags, p.Points, p.TimeLimit, p.MemoryLimit, p.CreatedAt)
		if err != nil {
			return err
		}

		batch := &pgx.Batch{}
		for i, tc := range p.TestCases {
			batch.Queue(
				`INSERT INTO test_cases (problem_id, position, input, expected_output, is_hidden) VALUES ($1, $2, $3, $4, $5)`,
				p.ID, i, tc.Input, tc.ExpectedOutput, tc.IsHidden)
		}
		br := tx.SendBatch(ctx, batch)
		for range p.TestCases {
			if _, err := br.Exec(); err != nil {
				br.Close()
				return err
			}
		}
		return br.Close()
	})
	if err != nil {
		if code, _ := pgErrorCode(err); code == foreignKeyViolation {
			return domain.ErrContestNotFound
		}
		return fmt.Errorf("insert problem: %w", err)
	}
	return nil
}

func (s *Store) ListQuestions(ctx context.Context, contestID string) ([]domain.MCQQuestion, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id::text, contest_id::text, question_text, options, correct_option_index, points, created_at
		 FROM mcq_questions WHERE contest_id = $1 ORDER BY created_at, id`, contestID)
	if err != nil {
		return nil, fmt.Errorf("select questions: %w", err)
	}
	defer rows.Close()

	var out []domain.MCQQuestion
	for rows.Next() {
		var q domain.MCQQuestion
		if err := rows.Scan(&q.ID, &q.ContestID, &q.QuestionText, &q.Options, &q.CorrectOptionIndex, &q.Points, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (s *Store) ListProblems(ctx context.Context, contestID string) ([]domain.DsaProblem, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id::text, contest_id::text, title, description, tags, points, time_limit, memory_limit, created_at
		 FROM dsa_problems WHERE contest_id = $1 ORDER BY created_at, id`, contestID)
	if err != nil {
		return nil, fmt.Errorf("select problems: %w", err)
	}
	defer rows.Close()

	var out []domain.DsaProblem
	for rows.Next() {
		var p domain.DsaProblem
		if err := rows.Scan(&p.ID, &p.ContestID, &p.Title, &p.Description, &p.Tags, &p.Points, &p.TimeLimit, &p.MemoryLimit, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan problem: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) GetQuestionInContest(ctx context.Context, contestID, questionID string) (domain.QuestionInContest, error) {
	var (
		q domain.MCQQuestion
		c domain.Contest
	)
	err := s.pool.QueryRow(ctx,
		`SELECT q.id::text, q.contest_id::text, q.question_text, q.options, q.correct_option_index, q.points, q.created_at,
		        c.id::text, c.creator_id::text, c.title, c.description, c.start_time, c.end_time, c.created_at
		 FROM mcq_questions q JOIN contests c ON c.id = q.contest_id
		 WHERE q.id = $1 AND q.contest_id = $2`, questionID, contestID).
		Scan(&q.ID, &q.ContestID, &q.QuestionText, &q.Options, &q.CorrectOptionIndex, &q.Points, &q.CreatedAt,
			&c.ID, &c.CreatorID, &c.Title, &c.Description, &c.StartTime, &c.EndTime, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.QuestionInContest{}, domain.ErrQuestionNotFound
	}
	if err != nil {
		return domain.QuestionInContest{}, fmt.Errorf("select question: %w", err)
	}
	return domain.QuestionInContest{Question: q, Contest: c}, nil
}

func (s *Store) GetProblem(ctx context.Context, problemID string) (domain.ProblemInContest, error) {
	var out domain.ProblemInContest
	p, c := &out.Problem, &out.Contest
	err := s.pool.QueryRow(ctx,
		`SELECT p.id::text, p.contest_id::text, p.title, p.description, p.tags, p.points, p.time_limit, p.memory_limit, p.created_at,
		        c.id::text, c.creator_id::text, c.title, c.description, c.start_time, c.end_time, c.created_at,
		        (SELECT count(*) FROM test_cases t WHERE t.problem_id = p.id)
		 FROM dsa_problems p JOIN contests c ON c.id = p.contest_id
		 WHERE p.id = $1`, problemID).
		Scan(&p.ID, &p.ContestID, &p.Title, &p.Description, &p.Tags, &p.Points, &p.TimeLimit, &p.MemoryLimit, &p.CreatedAt,
			&c.ID, &c.CreatorID, &c.Title, &c.Description, &c.StartTime, &c.EndTime, &c.CreatedAt,
			&out.TestCaseCount)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ProblemInContest{}, domain.ErrProblemNotFound
	}
	if err != nil {
		return domain.ProblemInContest{}, fmt.Errorf("select problem: %w", err)
	}
	return out, nil
}

func (s *Store) ListVisibleTestCases(ctx context.Context, problemID string) ([]domain.TestCase, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT input, expected_output, is_hidden FROM test_cases
		 WHERE problem_id = $1 AND NOT is_hidden ORDER BY position`, problemID)
	if err != nil {
		return nil, fmt.Errorf("select test cases: %w", err)
	}
	defer rows.Close()

	var out []domain.TestCase
	for rows.Next() {
		var tc domain.TestCase
		if err := rows.Scan(&tc.Input, &tc.ExpectedOutput, &tc.IsHidden); err != nil {
			return nil, fmt.Errorf("scan test case: %w", err)
		}
		out = append(out, tc)
	}
	return out, rows.Err()
}
