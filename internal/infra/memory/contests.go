package memory

import (
	"context"

	"contest-service/internal/domain"
)

func (s *Store) CreateContest(_ context.Context, contest domain.Contest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.contests[contest.ID]; ok {
		return domain.ErrConflict
	}
	s.contests[contest.ID] = contest
	return nil
}

func (s *Store) GetContest(_ context.Context, contestID string) (domain.Contest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	contest, ok := s.contests[contestID]
	if !ok {
		return domain.Contest{}, domain.ErrContestNotFound
	}
	return contest, nil
}

func (s *Store) AddQuestion(_ context.Context, question domain.MCQQuestion) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.contests[question.ContestID]; !ok {
		return domain.ErrContestNotFound
	}
	question.Options = append([]string(nil), question.Options...)
	s.questions[question.ID] = question
	s.contestQuestions[question.ContestID] = append(s.contestQuestions[question.ContestID], question.ID)
	return nil
}

func (s *Store) AddProblem(_ context.Context, problem domain.DsaProblem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.contests[problem.ContestID]; !ok {
		return domain.ErrContestNotFound
	}
	s.problems[problem.ID] = copyProblem(problem)
	s.contestProblems[problem.ContestID] = append(s.contestProblems[problem.ContestID], problem.ID)
	return nil
}

func (s *Store) ListQuestions(_ context.Context, contestID string) ([]domain.MCQQuestion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.contestQuestions[contestID]
	out := make([]domain.MCQQuestion, 0, len(ids))
	for _, id := range ids {
		q := s.questions[id]
		q.Options = append([]string(nil), q.Options...)
		out = append(out, q)
	}
	return out, nil
}

func (s *Store) ListProblems(_ context.Context, contestID string) ([]domain.DsaProblem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.contestProblems[contestID]
	out := make([]domain.DsaProblem, 0, len(ids))
	for _, id := range ids {
		p := copyProblem(s.problems[id])
		p.TestCases = nil
		out = append(out, p)
	}
	return out, nil
}

func (s *Store) GetQuestionInContest(_ context.Context, contestID, questionID string) (domain.QuestionInContest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q, ok := s.questions[questionID]
	if !ok || q.ContestID != contestID {
		return domain.QuestionInContest{}, domain.ErrQuestionNotFound
	}
	q.Options = append([]string(nil), q.Options...)
	return domain.QuestionInContest{Question: q, Contest: s.contests[contestID]}, nil
}

func (s *Store) GetProblem(_ context.Context, problemID string) (domain.ProblemInContest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.problems[problemID]
	if !ok {
		return domain.ProblemInContest{}, domain.ErrProblemNotFound
	}
	count := len(p.TestCases)
	p = copyProblem(p)
	p.TestCases = nil
	return domain.ProblemInContest{Problem: p, Contest: s.contests[p.ContestID], TestCaseCount: count}, nil
}

func (s *Store) ListVisibleTestCases(_ context.Context, problemID string) ([]domain.TestCase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.problems[problemID]
	if !ok {
		return nil, domain.ErrProblemNotFound
	}
	out := make([]domain.TestCase, 0, len(p.TestCases))
	for _, tc := range p.TestCases {
		if !tc.IsHidden {
			out = append(out, tc)
		}
	}
	return out, nil
}

func copyProblem(p domain.DsaProblem) domain.DsaProblem {
	p.Tags = append([]string(nil), p.Tags...)
	p.TestCases = append([]domain.TestCase(nil), p.TestCases...)
	return p
}
