package memory

import (
	"context"

	"contest-service/internal/domain"
)

func (s *Store) HasMcqSubmission(_ context.Context, userID, questionID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.mcq[mcqKey{userID: userID, questionID: questionID}]
	return ok, nil
}

func (s *Store) CreateMcqSubmission(_ context.Context, sub domain.McqSubmission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.questions[sub.QuestionID]; !ok {
		return domain.ErrQuestionNotFound
	}
	key := mcqKey{userID: sub.UserID, questionID: sub.QuestionID}
	if _, ok := s.mcq[key]; ok {
		return domain.ErrAlreadySubmitted
	}
	s.mcq[key] = sub
	return nil
}

func (s *Store) CreateDsaSubmission(_ context.Context, sub domain.DsaSubmission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.problems[sub.ProblemID]; !ok {
		return domain.ErrProblemNotFound
	}
	s.dsa = append(s.dsa, sub)
	return nil
}

func (s *Store) ListMcqScores(_ context.Context, contestID string) ([]domain.ScoreRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var rows []domain.ScoreRow
	for _, sub := range s.mcq {
		if s.questions[sub.QuestionID].ContestID != contestID {
			continue
		}
		rows = append(rows, domain.ScoreRow{UserID: sub.UserID, ItemID: sub.QuestionID, Points: sub.PointsEarned})
	}
	return rows, nil
}

// ListDsaScores returns every attempt; the caller keeps the best per problem.
func (s *Store) ListDsaScores(_ context.Context, contestID string) ([]domain.ScoreRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var rows []domain.ScoreRow
	for _, sub := range s.dsa {
		if s.problems[sub.ProblemID].ContestID != contestID {
			continue
		}
		rows = append(rows, domain.ScoreRow{UserID: sub.UserID, ItemID: sub.ProblemID, Points: sub.PointsEarned})
	}
	return rows, nil
}
