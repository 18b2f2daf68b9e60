package memory

import (
	"context"
	"strings"
	"sync"

	"contest-service/internal/domain"
)

// Store is an in-memory implementation of the app repositories. It enforces the
// same uniqueness and ownership rules as the Postgres schema.
type Store struct {
	mu sync.RWMutex

	users   map[string]domain.User
	byEmail map[string]string

	contests         map[string]domain.Contest
	questions        map[string]domain.MCQQuestion
	contestQuestions map[string][]string
	problems         map[string]domain.DsaProblem
	contestProblems  map[string][]string

	mcq map[mcqKey]domain.McqSubmission
	dsa []domain.DsaSubmission
}

type mcqKey struct {
	userID     string
	questionID string
}

func NewStore() *Store {
	return &Store{
		users:            make(map[string]domain.User),
		byEmail:          make(map[string]string),
		contests:         make(map[string]domain.Contest),
		questions:        make(map[string]domain.MCQQuestion),
		contestQuestions: make(map[string][]string),
		problems:         make(map[string]domain.DsaProblem),
		contestProblems:  make(map[string][]string),
		mcq:              make(map[mcqKey]domain.McqSubmission),
	}
}

func (s *Store) Ping(context.Context) error {
	return nil
}

func (s *Store) CreateUser(_ context.Context, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	email := strings.ToLower(user.Email)
	if _, ok := s.byEmail[email]; ok {
		return domain.ErrEmailTaken
	}
	s.users[user.ID] = user
	s.byEmail[email] = user.ID
	return nil
}

func (s *Store) FindUserByEmail(_ context.Context, email string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return s.users[id], nil
}

func (s *Store) FindUsersByIDs(_ context.Context, ids []string) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]domain.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			users = append(users, u)
		}
	}
	return users, nil
}
