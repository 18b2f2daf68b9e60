// Package postgres implements the app repositories on a pgx connection pool.
// Role and verdict spellings are converted here and nowhere else.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"contest-service/internal/domain"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4/pgxpool"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// Store is the Postgres-backed repository set.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func pgErrorCode(err error) (code, constraint string) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName
	}
	return "", ""
}

func toStorageRole(r domain.Role) string {
	if r == domain.RoleCreator {
		return "CREATOR"
	}
	return "CONTESTEE"
}

func fromStorageRole(raw string) (domain.Role, error) {
	switch raw {
	case "CREATOR":
		return domain.RoleCreator, nil
	case "CONTESTEE":
		return domain.RoleContestee, nil
	}
	return "", fmt.Errorf("unknown stored role %q", raw)
}

var verdictToStorage = map[domain.Verdict]string{
	domain.VerdictAccepted:          "ACCEPTED",
	domain.VerdictWrongAnswer:       "WRONG_ANSWER",
	domain.VerdictTimeLimitExceeded: "TIME_LIMIT_EXCEEDED",
	domain.VerdictRuntimeError:      "RUNTIME_ERROR",
}

func toStorageVerdict(v domain.Verdict) (string, error) {
	s, ok := verdictToStorage[v]
	if !ok {
		return "", fmt.Errorf("unknown verdict %q", v)
	}
	return s, nil
}
