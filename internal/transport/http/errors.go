package http

import (
	"errors"
	"log"
	"net/http"

	"contest-service/internal/domain"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	codeValidation         = "VALIDATION_ERROR"
	codeInvalidRequest     = "INVALID_REQUEST"
	codeContestNotFound    = "CONTEST_NOT_FOUND"
	codeQuestionNotFound   = "QUESTION_NOT_FOUND"
	codeProblemNotFound    = "PROBLEM_NOT_FOUND"
	codeUserNotFound       = "USER_NOT_FOUND"
	codeForbidden          = "FORBIDDEN"
	codeUnauthorized       = "UNAUTHORIZED"
	codeContestNotActive   = "CONTEST_NOT_ACTIVE"
	codeAlreadySubmitted   = "ALREADY_SUBMITTED"
	codeConflict           = "CONFLICT"
	codeEmailTaken         = "EMAIL_ALREADY_EXISTS"
	codeInvalidCredentials = "INVALID_CREDENTIALS"
	codeRateLimited        = "RATE_LIMITED"
	codeRouteNotFound      = "ROUTE_NOT_FOUND"
	codeDBUnavailable      = "DB_UNAVAILABLE"
	codeInternal           = "INTERNAL_ERROR"
)

var errorTable = []struct {
	target error
	status int
	code   string
}{
	{domain.ErrValidation, http.StatusBadRequest, codeValidation},
	{domain.ErrInvalidRequest, http.StatusBadRequest, codeInvalidRequest},
	{domain.ErrContestNotFound, http.StatusNotFound, codeContestNotFound},
	{domain.ErrQuestionNotFound, http.StatusNotFound, codeQuestionNotFound},
	{domain.ErrProblemNotFound, http.StatusNotFound, codeProblemNotFound},
	{domain.ErrUserNotFound, http.StatusNotFound, codeUserNotFound},
	{domain.ErrForbidden, http.StatusForbidden, codeForbidden},
	{domain.ErrUnauthorized, http.StatusUnauthorized, codeUnauthorized},
	{domain.ErrContestNotActive, http.StatusBadRequest, codeContestNotActive},
	{domain.ErrAlreadySubmitted, http.StatusBadRequest, codeAlreadySubmitted},
	{domain.ErrEmailTaken, http.StatusBadRequest, codeEmailTaken},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, codeInvalidCredentials},
	{domain.ErrRateLimited, http.StatusTooManyRequests, codeRateLimited},
	{domain.ErrConflict, http.StatusConflict, codeConflict},
}

// writeError maps a service error to its status and code. Unclassified errors
// are logged and reported as INTERNAL_ERROR without detail.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	for _, e := range errorTable {
		if errors.Is(err, e.target) {
			respondError(w, e.status, e.code)
			return
		}
	}
	log.Printf("request %s %s %s failed: %v", middleware.GetReqID(r.Context()), r.Method, r.URL.Path, err)
	respondError(w, http.StatusInternalServerError, codeInternal)
}
