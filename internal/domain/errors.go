package domain

import "errors"

var (
	// ErrValidation is returned for malformed or out-of-range input.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidRequest is returned when a submission payload does not fit the target.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrContestNotFound indicates the contest id does not resolve.
	ErrContestNotFound = errors.New("contest not found")
	// ErrQuestionNotFound indicates the question does not exist in the given contest.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrProblemNotFound indicates the problem id does not resolve.
	ErrProblemNotFound = errors.New("problem not found")
	// ErrUserNotFound indicates the user id or email does not resolve.
	ErrUserNotFound = errors.New("user not found")
	// ErrForbidden is returned when an authenticated caller may not perform the action.
	ErrForbidden = errors.New("forbidden")
	// ErrUnauthorized is returned when the caller identity is missing or invalid.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrContestNotActive is returned outside the contest time window.
	ErrContestNotActive = errors.New("contest not active")
	// ErrAlreadySubmitted is returned for a second answer to the same question.
	ErrAlreadySubmitted = errors.New("already submitted")
	// ErrConflict is a uniqueness violation without a more specific meaning.
	ErrConflict = errors.New("conflict")
	// ErrEmailTaken is returned on signup with an email that is already registered.
	ErrEmailTaken = errors.New("email already exists")
	// ErrInvalidCredentials is returned on login with an unknown email or wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrRateLimited is returned when a user submits too often.
	ErrRateLimited = errors.New("rate limited")
)
