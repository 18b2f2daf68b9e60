package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Body caps. A JSON string costs at most 6 bytes per character (\uXXXX), so the
// solution cap fits 200000 characters of code. Problem bodies are capped below
// what the per-field maxima would allow in aggregate.
const (
	maxBodyBytes         = 1 << 20
	maxSolutionBodyBytes = 6*200000 + 64<<10
	maxProblemBodyBytes  = 32 << 20
)

var validate = validator.New()

type signupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Password string `json:"password" validate:"required,min=6,max=200"`
	Role     string `json:"role" validate:"omitempty,oneof=contestee creator"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,max=200"`
}

type createContestRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"required,max=2000"`
	StartTime   string `json:"startTime" validate:"required"`
	EndTime     string `json:"endTime" validate:"required"`
}

type addQuestionRequest struct {
	QuestionText       string   `json:"questionText" validate:"required,max=5000"`
	Options            []string `json:"options" validate:"required,min=2,max=10,dive,required,max=500"`
	CorrectOptionIndex *int     `json:"correctOptionIndex" validate:"required,min=0"`
	Points             int      `json:"points" validate:"required,min=1,max=1000"`
}

type testCaseRequest struct {
	Input          string `json:"input" validate:"max=100000"`
	ExpectedOutput string `json:"expectedOutput" validate:"max=100000"`
	IsHidden       bool   `json:"isHidden"`
}

type addProblemRequest struct {
	Title       string            `json:"title" validate:"required,max=200"`
	Description string            `json:"description" validate:"required,max=20000"`
	Tags        []string          `json:"tags" validate:"omitempty,max=20,dive,required,max=50"`
	Points      *int              `json:"points" validate:"omitempty,min=1,max=100000"`
	TimeLimit   *int              `json:"timeLimit" validate:"omitempty,min=1,max=60000"`
	MemoryLimit *int              `json:"memoryLimit" validate:"omitempty,min=1,max=8192"`
	TestCases   []testCaseRequest `json:"testCases" validate:"required,min=1,max=200,dive"`
}

type submitAnswerRequest struct {
	SelectedOptionIndex *int `json:"selectedOptionIndex" validate:"required"`
}

type submitSolutionRequest struct {
	Code     string `json:"code" validate:"required,max=200000"`
	Language string `json:"language" validate:"required,max=50"`
}

// decodeJSON reads exactly one JSON object with no unknown fields and validates it.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	return decodeJSONLimit(w, r, dst, maxBodyBytes)
}

func decodeJSONLimit(w http.ResponseWriter, r *http.Request, dst interface{}, limit int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("request body must contain a single JSON object")
	}
	return validate.Struct(dst)
}

// parseID normalizes a path UUID. ok is false for anything that is not a UUID.
func parseID(raw string) (string, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", false
	}
	return id.String(), true
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
