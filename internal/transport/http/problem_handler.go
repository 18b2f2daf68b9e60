package http

import (
	"net/http"

	"contest-service/internal/app"
	"github.com/go-chi/chi/v5"
)

type ProblemHandler struct {
	contests    *app.ContestService
	submissions *app.SubmissionService
}

func NewProblemHandler(contests *app.ContestService, submissions *app.SubmissionService) *ProblemHandler {
	return &ProblemHandler{contests: contests, submissions: submissions}
}

func (h *ProblemHandler) RegisterRoutes(r chi.Router) {
	r.Get("/{problemId}", h.getProblem)
	r.Post("/{problemId}/submit", h.submitSolution)
}

func (h *ProblemHandler) getProblem(w http.ResponseWriter, r *http.Request) {
	problemID, ok := parseID(chi.URLParam(r, "problemId"))
	if !ok {
		respondError(w, http.StatusNotFound, codeProblemNotFound)
		return
	}

	problem, found, err := h.contests.GetProblemDetails(r.Context(), problemID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !found {
		respondError(w, http.StatusNotFound, codeProblemNotFound)
		return
	}
	respondJSON(w, http.StatusOK, problem)
}

func (h *ProblemHandler) submitSolution(w http.ResponseWriter, r *http.Request) {
	caller, _ := identityFromContext(r.Context())
	problemID, ok := parseID(chi.URLParam(r, "problemId"))
	if !ok {
		respondError(w, http.StatusNotFound, codeProblemNotFound)
		return
	}

	var req submitSolutionRequest
	if err := decodeJSONLimit(w, r, &req, maxSolutionBodyBytes); err != nil {
		respondError(w, http.StatusBadRequest, codeInvalidRequest)
		return
	}

	result, err := h.submissions.SubmitProblemSolution(r.Context(), caller, problemID, req.Code, req.Language)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, result)
}
