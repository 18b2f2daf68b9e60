package http

import (
	"net/http"
	"time"

	"contest-service/internal/app"
	"contest-service/internal/domain"
	"github.com/go-chi/chi/v5"
)

type ContestHandler struct {
	contests    *app.ContestService
	submissions *app.SubmissionService
	leaderboard *app.LeaderboardService
}

func NewContestHandler(contests *app.ContestService, submissions *app.SubmissionService, leaderboard *app.LeaderboardService) *ContestHandler {
	return &ContestHandler{contests: contests, submissions: submissions, leaderboard: leaderboard}
}

func (h *ContestHandler) RegisterRoutes(r chi.Router) {
	r.Get("/{contestId}", h.getContest)
	r.Get("/{contestId}/leaderboard", h.getLeaderboard)
	r.Post("/{contestId}/mcq/{questionId}/submit", h.submitAnswer)

	r.Group(func(creator chi.Router) {
		creator.Use(RequireRole(domain.RoleCreator))
		creator.Post("/", h.createContest)
		creator.Post("/{contestId}/mcq", h.addQuestion)
		creator.Post("/{contestId}/dsa", h.addProblem)
	})
}

func (h *ContestHandler) createContest(w http.ResponseWriter, r *http.Request) {
	caller, _ := identityFromContext(r.Context())

	var req createContestRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, codeValidation)
		return
	}
	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		respondError(w, http.StatusBadRequest, codeValidation)
		return
	}
	end, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		respondError(w, http.StatusBadRequest, codeValidation)
		return
	}

	contest, err := h.contests.CreateContest(r.Context(), caller, app.CreateContestInput{
		Title:       req.Title,
		Description: req.Description,
		StartTime:   start,
		EndTime:     end,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, contest.View())
}

func (h *ContestHandler) getContest(w http.ResponseWriter, r *http.Request) {
	caller, _ := identityFromContext(r.Context())
	contestID, ok := parseID(chi.URLParam(r, "contestId"))
	if !ok {
		respondError(w, http.StatusNotFound, codeContestNotFound)
		return
	}

	details, found, err := h.contests.GetContestDetails(r.Context(), caller, contestID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !found {
		respondError(w, http.StatusNotFound, codeContestNotFound)
		return
	}
	respondJSON(w, http.StatusOK, details)
}

func (h *ContestHandler) addQuestion(w http.ResponseWriter, r *http.Request) {
	caller, _ := identityFromContext(r.Context())
	contestID, ok := parseID(chi.URLParam(r, "contestId"))
	if !ok {
		respondError(w, http.StatusNotFound, codeContestNotFound)
		return
	}

	var req addQuestionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, codeValidation)
		return
	}

	ref, err := h.contests.AddMcqQuestion(r.Context(), caller, contestID, app.AddQuestionInput{
		QuestionText:       req.QuestionText,
		Options:            req.Options,
		CorrectOptionIndex: *req.CorrectOptionIndex,
		Points:             req.Points,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, ref)
}

func (h *ContestHandler) addProblem(w http.ResponseWriter, r *http.Request) {
	caller, _ := identityFromContext(r.Context())
	contestID, ok := parseID(chi.URLParam(r, "contestId"))
	if !ok {
		respondError(w, http.StatusNotFound, codeContestNotFound)
		return
	}

	var req addProblemRequest
	if err := decodeJSONLimit(w, r, &req, maxProblemBodyBytes); err != nil {
		respondError(w, http.StatusBadRequest, codeValidation)
		return
	}

	cases := make([]domain.TestCase, 0, len(req.TestCases))
	for _, tc := range req.TestCases {
		cases = append(cases, domain.TestCase{
			Input:          tc.Input,
			ExpectedOutput: tc.ExpectedOutput,
			IsHidden:       tc.IsHidden,
		})
	}
	ref, err := h.contests.AddDsaProblem(r.Context(), caller, contestID, app.AddProblemInput{
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
		Points:      intOrZero(req.Points),
		TimeLimit:   intOrZero(req.TimeLimit),
		MemoryLimit: intOrZero(req.MemoryLimit),
		TestCases:   cases,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, ref)
}

func (h *ContestHandler) submitAnswer(w http.ResponseWriter, r *http.Request) {
	caller, _ := identityFromContext(r.Context())
	contestID, okContest := parseID(chi.URLParam(r, "contestId"))
	questionID, okQuestion := parseID(chi.URLParam(r, "questionId"))
	if !okContest || !okQuestion {
		respondError(w, http.StatusNotFound, codeQuestionNotFound)
		return
	}

	var req submitAnswerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, codeInvalidRequest)
		return
	}

	result, err := h.submissions.SubmitMcqAnswer(r.Context(), caller, contestID, questionID, *req.SelectedOptionIndex)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, result)
}

func (h *ContestHandler) getLeaderboard(w http.ResponseWriter, r *http.Request) {
	contestID, ok := parseID(chi.URLParam(r, "contestId"))
	if !ok {
		respondError(w, http.StatusNotFound, codeContestNotFound)
		return
	}

	entries, found, err := h.leaderboard.GetContestLeaderboard(r.Context(), contestID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !found {
		respondError(w, http.StatusNotFound, codeContestNotFound)
		return
	}
	respondJSON(w, http.StatusOK, entries)
}
