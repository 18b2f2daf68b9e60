// Package judge holds the placeholder code judge. It does not execute code:
// the verdict is a pure function of the submitted text and the test case count.
package judge

import (
	"context"
	"strings"

	"contest-service/internal/app"
	"contest-service/internal/domain"
)

var (
	timeLimitMarkers = []string{
		"tle", "time_limit", "time limit", "busy wait", "extremely slow", "o(n^3)", "10000000",
	}
	runtimeErrorMarkers = []string{
		"runtime_error", "throw", "panic", "syntax", "null pointer", "nullptr", "segfault",
		"exception", "nonexistentmethod",
	}
	wrongAnswerMarkers = []string{"wrong", "wa"}
)

// RuleJudge matches marker substrings in the code.
type RuleJudge struct{}

func NewRuleJudge() RuleJudge {
	return RuleJudge{}
}

func (RuleJudge) Judge(_ context.Context, req app.JudgeRequest) (app.JudgeResult, error) {
	code := strings.ToLower(req.Code)
	total := req.TotalTestCases

	switch {
	case containsAny(code, timeLimitMarkers):
		return app.JudgeResult{Status: domain.VerdictTimeLimitExceeded}, nil
	case containsAny(code, runtimeErrorMarkers),
		strings.Contains(code, "obj = null") && strings.Contains(code, "obj.property"):
		return app.JudgeResult{Status: domain.VerdictRuntimeError}, nil
	case containsAny(code, wrongAnswerMarkers):
		return app.JudgeResult{Status: domain.VerdictWrongAnswer, TestCasesPassed: max(0, total-2)}, nil
	}
	return app.JudgeResult{Status: domain.VerdictAccepted, TestCasesPassed: total}, nil
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
