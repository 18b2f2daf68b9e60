package judge

import (
	"context"
	"testing"

	"contest-service/internal/app"
	"contest-service/internal/domain"
)

func TestRuleJudgeVerdicts(t *testing.T) {
	tests := []struct {
		name       string
		code       string
		total      int
		wantStatus domain.Verdict
		wantPassed int
	}{
		{name: "clean code is accepted", code: "def solve(): return 42", total: 5, wantStatus: domain.VerdictAccepted, wantPassed: 5},
		{name: "time limit marker", code: "while True: pass # TLE", total: 5, wantStatus: domain.VerdictTimeLimitExceeded},
		{name: "slow loop constant", code: "for i in range(10000000): x += i", total: 5, wantStatus: domain.VerdictTimeLimitExceeded},
		{name: "panic is a runtime error", code: "func main() { panic(1) }", total: 5, wantStatus: domain.VerdictRuntimeError},
		{name: "null dereference pair", code: "let obj = null; obj.property", total: 5, wantStatus: domain.VerdictRuntimeError},
		{name: "wrong answer keeps two failing", code: "return wrong", total: 5, wantStatus: domain.VerdictWrongAnswer, wantPassed: 3},
		{name: "wrong answer never negative", code: "return wrong", total: 1, wantStatus: domain.VerdictWrongAnswer, wantPassed: 0},
		{name: "time limit wins over runtime error", code: "tle then throw", total: 3, wantStatus: domain.VerdictTimeLimitExceeded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewRuleJudge().Judge(context.Background(), app.JudgeRequest{Code: tt.code, TotalTestCases: tt.total})
			if err != nil {
				t.Fatalf("judge: %v", err)
			}
			if got.Status != tt.wantStatus || got.TestCasesPassed != tt.wantPassed {
				t.Errorf("Judge() = %s/%d, want %s/%d", got.Status, got.TestCasesPassed, tt.wantStatus, tt.wantPassed)
			}
		})
	}
}
