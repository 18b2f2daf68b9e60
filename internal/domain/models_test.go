package domain

import (
	"testing"
	"time"
)

func TestContestIsActiveInclusiveWindow(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c := Contest{StartTime: start, EndTime: start.Add(time.Hour)}

	cases := []struct {
		at   time.Time
		want bool
	}{
		{start.Add(-time.Millisecond), false},
		{start, true},
		{start.Add(30 * time.Minute), true},
		{c.EndTime, true},
		{c.EndTime.Add(time.Millisecond), false},
	}
	for _, tc := range cases {
		if got := c.IsActive(tc.at); got != tc.want {
			t.Fatalf("IsActive(%s) = %v, want %v", tc.at.Format(TimeLayout), got, tc.want)
		}
	}
}

func TestQuestionViewHidesAnswerFromContestees(t *testing.T) {
	q := MCQQuestion{ID: "q", Options: []string{"a", "b"}, CorrectOptionIndex: 1, Points: 3}
	if v := q.View(RoleContestee); v.CorrectOptionIndex != nil {
		t.Fatalf("contestee view leaks the answer")
	}
	if v := q.View(RoleCreator); v.CorrectOptionIndex == nil || *v.CorrectOptionIndex != 1 {
		t.Fatalf("creator view should carry the answer, got %+v", v)
	}
}
