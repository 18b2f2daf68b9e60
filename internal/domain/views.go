package domain

import "time"

// TimeLayout is the wire format for contest times (UTC, millisecond precision).
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

// ContestView is the public shape of a contest.
type ContestView struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	CreatorID   string `json:"creatorId"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
}

// QuestionView hides CorrectOptionIndex unless the viewer is a creator.
type QuestionView struct {
	ID                 string   `json:"id"`
	QuestionText       string   `json:"questionText"`
	Options            []string `json:"options"`
	CorrectOptionIndex *int     `json:"correctOptionIndex,omitempty"`
	Points             int      `json:"points"`
}

// ProblemSummary is a problem without any test cases.
type ProblemSummary struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Points      int      `json:"points"`
	TimeLimit   int      `json:"timeLimit"`
	MemoryLimit int      `json:"memoryLimit"`
}

// ContestDetailsView is a contest with its questions and problems.
type ContestDetailsView struct {
	ContestView
	Mcqs        []QuestionView   `json:"mcqs"`
	DsaProblems []ProblemSummary `json:"dsaProblems"`
}

// TestCaseView is a test case visible to everyone.
type TestCaseView struct {
	Input          string `json:"input"`
	ExpectedOutput string `json:"expectedOutput"`
}

// ProblemDetailsView is a problem with its non-hidden test cases only.
type ProblemDetailsView struct {
	ID               string         `json:"id"`
	ContestID        string         `json:"contestId"`
	Title            string         `json:"title"`
	Description      string         `json:"description"`
	Tags             []string       `json:"tags"`
	Points           int            `json:"points"`
	TimeLimit        int            `json:"timeLimit"`
	MemoryLimit      int            `json:"memoryLimit"`
	VisibleTestCases []TestCaseView `json:"visibleTestCases"`
}

// UserView is a user without credentials.
type UserView struct {
	ID    string  `json:"id"`
	Email string  `json:"email"`
	Name  *string `json:"name"`
	Role  Role    `json:"role"`
}

// CreatedRef identifies an entity created inside a contest.
type CreatedRef struct {
	ID        string `json:"id"`
	ContestID string `json:"contestId"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// View converts a contest to its public shape.
func (c Contest) View() ContestView {
	return ContestView{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		CreatorID:   c.CreatorID,
		StartTime:   formatTime(c.StartTime),
		EndTime:     formatTime(c.EndTime),
	}
}

// View converts a question for the given viewer role.
func (q MCQQuestion) View(viewer Role) QuestionView {
	v := QuestionView{
		ID:           q.ID,
		QuestionText: q.QuestionText,
		Options:      q.Options,
		Points:       q.Points,
	}
	if viewer == RoleCreator {
		idx := q.CorrectOptionIndex
		v.CorrectOptionIndex = &idx
	}
	return v
}

// Summary drops test cases from a problem.
func (p DsaProblem) Summary() ProblemSummary {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return ProblemSummary{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Tags:        tags,
		Points:      p.Points,
		TimeLimit:   p.TimeLimit,
		MemoryLimit: p.MemoryLimit,
	}
}

// View converts a user to its public shape.
func (u User) View() UserView {
	return UserView{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}
