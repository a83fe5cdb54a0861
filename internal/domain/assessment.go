package domain

import (
	"strings"
	"time"
)

// Question represents one item of the canonical excellence question catalog.
// The catalog is a fixed, externally seeded set; the core only reads it.
type Question struct {
	ID           string
	Category     string
	Text         string
	DisplayOrder int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate validates the question
func (q *Question) Validate() error {
	if q.Text == "" {
		return ValidationErrors{NewMissingFieldError("text")}
	}
	if q.Category == "" {
		return ValidationErrors{NewMissingFieldError("category")}
	}
	return nil
}

// QuestionAnswer is one participant's answer to one excellence question,
// scoped to a survey run or standalone. At most one record exists per
// (participant, question, scope).
type QuestionAnswer struct {
	ID               string
	ParticipantID    string
	QuestionID       string
	Scope            SurveyScope
	ResponseText     string
	TimeSpentSeconds int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewQuestionAnswer creates a new QuestionAnswer instance
func NewQuestionAnswer(participantID, questionID string, scope SurveyScope, text string, timeSpent int) *QuestionAnswer {
	now := time.Now()
	return &QuestionAnswer{
		ParticipantID:    participantID,
		QuestionID:       questionID,
		Scope:            scope,
		ResponseText:     text,
		TimeSpentSeconds: timeSpent,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// Validate validates the answer
func (a *QuestionAnswer) Validate() error {
	var errs ValidationErrors
	if strings.TrimSpace(a.ParticipantID) == "" {
		errs = append(errs, NewMissingFieldError("participant_id"))
	}
	if strings.TrimSpace(a.QuestionID) == "" {
		errs = append(errs, NewMissingFieldError("question_id"))
	}
	if a.TimeSpentSeconds < 0 {
		errs = append(errs, NewOutOfRangeError("time_spent", a.TimeSpentSeconds, 0, "unbounded"))
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// IsAnswered reports whether the answer counts toward completion. Whitespace
// only text does not.
func (a *QuestionAnswer) IsAnswered() bool {
	return strings.TrimSpace(a.ResponseText) != ""
}

// SameText reports whether the stored text matches the given text after
// trimming. Two empty answers compare equal.
func (a *QuestionAnswer) SameText(text string) bool {
	return strings.TrimSpace(a.ResponseText) == strings.TrimSpace(text)
}

// AssessmentProgress is the per (participant, scope) rollup of excellence
// instrument progress. Completion is monotonic: once IsCompleted is true it is
// never reset by normal flow.
type AssessmentProgress struct {
	ID                  string
	ParticipantID       string
	Scope               SurveyScope
	AnsweredQuestionIDs []string
	IsCompleted         bool
	CompletedAt         *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// NewAssessmentProgress creates an empty progress record for a participant and
// scope. Used both for first writes and as the synthesized zero value when no
// record exists yet.
func NewAssessmentProgress(participantID string, scope SurveyScope) *AssessmentProgress {
	now := time.Now()
	return &AssessmentProgress{
		ParticipantID:       participantID,
		Scope:               scope,
		AnsweredQuestionIDs: []string{},
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}

// MarkCompleted flips the record to completed and stamps the completion time.
// Calling it again is a no-op, preserving the original timestamp.
func (p *AssessmentProgress) MarkCompleted(at time.Time) {
	if p.IsCompleted {
		return
	}
	p.IsCompleted = true
	p.CompletedAt = &at
}

// AnsweredCount returns how many distinct questions have been answered.
func (p *AssessmentProgress) AnsweredCount() int {
	return len(p.AnsweredQuestionIDs)
}

// Submission is the immutable proof that a participant finished the
// excellence instrument. Created exactly once per (participant, scope).
type Submission struct {
	ID                string
	AssessmentID      string
	ParticipantID     string
	OrganizationID    string
	Scope             SurveyScope
	TotalQuestions    int
	AnsweredQuestions int
	SubmittedAt       time.Time
	CreatedAt         time.Time
}

// CompletionRate returns the answered percentage; a valid submission is
// always 100.
func (s *Submission) CompletionRate() float64 {
	if s.TotalQuestions == 0 {
		return 0
	}
	return float64(s.AnsweredQuestions) / float64(s.TotalQuestions) * 100
}
