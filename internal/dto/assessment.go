package dto

import "time"

// SaveAnswerRequest is the request body for saving one question answer
// @Description Request body for saving an answer to an excellence question
type SaveAnswerRequest struct {
	ParticipantID    string `json:"participant_id"`
	QuestionID       string `json:"question_id"`
	SurveyID         string `json:"survey_id,omitempty"` // empty = standalone assessment
	ResponseText     string `json:"response_text"`
	TimeSpentSeconds int    `json:"time_spent_seconds"`
}

// AnswerResponse represents a saved answer in the API response
type AnswerResponse struct {
	ID           string    `json:"id"`
	QuestionID   string    `json:"question_id"`
	ResponseText string    `json:"response_text"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ProgressRequest is the request body for updating a progress record
type ProgressRequest struct {
	ParticipantID       string   `json:"participant_id"`
	SurveyID            string   `json:"survey_id,omitempty"`
	AnsweredQuestionIDs []string `json:"answered_question_ids"`
	IsCompleted         *bool    `json:"is_completed,omitempty"`
}

// ProgressResponse represents a progress record in the API response
type ProgressResponse struct {
	ParticipantID       string     `json:"participant_id"`
	SurveyID            string     `json:"survey_id,omitempty"`
	AnsweredQuestionIDs []string   `json:"answered_question_ids"`
	AnsweredCount       int        `json:"answered_count"`
	IsCompleted         bool       `json:"is_completed"`
	CompletedAt         *time.Time `json:"completed_at,omitempty"`
}

// SubmitRequest is the request body for the final submission
type SubmitRequest struct {
	ParticipantID  string `json:"participant_id"`
	OrganizationID string `json:"organization_id,omitempty"`
	SurveyID       string `json:"survey_id,omitempty"`
}

// SubmissionResponse represents an accepted submission in the API response.
// AlreadySubmitted is true when the call found an earlier submission and
// returned it unchanged.
type SubmissionResponse struct {
	AssessmentID      string    `json:"assessment_id"`
	SubmittedAt       time.Time `json:"submitted_at"`
	TotalQuestions    int       `json:"total_questions"`
	AnsweredQuestions int       `json:"answered_questions"`
	CompletionRate    float64   `json:"completion_rate"`
	AlreadySubmitted  bool      `json:"already_submitted,omitempty"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Error string `json:"error"`
}
