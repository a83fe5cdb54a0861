package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeNotFound     ErrorCode = "NOT_FOUND"

	// Validation errors
	CodeValidation    ErrorCode = "VALIDATION_ERROR"
	CodeMissingField  ErrorCode = "MISSING_FIELD"
	CodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	CodeOutOfRange    ErrorCode = "OUT_OF_RANGE"

	// Assessment specific errors
	CodeIncomplete       ErrorCode = "INCOMPLETE_SUBMISSION"
	CodeAlreadySubmitted ErrorCode = "ALREADY_SUBMITTED"
	CodeSurveyNotFound   ErrorCode = "SURVEY_NOT_FOUND"
	CodeQuestionNotFound ErrorCode = "QUESTION_NOT_FOUND"
)

// ErrAlreadyExists is returned by repositories when an insert collides with
// an existing record protected by a uniqueness constraint.
var ErrAlreadyExists = errors.New("record already exists")

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"details,omitempty"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string                 `json:"code"`
		Message string                 `json:"message"`
		Details map[string]interface{} `json:"details,omitempty"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
		Details: e.Context,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Helper functions for common errors
func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewSurveyNotFoundError(surveyID string) *DomainError {
	return NewError(CodeSurveyNotFound, fmt.Sprintf("Survey not found with ID: %s", surveyID), nil)
}

func NewQuestionNotFoundError(questionID string) *DomainError {
	return NewError(CodeQuestionNotFound, fmt.Sprintf("Question not found with ID: %s", questionID), nil)
}

// NewIncompleteError reports a submission attempt made before every required
// question has a non-empty answer. The context carries the exact counts and a
// sample of at most ten unanswered question IDs so the caller can direct the
// participant to the missing items.
func NewIncompleteError(answered, total int, unansweredSample []string) *DomainError {
	return &DomainError{
		Code:    CodeIncomplete,
		Message: fmt.Sprintf("Assessment is incomplete: %d of %d questions answered", answered, total),
		Context: map[string]interface{}{
			"answered_questions":  answered,
			"total_questions":     total,
			"remaining_questions": total - answered,
			"unanswered_sample":   unansweredSample,
		},
	}
}

// NewAlreadySubmittedError marks a repeated submission for a participant and
// scope that already have a completed record. Handlers surface this as a
// benign outcome, not a failure.
func NewAlreadySubmittedError(assessmentID string) *DomainError {
	return &DomainError{
		Code:    CodeAlreadySubmitted,
		Message: "Assessment has already been submitted",
		Context: map[string]interface{}{
			"assessment_id": assessmentID,
		},
	}
}

// ValidationError represents a single invalid request field
type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates field errors for one request
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	if len(e) == 1 {
		return fmt.Sprintf("validation failed: %s", e[0].Error())
	}
	return fmt.Sprintf("validation failed: %s (and %d more)", e[0].Error(), len(e)-1)
}

func NewMissingFieldError(field string) ValidationError {
	return ValidationError{
		Field:   field,
		Code:    string(CodeMissingField),
		Message: fmt.Sprintf("%s is required", field),
	}
}

func NewInvalidFormatError(field, value string) ValidationError {
	return ValidationError{
		Field:   field,
		Code:    string(CodeInvalidFormat),
		Message: fmt.Sprintf("%s has an invalid format: %s", field, value),
	}
}

func NewOutOfRangeError(field string, value, min, max interface{}) ValidationError {
	return ValidationError{
		Field:   field,
		Code:    string(CodeOutOfRange),
		Message: fmt.Sprintf("%s is out of range: got %v, expected between %v and %v", field, value, min, max),
	}
}
