package validation

import (
	"regexp"
	"strings"

	"orgpulse/internal/domain"
	"orgpulse/internal/dto"
)

const maxResponseTextLength = 10000

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateSaveAnswerRequest validates the save answer request
func (v *Validator) ValidateSaveAnswerRequest(req *dto.SaveAnswerRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.ParticipantID) == "" {
		errors = append(errors, domain.NewMissingFieldError("participant_id"))
	}

	if strings.TrimSpace(req.QuestionID) == "" {
		errors = append(errors, domain.NewMissingFieldError("question_id"))
	} else if !isValidULID(req.QuestionID) {
		errors = append(errors, domain.NewInvalidFormatError("question_id", req.QuestionID))
	}

	if len(req.ResponseText) > maxResponseTextLength {
		errors = append(errors, domain.NewOutOfRangeError("response_text", len(req.ResponseText), 0, maxResponseTextLength))
	}

	if req.TimeSpentSeconds < 0 {
		errors = append(errors, domain.NewOutOfRangeError("time_spent_seconds", req.TimeSpentSeconds, 0, "unbounded"))
	}

	return errors
}

// ValidateProgressRequest validates the progress update request
func (v *Validator) ValidateProgressRequest(req *dto.ProgressRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.ParticipantID) == "" {
		errors = append(errors, domain.NewMissingFieldError("participant_id"))
	}

	for _, id := range req.AnsweredQuestionIDs {
		if !isValidULID(id) {
			errors = append(errors, domain.NewInvalidFormatError("answered_question_ids", id))
			break
		}
	}

	return errors
}

// ValidateSubmitRequest validates the final submission request
func (v *Validator) ValidateSubmitRequest(req *dto.SubmitRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.ParticipantID) == "" {
		errors = append(errors, domain.NewMissingFieldError("participant_id"))
	}

	return errors
}

// ValidateCultureResponseRequest validates a scored response request. Score
// range and sum-to-100 checks live in the domain; this catches the purely
// structural problems.
func (v *Validator) ValidateCultureResponseRequest(req *dto.SubmitCultureResponseRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.SurveyID) == "" {
		errors = append(errors, domain.NewMissingFieldError("survey_id"))
	}

	for attr := range req.Demographics {
		if !isValidAttributeName(attr) {
			errors = append(errors, domain.NewInvalidFormatError("demographics", attr))
			break
		}
	}

	return errors
}

// ValidateParticipantQuery validates the participant_id query parameter
func (v *Validator) ValidateParticipantQuery(participantID string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(participantID) == "" {
		errors = append(errors, domain.NewMissingFieldError("participant_id"))
	}

	return errors
}

// ValidateSurveyIDQuery validates the survey_id query parameter
func (v *Validator) ValidateSurveyIDQuery(surveyID string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(surveyID) == "" {
		errors = append(errors, domain.NewMissingFieldError("survey_id"))
	} else if !isValidULID(surveyID) {
		errors = append(errors, domain.NewInvalidFormatError("survey_id", surveyID))
	}

	return errors
}

// Helper functions for validation

// isValidULID checks if the string is a valid ULID format
func isValidULID(s string) bool {
	// ULID is 26 characters long, base32 encoded
	if len(s) != 26 {
		return false
	}
	// Check if all characters are valid base32 (Crockford's Base32)
	validULID := regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{26}$`)
	return validULID.MatchString(s)
}

// isValidAttributeName checks if a demographic attribute name is well formed
func isValidAttributeName(s string) bool {
	if len(s) == 0 || len(s) > 50 {
		return false
	}
	validAttribute := regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	return validAttribute.MatchString(s)
}
