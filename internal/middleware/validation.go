package middleware

import (
	"orgpulse/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateParticipantQuery validates the participant_id query parameter
func (vm *ValidationMiddleware) ValidateParticipantQuery() fiber.Handler {
	return func(c *fiber.Ctx) error {
		participantID := c.Query("participant_id")

		if errors := vm.validator.ValidateParticipantQuery(participantID); len(errors) > 0 {
			return errors // This will be handled by ErrorHandler middleware
		}

		// Store validated value in context for handlers to use
		c.Locals("validated_participant_id", participantID)
		return c.Next()
	}
}

// ValidateSurveyIDQuery validates the survey_id query parameter
func (vm *ValidationMiddleware) ValidateSurveyIDQuery() fiber.Handler {
	return func(c *fiber.Ctx) error {
		surveyID := c.Query("survey_id")

		if errors := vm.validator.ValidateSurveyIDQuery(surveyID); len(errors) > 0 {
			return errors
		}

		c.Locals("validated_survey_id", surveyID)
		return c.Next()
	}
}
