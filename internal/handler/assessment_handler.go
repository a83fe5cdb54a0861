package handler

import (
	"orgpulse/internal/domain"
	"orgpulse/internal/dto"
	"orgpulse/internal/service"
	"orgpulse/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// AssessmentHandler handles excellence assessment HTTP requests
type AssessmentHandler struct {
	completion service.CompletionService
	submission service.SubmissionService
	validator  *validation.Validator
}

// NewAssessmentHandler creates a new AssessmentHandler instance
func NewAssessmentHandler(completion service.CompletionService, submission service.SubmissionService) *AssessmentHandler {
	return &AssessmentHandler{
		completion: completion,
		submission: submission,
		validator:  validation.NewValidator(),
	}
}

// SaveAnswer godoc
// @Summary Save an answer
// @Description Upserts one answer to an excellence question; saving unchanged text is a no-op
// @Tags assessment
// @Accept json
// @Produce json
// @Param request body dto.SaveAnswerRequest true "Answer details"
// @Success 200 {object} dto.AnswerResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /answers [post]
func (h *AssessmentHandler) SaveAnswer(c *fiber.Ctx) error {
	var req dto.SaveAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if errs := h.validator.ValidateSaveAnswerRequest(&req); len(errs) > 0 {
		return errs
	}

	resp, err := h.completion.RecordAnswer(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetProgress godoc
// @Summary Get assessment progress
// @Description Returns the progress record for a participant; empty progress when not started
// @Tags assessment
// @Accept json
// @Produce json
// @Param participant_id query string true "Participant ID"
// @Param survey_id query string false "Survey ID (omit for a standalone assessment)"
// @Success 200 {object} dto.ProgressResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /progress [get]
func (h *AssessmentHandler) GetProgress(c *fiber.Ctx) error {
	participantID, _ := c.Locals("validated_participant_id").(string)
	scope := domain.ScopeForSurvey(c.Query("survey_id"))

	resp, err := h.completion.GetProgress(c.Context(), participantID, scope)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// UpdateProgress godoc
// @Summary Update assessment progress
// @Description Upserts the progress record; completion is monotonic
// @Tags assessment
// @Accept json
// @Produce json
// @Param request body dto.ProgressRequest true "Progress details"
// @Success 200 {object} dto.ProgressResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /progress [post]
func (h *AssessmentHandler) UpdateProgress(c *fiber.Ctx) error {
	var req dto.ProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if errs := h.validator.ValidateProgressRequest(&req); len(errs) > 0 {
		return errs
	}

	resp, err := h.completion.UpdateProgress(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Submit godoc
// @Summary Submit a completed assessment
// @Description Validates completeness server side and records the one-time submission
// @Tags assessment
// @Accept json
// @Produce json
// @Param request body dto.SubmitRequest true "Submission details"
// @Success 200 {object} dto.SubmissionResponse
// @Failure 400 {object} middleware.ErrorResponse "Incomplete assessment, details carry the unanswered sample"
// @Failure 500 {object} middleware.ErrorResponse
// @Router /submit [post]
func (h *AssessmentHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if errs := h.validator.ValidateSubmitRequest(&req); len(errs) > 0 {
		return errs
	}

	resp, err := h.submission.ValidateAndSubmit(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
