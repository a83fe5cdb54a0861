package handler

import (
	"orgpulse/internal/dto"
	"orgpulse/internal/service"
	"orgpulse/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// CultureHandler handles culture instrument HTTP requests
type CultureHandler struct {
	responses   service.CultureResponseService
	aggregation service.AggregationService
	validator   *validation.Validator
}

// NewCultureHandler creates a new CultureHandler instance
func NewCultureHandler(responses service.CultureResponseService, aggregation service.AggregationService) *CultureHandler {
	return &CultureHandler{
		responses:   responses,
		aggregation: aggregation,
		validator:   validation.NewValidator(),
	}
}

// SubmitResponse godoc
// @Summary Submit a scored culture response
// @Description Stores one response whose now and preferred profiles each distribute exactly 100 points
// @Tags culture
// @Accept json
// @Produce json
// @Param request body dto.SubmitCultureResponseRequest true "Scored response"
// @Success 200 {object} dto.CultureResponseAck
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /responses [post]
func (h *CultureHandler) SubmitResponse(c *fiber.Ctx) error {
	var req dto.SubmitCultureResponseRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if errs := h.validator.ValidateCultureResponseRequest(&req); len(errs) > 0 {
		return errs
	}

	resp, err := h.responses.SubmitResponse(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetAggregates godoc
// @Summary Get aggregate report for a survey
// @Description Returns every aggregate slice of the survey, whole organization first
// @Tags culture
// @Accept json
// @Produce json
// @Param survey_id query string true "Survey ID"
// @Success 200 {array} dto.AggregateSliceResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /aggregates [get]
func (h *CultureHandler) GetAggregates(c *fiber.Ctx) error {
	surveyID, _ := c.Locals("validated_survey_id").(string)

	slices, err := h.aggregation.ComputeAggregates(c.Context(), surveyID)
	if err != nil {
		return err
	}
	return c.JSON(slices)
}
