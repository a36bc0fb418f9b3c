package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/velo-ui/knowledge/internal/models"
	"github.com/velo-ui/knowledge/internal/validation"
	"github.com/velo-ui/knowledge/pkg/utils"
)

type ValidateHandler struct {
	validator *validation.Validator
	logger    *logrus.Logger
}

func NewValidateHandler(validator *validation.Validator, logger *logrus.Logger) *ValidateHandler {
	return &ValidateHandler{
		validator: validator,
		logger:    logger,
	}
}

// ValidationResult is the validation envelope payload.
type ValidationResult struct {
	Errors          []validation.Issue                `json:"errors"`
	Warnings        []validation.Issue                `json:"warnings"`
	Score           int                               `json:"score"`
	Troubleshooting []validation.TroubleshootingEntry `json:"troubleshooting,omitempty"`
}

// HandleValidate checks a markup fragment against the component's rule
// tables and the generic diagnostics.
func (h *ValidateHandler) HandleValidate(c *gin.Context) {
	startTime := time.Now()

	var req models.ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Invalid validation request")
		utils.ErrorResponse(c, http.StatusBadRequest, utils.CodeBadRequest, "Invalid request format", err)
		return
	}

	if len(req.Markup) > 256*1024 {
		utils.ErrorResponse(c, http.StatusBadRequest, utils.CodeBadRequest, "Markup too large (max 256KB)", nil)
		return
	}

	report := h.validator.Validate(req.Component, req.Markup)

	// A lone parse issue means the fragment never made it into a tree.
	if len(report.Errors) == 1 && report.Errors[0].Category == "parse" {
		utils.ErrorResponse(c, http.StatusUnprocessableEntity, utils.CodeValidationError, report.Errors[0].Message, nil)
		return
	}

	result := ValidationResult{
		Errors:          report.Errors,
		Warnings:        report.Warnings,
		Score:           validation.QualityScore(report),
		Troubleshooting: validation.Troubleshoot(report),
	}
	if result.Errors == nil {
		result.Errors = []validation.Issue{}
	}
	if result.Warnings == nil {
		result.Warnings = []validation.Issue{}
	}

	h.logger.WithFields(logrus.Fields{
		"component": req.Component,
		"errors":    len(result.Errors),
		"warnings":  len(result.Warnings),
		"score":     result.Score,
	}).Info("Validation completed")

	utils.SuccessResponse(c, http.StatusOK, "Validation completed", result,
		utils.NewMeta("validation", startTime))
}
