package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/KamiliaNHayati/university-registration-contracts/internal/app/models"
	"github.com/KamiliaNHayati/university-registration-contracts/internal/app/models/dto"
	"github.com/KamiliaNHayati/university-registration-contracts/internal/app/services"
	"github.com/KamiliaNHayati/university-registration-contracts/internal/middleware"
	"github.com/KamiliaNHayati/university-registration-contracts/internal/pkg/apperrors"
)

// EnrollmentController handles the student-facing workflow endpoints
type EnrollmentController struct {
	enrollmentService services.EnrollmentService
	logger            zerolog.Logger
}

// NewEnrollmentController creates a new EnrollmentController
func NewEnrollmentController(enrollmentService services.EnrollmentService, logger zerolog.Logger) *EnrollmentController {
	return &EnrollmentController{
		enrollmentService: enrollmentService,
		logger:            logger,
	}
}

// Status returns the caller's ledger snapshot and its workflow projection.
// Accepted actions come from the projection; a stale or partial snapshot
// degrades the projection rather than failing the request.
func (c *EnrollmentController) Status(ctx *gin.Context) {
	address, role, ok := sessionIdentity(ctx)
	if !ok {
		return
	}

	resp, err := c.enrollmentService.Status(ctx.Request.Context(), address, role)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// Apply submits an enrollment application.
func (c *EnrollmentController) Apply(ctx *gin.Context) {
	address, _, ok := sessionIdentity(ctx)
	if !ok {
		return
	}

	var req dto.ApplyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid apply request payload")
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request payload").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	resp, err := c.enrollmentService.Apply(ctx.Request.Context(), address, &req)
	respondAction(ctx, resp, err)
}

// Enroll pays the enrollment fee for an approved application.
func (c *EnrollmentController) Enroll(ctx *gin.Context) {
	address, _, ok := sessionIdentity(ctx)
	if !ok {
		return
	}

	var req dto.EnrollRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid enroll request payload")
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request payload").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	resp, err := c.enrollmentService.Enroll(ctx.Request.Context(), address, &req)
	respondAction(ctx, resp, err)
}

// ClaimCertificate mints the caller's graduation certificate.
func (c *EnrollmentController) ClaimCertificate(ctx *gin.Context) {
	address, _, ok := sessionIdentity(ctx)
	if !ok {
		return
	}

	var req dto.ClaimRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid claim request payload")
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request payload").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	resp, err := c.enrollmentService.ClaimCertificate(ctx.Request.Context(), address, &req)
	respondAction(ctx, resp, err)
}

// Call returns the lifecycle state of a dispatched action.
func (c *EnrollmentController) Call(ctx *gin.Context) {
	resp, err := c.enrollmentService.Lookup(ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// respondAction writes the outcome of a dispatched action. A slot conflict
// keeps the 409 status but carries the already in-flight call in the body so
// the client can resume polling it instead of guessing the id.
func respondAction(ctx *gin.Context, resp *dto.ActionResponse, err error) {
	if err == nil {
		ctx.JSON(http.StatusAccepted, dto.NewAPIResponse(resp))
		return
	}
	if resp != nil && errors.Is(err, apperrors.ErrConflict) {
		ctx.JSON(http.StatusConflict, dto.APIResponse{
			Data:      resp,
			Error:     dto.NewErrorDetail(dto.ErrorCodeActionInFlight, err.Error()),
			Timestamp: time.Now(),
		})
		return
	}
	middleware.HandleAPIError(ctx, err)
}

// sessionIdentity pulls the authenticated address and role out of the
// request context. It writes the 401 itself when the session is missing.
func sessionIdentity(ctx *gin.Context) (string, models.RoleType, bool) {
	address, ok := middleware.SessionAddress(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return "", "", false
	}

	role := models.RoleStudent
	if raw, exists := ctx.Get(middleware.ContextRole); exists {
		if roleStr, isStr := raw.(string); isStr && roleStr == string(models.RoleOwner) {
			role = models.RoleOwner
		}
	}
	return address, role, true
}
