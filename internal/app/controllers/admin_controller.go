package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/KamiliaNHayati/university-registration-contracts/internal/app/models/dto"
	"github.com/KamiliaNHayati/university-registration-contracts/internal/app/services"
	"github.com/KamiliaNHayati/university-registration-contracts/internal/middleware"
)

// AdminController handles the registrar-owner workflow endpoints
type AdminController struct {
	adminService services.AdminService
	logger       zerolog.Logger
}

// NewAdminController creates a new AdminController
func NewAdminController(adminService services.AdminService, logger zerolog.Logger) *AdminController {
	return &AdminController{
		adminService: adminService,
		logger:       logger,
	}
}

// PendingApplicants lists addresses with applications awaiting review.
func (c *AdminController) PendingApplicants(ctx *gin.Context) {
	resp, err := c.adminService.PendingApplicants(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// EnrolledStudents lists enrolled student addresses.
func (c *AdminController) EnrolledStudents(ctx *gin.Context) {
	resp, err := c.adminService.EnrolledStudents(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// Application returns one applicant's current application.
func (c *AdminController) Application(ctx *gin.Context) {
	resp, err := c.adminService.ApplicationOf(ctx.Request.Context(), ctx.Param("address"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// Approve approves a pending application.
func (c *AdminController) Approve(ctx *gin.Context) {
	c.decide(ctx, c.adminService.Approve)
}

// Reject rejects a pending application.
func (c *AdminController) Reject(ctx *gin.Context) {
	c.decide(ctx, c.adminService.Reject)
}

func (c *AdminController) decide(ctx *gin.Context, action func(context.Context, string, *dto.DecisionRequest) (*dto.ActionResponse, error)) {
	owner, _, ok := sessionIdentity(ctx)
	if !ok {
		return
	}

	var req dto.DecisionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid decision request payload")
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request payload").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	resp, err := action(ctx.Request.Context(), owner, &req)
	respondAction(ctx, resp, err)
}

// UpdateGPA records a student's grade average.
func (c *AdminController) UpdateGPA(ctx *gin.Context) {
	owner, _, ok := sessionIdentity(ctx)
	if !ok {
		return
	}

	var req dto.GPAUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid GPA update request payload")
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request payload").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	resp, err := c.adminService.UpdateGPA(ctx.Request.Context(), owner, &req)
	respondAction(ctx, resp, err)
}

// Graduate graduates an eligible student.
func (c *AdminController) Graduate(ctx *gin.Context) {
	owner, _, ok := sessionIdentity(ctx)
	if !ok {
		return
	}

	var req dto.GraduateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid graduate request payload")
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request payload").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	resp, err := c.adminService.Graduate(ctx.Request.Context(), owner, &req)
	respondAction(ctx, resp, err)
}
