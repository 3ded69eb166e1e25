package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/KamiliaNHayati/university-registration-contracts/internal/app/models/dto"
	"github.com/KamiliaNHayati/university-registration-contracts/internal/app/services"
	"github.com/KamiliaNHayati/university-registration-contracts/internal/middleware"
)

// CatalogController serves the on-chain faculty and major catalog
type CatalogController struct {
	catalogService services.CatalogService
	logger         zerolog.Logger
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(catalogService services.CatalogService, logger zerolog.Logger) *CatalogController {
	return &CatalogController{
		catalogService: catalogService,
		logger:         logger,
	}
}

// University returns the university display name.
func (c *CatalogController) University(ctx *gin.Context) {
	resp, err := c.catalogService.University(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// Faculties returns the faculty list.
func (c *CatalogController) Faculties(ctx *gin.Context) {
	resp, err := c.catalogService.Faculties(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// Majors returns the majors of one faculty.
func (c *CatalogController) Majors(ctx *gin.Context) {
	faculty := ctx.Param("faculty")
	resp, err := c.catalogService.Majors(ctx.Request.Context(), faculty)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// MajorCost returns the enrollment fee of one (faculty, major) pair.
func (c *CatalogController) MajorCost(ctx *gin.Context) {
	faculty := ctx.Param("faculty")
	major := ctx.Param("major")
	resp, err := c.catalogService.MajorCost(ctx.Request.Context(), faculty, major)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}
