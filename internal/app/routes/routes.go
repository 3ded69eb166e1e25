package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/KamiliaNHayati/university-registration-contracts/internal/app/controllers"
	"github.com/KamiliaNHayati/university-registration-contracts/internal/app/models"
	"github.com/KamiliaNHayati/university-registration-contracts/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	catalogController *controllers.CatalogController,
	enrollmentController *controllers.EnrollmentController,
	adminController *controllers.AdminController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/challenge", authController.Challenge)
		auth.POST("/login", authController.Login)
	}

	// --- Public catalog routes ---
	catalog := v1.Group("/catalog")
	{
		catalog.GET("/university", catalogController.University)
		catalog.GET("/faculties", catalogController.Faculties)
		catalog.GET("/faculties/:faculty/majors", catalogController.Majors)
		catalog.GET("/faculties/:faculty/majors/:major/cost", catalogController.MajorCost)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		enrollment := authenticated.Group("/enrollment")
		{
			enrollment.GET("/status", enrollmentController.Status)
			enrollment.POST("/apply", enrollmentController.Apply)
			enrollment.POST("/enroll", enrollmentController.Enroll)
			enrollment.POST("/certificate/claim", enrollmentController.ClaimCertificate)
			enrollment.GET("/calls/:id", enrollmentController.Call)
		}

		// Owner-only routes. The gate saves students from paying gas on
		// transactions the contract would revert anyway.
		admin := authenticated.Group("/admin")
		admin.Use(authMiddleware.RoleRequired(string(models.RoleOwner)))
		{
			admin.GET("/applicants", adminController.PendingApplicants)
			admin.GET("/students", adminController.EnrolledStudents)
			admin.GET("/applications/:address", adminController.Application)
			admin.POST("/applications/approve", adminController.Approve)
			admin.POST("/applications/reject", adminController.Reject)
			admin.POST("/students/gpa", adminController.UpdateGPA)
			admin.POST("/students/graduate", adminController.Graduate)
		}
	}
}
