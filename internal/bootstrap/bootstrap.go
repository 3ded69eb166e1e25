package bootstrap

import (
	"context"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/KamiliaNHayati/university-registration-contracts/internal/app/controllers"
	"github.com/KamiliaNHayati/university-registration-contracts/internal/app/dispatch"
	appRoutes "github.com/KamiliaNHayati/university-registration-contracts/internal/app/routes"
	appServices "github.com/KamiliaNHayati/university-registration-contracts/internal/app/services"
	"github.com/KamiliaNHayati/university-registration-contracts/internal/chain"
	"github.com/KamiliaNHayati/university-registration-contracts/internal/config"
	"github.com/KamiliaNHayati/university-registration-contracts/internal/metrics"
	appMiddleware "github.com/KamiliaNHayati/university-registration-contracts/internal/middleware"
	pkgAuth "github.com/KamiliaNHayati/university-registration-contracts/internal/pkg/auth"
	"github.com/KamiliaNHayati/university-registration-contracts/internal/pkg/logger"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService          appServices.AuthService
	CatalogService       appServices.CatalogService
	EnrollmentService    appServices.EnrollmentService
	AdminService         appServices.AdminService
	AuthController       *appControllers.AuthController
	CatalogController    *appControllers.CatalogController
	EnrollmentController *appControllers.EnrollmentController
	AdminController      *appControllers.AdminController
	AuthMiddleware       *appMiddleware.AuthMiddleware
	JWTService           *pkgAuth.JWTService
	Reader               *chain.Reader
	Dispatcher           *dispatch.Dispatcher
	Metrics              metrics.Metrics
	Logger               zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupChain dials the RPC endpoint and binds the three contracts.
func SetupChain(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*chain.Client, error) {
	lgr.Info().Msg("Connecting to ledger...")
	client, err := chain.Dial(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to ledger")
		return nil, err
	}
	return client, nil
}

// BuildDependencies initializes application services and controllers.
func BuildDependencies(cfg *config.Config, client *chain.Client, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	if cfg.Metrics.Enabled {
		deps.Metrics = metrics.NewPrometheusMetrics(cfg.Metrics.Namespace)
	} else {
		deps.Metrics = metrics.NewNopMetrics()
	}

	deps.Reader = chain.NewReader(
		client.Registrar,
		client.Catalog,
		client.Certificate,
		cfg.SnapshotMaxAge(),
		deps.Metrics,
		lgr,
	)
	deps.Dispatcher = dispatch.NewDispatcher(client, deps.Reader, deps.Metrics, lgr)

	signer := chain.NewSigner(cfg.Chain.KeystoreDir, client.ChainID())

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: parseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})
	nonces := pkgAuth.NewNonceStore(parseDuration(cfg.JWT.NonceTTL, 5*time.Minute))

	deps.AuthService = appServices.NewAuthService(nonces, deps.JWTService, client.Registrar, cfg.JWT.Issuer, lgr)
	deps.CatalogService = appServices.NewCatalogService(client.Catalog)
	deps.EnrollmentService = appServices.NewEnrollmentService(
		deps.Reader,
		signer,
		client.Registrar,
		client.Certificate,
		deps.CatalogService,
		deps.Dispatcher,
		lgr,
	)
	deps.AdminService = appServices.NewAdminService(client.Registrar, signer, deps.Dispatcher, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.CatalogController = appControllers.NewCatalogController(deps.CatalogService, lgr)
	deps.EnrollmentController = appControllers.NewEnrollmentController(deps.EnrollmentService, lgr)
	deps.AdminController = appControllers.NewAdminController(deps.AdminService, lgr)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(appMiddleware.RequestLogger(lgr), gin.Recovery())

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.CatalogController,
		deps.EnrollmentController,
		deps.AdminController,
		deps.AuthMiddleware,
	)

	if cfg.Metrics.Enabled {
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}
