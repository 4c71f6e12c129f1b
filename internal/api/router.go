package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/carelink/hospital-system/internal/api/handler"
	"github.com/carelink/hospital-system/internal/api/middleware"
	"github.com/carelink/hospital-system/internal/auth"
	"github.com/carelink/hospital-system/internal/core/ports"
	"github.com/carelink/hospital-system/internal/core/service"
	mongodb "github.com/carelink/hospital-system/internal/infrastructure/db/mongo"
	redisdb "github.com/carelink/hospital-system/internal/infrastructure/db/redis"
)

// Deps carries everything the router needs, constructed once in main. DB and
// Redis may be nil: the process still serves health and metrics, and routes
// that need the missing dependency answer 503.
type Deps struct {
	DB     *mongo.Database
	Redis  *redis.Client
	Issuer *auth.Issuer
	Audit  ports.AuditRecorder
	Log    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("hospital"))

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.DB, deps.Redis)

	e.GET("/health", healthHandler.Liveness)          // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	if deps.DB == nil {
		// Degraded start: persistence-backed routes fail fast per request.
		registerUnavailable(e)
		return e
	}

	// --- Dependencies ---
	var limiter handler.LoginLimiter
	if deps.Redis != nil {
		limiter = redisdb.NewLoginLimiter(deps.Redis, deps.Log)
	}

	authRepo := mongodb.NewAuthRepository(deps.DB)
	authService := service.NewAuthService(authRepo, deps.Issuer, deps.Audit, deps.Log)
	authHandler := handler.NewAuthHandler(authService, limiter)

	patientRepo := mongodb.NewPatientRepository(deps.DB)
	patientService := service.NewPatientService(patientRepo, deps.Audit, deps.Log)
	patientHandler := handler.NewPatientHandler(patientService)

	// --- Auth routes ---
	e.POST("/signup", authHandler.Signup)
	e.POST("/login", authHandler.Login)

	// --- Patient routes (bearer token required) ---
	patients := e.Group("/patients", middleware.Auth(deps.Issuer))
	patients.GET("", patientHandler.List)
	patients.POST("", patientHandler.Create)
	patients.PUT("/:id", patientHandler.Update)
	patients.DELETE("/:id", patientHandler.Delete)
	patients.GET("/:id/prescriptions", patientHandler.ListPrescriptions)
	patients.POST("/:id/prescriptions", patientHandler.AddPrescription)
	patients.PUT("/:id/prescriptions/:prescriptionID", patientHandler.UpdatePrescription)
	patients.DELETE("/:id/prescriptions/:prescriptionID", patientHandler.DeletePrescription)

	return e
}

func registerUnavailable(e *echo.Echo) {
	unavailable := func(c echo.Context) error {
		return c.JSON(http.StatusServiceUnavailable, errorResponse{Error: "database unavailable"})
	}
	for _, route := range []struct{ method, path string }{
		{http.MethodPost, "/signup"},
		{http.MethodPost, "/login"},
		{http.MethodGet, "/patients"},
		{http.MethodPost, "/patients"},
		{http.MethodPut, "/patients/:id"},
		{http.MethodDelete, "/patients/:id"},
		{http.MethodGet, "/patients/:id/prescriptions"},
		{http.MethodPost, "/patients/:id/prescriptions"},
		{http.MethodPut, "/patients/:id/prescriptions/:prescriptionID"},
		{http.MethodDelete, "/patients/:id/prescriptions/:prescriptionID"},
	} {
		e.Add(route.method, route.path, unavailable)
	}
}
