package v1

import (
	"net/http"
	"time"

	"simhire-backend/config"
	"simhire-backend/internal/delivery/http/middleware"
	"simhire-backend/internal/delivery/http/response"
	"simhire-backend/internal/domain"
	"simhire-backend/internal/usecase"
	"simhire-backend/pkg/auth"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC                  domain.AuthUsecase
	JobUC                   domain.JobUsecase
	InternshipUC            domain.InternshipUsecase
	ApplicationUC           domain.ApplicationUsecase
	InternshipApplicationUC domain.InternshipApplicationUsecase
	SimulasiUC              domain.SimulasiUsecase
	HealthUC                usecase.HealthUsecase
	Issuer                  *auth.Issuer
	Denylist                domain.TokenDenylist
	Config                  *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	window := time.Duration(deps.Config.RateLimitWindowSeconds) * time.Second

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.GlobalRateLimitMiddleware(deps.Config.RateLimitGlobalThreshold, window))

	api := r.Group("/api")

	// Health Check
	api.GET("/health", func(c *gin.Context) {
		status, healthy := deps.HealthUC.Check(c.Request.Context())
		if !healthy {
			c.JSON(http.StatusServiceUnavailable, response.Response{Success: false, Message: "System unavailable", Data: status})
			return
		}
		response.Success(c, http.StatusOK, "System operational", status)
	})

	// Swagger
	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Issuer, deps.Denylist))
	{
		NewAuthHandler(api, protected, deps.AuthUC, middleware.StrictRateLimitMiddleware(deps.Config.RateLimitAuthThreshold, window))
		NewJobHandler(api, protected, deps.JobUC)
		NewInternshipHandler(api, protected, deps.InternshipUC)
		NewApplicationHandler(protected, deps.ApplicationUC, deps.AuthUC)
		NewInternshipApplicationHandler(protected, deps.InternshipApplicationUC, deps.AuthUC)
		NewSimulasiHandler(api, protected, deps.SimulasiUC, deps.AuthUC)
	}

	return r
}
