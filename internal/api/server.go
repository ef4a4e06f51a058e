package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/fintracker/finance-tracker/internal/api/handlers"
	"github.com/fintracker/finance-tracker/internal/api/middleware"
	"github.com/fintracker/finance-tracker/internal/config"
	"github.com/fintracker/finance-tracker/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Server struct {
	router   *gin.Engine
	config   *config.Config
	services *service.Services
	log      *logrus.Logger
	limiter  *middleware.RateLimiter
}

func NewServer(cfg *config.Config, services *service.Services, log *logrus.Logger) *Server {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	server := &Server{
		router:   router,
		config:   cfg,
		services: services,
		log:      log,
	}
	if cfg.RateLimitRequests > 0 {
		server.limiter = middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)
	}

	server.setupRoutes()

	return server
}

// Handler нужен тестам и http.Server
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run обслуживает запросы, пока не отменен ctx, затем ждет активные запросы не дольше ShutdownTimeout
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.CORS(s.config.FrontendURL))
	s.router.Use(middleware.SecurityHeaders())
	s.router.Use(middleware.RequestLogger(s.log))

	// лимитер стоит раньше чтения тела, отклоненные по размеру запросы тоже считаются
	api := s.router.Group("/api")
	if s.limiter != nil {
		api.Use(middleware.RateLimit(s.limiter))
	}
	if s.config.MaxBodyBytes > 0 {
		api.Use(middleware.BodyLimit(s.config.MaxBodyBytes))
	}

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	goalHandler := handlers.NewGoalHandler(s.services.Goal)
	reportHandler := handlers.NewReportHandler(s.services.Report)
	transactionHandler := handlers.NewTransactionHandler(s.services.Transaction)
	investmentHandler := handlers.NewInvestmentHandler(s.services.Investment)

	protected := api.Group("")
	protected.Use(middleware.Auth(s.services.Auth))
	{
		goals := protected.Group("/goals")
		{
			goals.GET("", goalHandler.List)
			goals.POST("", goalHandler.Create)
			goals.GET("/categories", goalHandler.Categories)
			goals.POST("/seed", goalHandler.Seed)
			goals.GET("/:id", goalHandler.GetByID)
			goals.PUT("/:id", goalHandler.Update)
			goals.DELETE("/:id", goalHandler.Delete)
			goals.PUT("/:id/add-funds", goalHandler.AddFunds)
		}

		transactions := protected.Group("/transactions")
		{
			transactions.GET("", transactionHandler.List)
			transactions.POST("", transactionHandler.Create)
			transactions.DELETE("/:id", transactionHandler.Delete)
		}

		investments := protected.Group("/investments")
		{
			investments.GET("", investmentHandler.List)
			investments.POST("", investmentHandler.Create)
			investments.PUT("/:id", investmentHandler.Update)
			investments.DELETE("/:id", investmentHandler.Delete)
		}

		reports := protected.Group("/reports")
		{
			reports.GET("/summary", reportHandler.GetSummary)
			reports.GET("/investments", reportHandler.GetInvestments)
			reports.GET("/overview", reportHandler.GetOverview)
		}
	}

	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})
}
