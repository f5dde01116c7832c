package connection

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"personalhub/controller/academic"
	"personalhub/controller/assistant"
	"personalhub/controller/auth"
	"personalhub/controller/blog"
	"personalhub/controller/business"
	"personalhub/controller/common"
	"personalhub/controller/journal"
	"personalhub/controller/notification"
	"personalhub/controller/pages"
	"personalhub/controller/portfolio"
	"personalhub/controller/productivity"
	"personalhub/controller/storage"
	"personalhub/controller/user"
	"personalhub/dto"
	"personalhub/middleware"
	"personalhub/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// NewRouter registers every route against deps.
func NewRouter(deps *common.Deps, cfg ServerConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger())

	corsConfig := cors.DefaultConfig()
	if len(cfg.CORSOrigins) == 0 || (len(cfg.CORSOrigins) == 1 && cfg.CORSOrigins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.CORSOrigins
		corsConfig.AllowCredentials = true
	}
	corsConfig.AddAllowHeaders("Authorization")
	router.Use(cors.New(corsConfig))

	if err := dto.RegisterValidators(); err != nil {
		logrus.WithError(err).Fatal("register validators")
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Api is running!"})
	})
	if local, ok := deps.Store.(*services.LocalStore); ok {
		router.Static("/media", local.Root())
	}

	auth.SignInController(router, deps)
	auth.SignUpController(router, deps)
	auth.TokenController(router, deps)
	user.UserController(router, deps)

	productivity.ProductivityController(router, deps)
	academic.AcademicController(router, deps)
	notification.NotificationController(router, deps)
	portfolio.PortfolioController(router, deps)
	journal.JournalController(router, deps)
	blog.BlogController(router, deps)
	business.BusinessController(router, deps)
	assistant.AssistantController(router, deps)
	storage.StorageController(router, deps)
	pages.PagesController(router, deps)

	return router
}

func StartServer(cfg *Config) error {
	if err := cfg.JWT.Validate(); err != nil {
		return err
	}
	gin.SetMode(cfg.Server.Mode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := NewApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close()
	deps := app.Deps

	if app.Redis != nil {
		go func() {
			if err := deps.Hub.Listen(ctx); err != nil {
				logrus.WithError(err).Error("notification hub stopped")
			}
		}()
	}
	if cfg.Scheduler.Enabled {
		scheduler := services.NewScheduler(deps.Notifications)
		if err := scheduler.Start(cfg.Scheduler.Cron); err != nil {
			return fmt.Errorf("start scheduler: %w", err)
		}
		defer scheduler.Stop()
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           NewRouter(deps, cfg.Server),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logrus.WithField("addr", srv.Addr).Info("server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logrus.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
