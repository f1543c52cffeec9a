package internal

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/go-orz/orz"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/trackedge/trackedge/internal/config"
	"github.com/trackedge/trackedge/internal/handler"
	mw "github.com/trackedge/trackedge/internal/middleware"
	"github.com/trackedge/trackedge/internal/models"
	"github.com/trackedge/trackedge/internal/service"
	"github.com/trackedge/trackedge/internal/telegram"
	"github.com/trackedge/trackedge/internal/trace"
	"github.com/trackedge/trackedge/pkg/nostd"
	"go.uber.org/zap"
)

// Version 构建时通过 -ldflags 注入
var Version = "dev"

func Run(configPath string) error {
	app := NewJournalApp()

	framework, err := orz.NewFramework(
		orz.WithConfig(configPath),
		orz.WithLoggerFromConfig(),
		orz.WithDatabase(),
		orz.WithHTTP(),
		orz.WithApplication(app),
	)
	if err != nil {
		return err
	}

	defer app.Stop()
	return framework.Run()
}

func NewJournalApp() *JournalApp {
	return &JournalApp{}
}

var _ orz.Application = (*JournalApp)(nil)

type AppComponents struct {
	AuthHandler    *handler.AuthHandler
	SetupHandler   *handler.SetupHandler
	JournalHandler *handler.JournalHandler
	ReviewHandler  *handler.ReviewHandler
	PlanHandler    *handler.PlanHandler

	AuthService   *service.AuthService
	ReviewService *service.ReviewService

	tg *telegram.Telegram
}

type JournalApp struct {
	logger     *zap.Logger
	components *AppComponents
	conf       *config.Config
}

// GetComponents 获取应用组件
func (r *JournalApp) GetComponents() *AppComponents {
	return r.components
}

func (r *JournalApp) Configure(app *orz.App) error {
	logger := app.Logger()
	e := app.GetEcho()
	db := app.GetDatabase()

	var conf config.Config
	err := app.GetConfig().App.Unmarshal(&conf)
	if err != nil {
		return fmt.Errorf("failed to unmarshal config: %v", err)
	}
	conf.ApplyEnv()
	conf.Normalize()

	if err := trace.Init(conf.Tracing.Enabled, os.Stdout, Version); err != nil {
		return fmt.Errorf("failed to init tracing: %v", err)
	}

	if err := db.AutoMigrate(
		models.User{}, models.Setup{}, models.JournalEntry{}, models.SetupReview{}, models.TradingPlan{},
	); err != nil {
		logger.Fatal("database auto migrate failed", zap.Error(err))
	}

	components, err := InitializeApp(logger, db, &conf)
	if err != nil {
		return fmt.Errorf("failed to initialize app: %v", err)
	}
	r.logger = logger
	r.components = components
	r.conf = &conf

	e.HidePort = true
	e.HideBanner = true

	e.Use(middleware.Gzip())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		Skipper:      middleware.DefaultSkipper,
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
	}))
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			sugar := logger.Sugar()
			sugar.Error(fmt.Sprintf("[PANIC RECOVER] %v %s\n", err, stack))
			return err
		},
	}))
	e.Use(WithErrorHandler(logger))
	customValidator := nostd.CustomValidator{Validator: validator.New()}
	if err := customValidator.TransInit(); err != nil {
		logger.Sugar().Fatal("failed to init custom validator", zap.Error(err))
	}
	e.Validator = &customValidator

	RegisterRoutes(e, components, &conf, logger)

	if err := r.Init(logger); err != nil {
		logger.Fatal("app init failed", zap.Error(err))
	}
	return nil
}

// RegisterRoutes 挂载 /api 下的全部路由
func RegisterRoutes(e *echo.Echo, components *AppComponents, conf *config.Config, logger *zap.Logger) {
	api := e.Group("/api")
	if conf.RateLimit.Enabled {
		api.Use(mw.RateLimit(mw.RateLimitConfig{
			Requests:    conf.RateLimit.Requests,
			Window:      conf.RateLimitWindow(),
			AuthService: components.AuthService,
			Logger:      logger,
		}))
	}

	components.AuthHandler.RegisterRoutes(api)

	protected := api.Group("", mw.JWTAuth(mw.JWTAuthConfig{
		AuthService: components.AuthService,
		Logger:      logger,
	}))
	{
		components.AuthHandler.RegisterProtectedRoutes(protected)
		components.SetupHandler.RegisterRoutes(protected)
		components.JournalHandler.RegisterRoutes(protected)
		components.ReviewHandler.RegisterRoutes(protected)
		components.PlanHandler.RegisterRoutes(protected)
	}
}

func (r *JournalApp) Init(logger *zap.Logger) error {
	logger.Info("trackedge starting",
		zap.String("version", Version),
		zap.String("timezone", r.conf.Journal.Timezone),
		zap.Bool("rate_limit", r.conf.RateLimit.Enabled),
		zap.Bool("tracing", r.conf.Tracing.Enabled))

	components := r.GetComponents()
	if components == nil {
		return fmt.Errorf("components not initialized")
	}

	if components.tg != nil {
		components.tg.Start()
	}
	return components.ReviewService.Start()
}

// Stop 停止后台任务并刷新 trace
func (r *JournalApp) Stop() {
	if r.components != nil {
		r.components.ReviewService.Stop()
		if r.components.tg != nil {
			r.components.tg.Stop()
		}
	}
	if err := trace.Shutdown(context.Background()); err != nil && r.logger != nil {
		r.logger.Warn("failed to flush traces", zap.Error(err))
	}
}
