package app

import (
	"context"
	"log"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"werkzeug_dashboard/config"
	"werkzeug_dashboard/logging"
	"werkzeug_dashboard/metrics"
	"werkzeug_dashboard/records"
	"werkzeug_dashboard/service"
	"werkzeug_dashboard/session"
	"werkzeug_dashboard/templates"
)

// 简化别名，便于 handlers 调用
type Ctx = gin.Context
type H = gin.H

// App 聚合各依赖
type App struct {
	Router  *gin.Engine
	RDB     *redis.Client
	Records *records.Client
	Loans   *service.LoanService
	Metrics *metrics.Collector
	Logger  *slog.Logger
	Config  config.Config
	// 可替换的时钟，测试里固定时间
	Now func() time.Time

	appSess  *session.AppSessionStore
	closeLog func()
}

func (a *App) AppSessions() *session.AppSessionStore { return a.appSess }

// Clock 当前时间，换算到配置的时区
func (a *App) Clock() time.Time {
	now := time.Now
	if a.Now != nil {
		now = a.Now
	}
	if a.Config.Location != nil {
		return now().In(a.Config.Location)
	}
	return now()
}

func MustNew() *App {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, closeLog, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	slog.SetDefault(logger)

	// --- Redis ---
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPwd, DB: 0})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("redis: %v", err)
	}

	a, err := New(cfg, rdb, logger)
	if err != nil {
		log.Fatalf("app: %v", err)
	}
	a.closeLog = closeLog
	return a
}

// New 组装依赖，不做连通性检查
func New(cfg config.Config, rdb *redis.Client, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	m := metrics.New(prometheus.NewRegistry())
	rc := records.New(cfg.Collections, records.Options{
		BaseURL:    cfg.APIBaseURL,
		CookieName: cfg.BackendCookie,
		Timeout:    cfg.BackendTimeout,
		Observer:   m,
		Logger:     logger,
	})

	tmpl, err := templates.Parse()
	if err != nil {
		return nil, err
	}

	// --- Gin ---
	r := gin.New()
	r.Use(gin.Recovery(), logging.Middleware(logger))
	useCORS(r, cfg.WebOrigin)
	r.SetHTMLTemplate(tmpl)

	return &App{
		Router:  r,
		RDB:     rdb,
		Records: rc,
		Loans:   service.NewLoanService(rc, m),
		Metrics: m,
		Logger:  logger,
		Config:  cfg,
		appSess: session.NewAppSessionStore(rdb, cfg.SessionTTL),
	}, nil
}

func (a *App) Close() {
	if a.RDB != nil {
		_ = a.RDB.Close()
	}
	if a.closeLog != nil {
		a.closeLog()
	}
}
