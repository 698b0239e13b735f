package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	httpadp "microlend-backend/internal/adapter/http"
	"microlend-backend/internal/adapter/middleware"
	"microlend-backend/internal/adapter/repository/mysql"
	"microlend-backend/internal/config"
	"microlend-backend/internal/infrastructure/cache"
	"microlend-backend/internal/infrastructure/db"
	"microlend-backend/internal/infrastructure/notify"
	"microlend-backend/internal/infrastructure/scoring"
	accountUC "microlend-backend/internal/usecase/account"
	"microlend-backend/internal/usecase/decision"
	loanUC "microlend-backend/internal/usecase/loan"
	paymentUC "microlend-backend/internal/usecase/payment"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	zl, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()
	sugar := zl.Sugar()

	gormDB, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		sugar.Fatalw("mysql connect failed", "err", err)
	}
	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		sugar.Fatalw("redis connect failed", "err", err)
	}

	loans := mysql.NewLoanRepository(gormDB)
	payments := mysql.NewPaymentRepository(gormDB)
	accounts := mysql.NewAccountRepository(gormDB)
	uow := mysql.NewGormUoW(gormDB)

	scorer := scoring.NewRateCardScorer(sugar)
	notifier := notify.NewLogNotifier(sugar)

	loanUc := loanUC.NewUsecase(loans, payments, sugar)
	decisionUc := decision.NewUsecase(loans, uow, scorer, notifier, sugar)
	paymentUc := paymentUC.NewUsecase(loans, payments, uow, notifier, sugar)
	accountUc := accountUC.NewUsecase(accounts, uow, sugar)

	h := httpadp.NewHandler()
	loanH := httpadp.NewLoanHandler(loanUc)
	decisionH := httpadp.NewDecisionHandler(decisionUc)
	paymentH := httpadp.NewPaymentHandler(paymentUc)
	accountH := httpadp.NewAccountHandler(accountUc)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	e.GET("/health", h.Health)

	idemp := middleware.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second, sugar)
	api := e.Group("", middleware.Authenticated(), idemp)

	api.POST("/loans", loanH.SubmitApplication)
	api.GET("/loans/:loan_id", loanH.GetLoan)
	api.GET("/loans/:loan_id/payments", loanH.GetStatement)
	api.GET("/users/:user_id/loans", loanH.ListLoansForUser)
	api.GET("/users/:user_id/account", accountH.GetAccount)
	api.GET("/users/:user_id/account/reconcile", accountH.Reconcile)

	api.POST("/loans/:loan_id/payments", paymentH.Repay)
	api.POST("/loans/:loan_id/decision", decisionH.Decide, middleware.RequireRole(middleware.RoleReviewer))

	addr := ":" + cfg.AppPort
	sugar.Infow("listening", "addr", addr)
	if err := e.Start(addr); err != nil {
		sugar.Fatalw("server stopped", "err", err)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	lvl := zap.NewAtomicLevel()
	if err := lvl.UnmarshalText([]byte(level)); err == nil {
		cfg.Level = lvl
	}
	return cfg.Build()
}
