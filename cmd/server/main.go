package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Yohannes19/sbms/internal/config"
	"github.com/Yohannes19/sbms/internal/database"
	"github.com/Yohannes19/sbms/internal/handler"
	"github.com/Yohannes19/sbms/internal/middleware"
	"github.com/Yohannes19/sbms/internal/queue"
	"github.com/Yohannes19/sbms/internal/repository"
	"github.com/Yohannes19/sbms/internal/router"
	"github.com/Yohannes19/sbms/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	tenantRepo := repository.NewTenantRepo(db)
	roomRepo := repository.NewRoomRepo(db)
	contractRepo := repository.NewContractRepo(db)
	paymentRepo := repository.NewPaymentRepo(db)
	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)

	var events service.EventPublisher
	if cfg.RabbitURL != "" {
		events = queue.NewPublisher(cfg.RabbitURL)
		go queue.StartLedgerConsumer(cfg.RabbitURL)
	} else {
		log.Println("RABBITMQ_URL not set; event publishing disabled")
	}

	contractSvc := service.NewContractService(tenantRepo, roomRepo, contractRepo, events)
	paymentSvc := service.NewPaymentService(contractRepo, paymentRepo, events)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	// Redis is optional: without it the cache and rate limiter are
	// simply not registered. Both run inside the route groups rather
	// than globally: the cache answers HITs without calling the rest
	// of the chain, so it has to sit behind JWTAuth, and the limiter
	// placed there keys on the authenticated user instead of "anon".
	var authMW, apiMW []echo.MiddlewareFunc
	if rdb := config.NewRedisClient(); rdb != nil {
		limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
		authMW = append(authMW, limiter)
		apiMW = append(apiMW, limiter, middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	} else {
		log.Println("redis unavailable; cache and rate limiting disabled")
	}

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, userRepo, tokenRepo), cfg.JWTSecret, authMW...)
	router.RegisterAPI(e, router.APIHandlers{
		Tenants:   handler.NewTenantHandler(tenantRepo),
		Rooms:     handler.NewRoomHandler(roomRepo),
		Contracts: handler.NewContractHandler(contractSvc, paymentSvc),
		Payments:  handler.NewPaymentHandler(paymentSvc),
		Dashboard: handler.NewDashboardHandler(tenantRepo, roomRepo, contractRepo, paymentRepo),
	}, cfg.JWTSecret, apiMW...)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
