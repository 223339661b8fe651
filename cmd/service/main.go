package main

import (
	"context"
	"errors"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shoeshop/config"
	"shoeshop/internal/cache"
	"shoeshop/internal/database"
	"shoeshop/internal/hashing"
	"shoeshop/internal/logger"
	"shoeshop/internal/producer"
	"shoeshop/internal/repository"
	"shoeshop/internal/service"
	"shoeshop/internal/token"
	transport "shoeshop/internal/transport/http"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	isDev := os.Getenv("ENV") == "development"
	if err := logger.Init(isDev); err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.L()

	cfg := config.Load(log)

	db := database.ConnectDB(&cfg.DB.Config, log)
	defer database.CloseDB(db, log)

	repos := repository.New(db)

	// Кэш значений для выпадающих списков — опционален.
	var valuesCache service.ValuesCache
	if cfg.Redis.Enabled {
		rc, err := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			time.Duration(cfg.Redis.TTLSeconds)*time.Second, log)
		if err != nil {
			log.Warn("Redis недоступен, работаем без кэша", zap.Error(err))
		} else {
			valuesCache = rc
			defer rc.Close()
		}
	}

	// Шина событий заказов — опциональна, без брокеров события не публикуются.
	var events service.EventBus
	if len(cfg.Kafka.Brokers) > 0 {
		p := producer.NewOrderProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		events = p
		defer p.Close()
	}

	hasher := hashing.NewBcrypt(0)
	tokens := token.NewHSProvider(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience)

	authSvc := service.NewAuthService(repos.Clients, hasher, log)
	catalogSvc := service.NewCatalogService(repos.Items, repos.OrderLines, valuesCache, log)
	orderSvc := service.NewOrderService(repos.Orders, repos.OrderLines, repos.PickupPoints, events, log)

	router := transport.NewRouter(transport.Handlers{
		Auth:    transport.NewAuthHandler(authSvc, tokens, cfg.JWT.AccessExp, log),
		Catalog: transport.NewCatalogHandler(catalogSvc, log),
		Orders:  transport.NewOrderHandler(orderSvc, log),
	}, tokens, log)

	srv := &nethttp.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info("HTTP-сервер запущен", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			log.Fatal("Ошибка HTTP-сервера", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Останавливаем сервис")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Ошибка остановки HTTP-сервера", zap.Error(err))
	}
	log.Info("Сервис остановлен")
}
