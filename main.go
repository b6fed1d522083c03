package main

import (
	"context"
	"log"
	"time"

	"github.com/kuritkaj/eventlook/config"
	"github.com/kuritkaj/eventlook/internal/cache"
	"github.com/kuritkaj/eventlook/internal/handler"
	"github.com/kuritkaj/eventlook/internal/middleware"
	"github.com/kuritkaj/eventlook/internal/repository"
	"github.com/kuritkaj/eventlook/internal/service"
	"github.com/kuritkaj/eventlook/pkg/database"
	"github.com/kuritkaj/eventlook/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	// Repositories
	eventRepo := repository.NewEventRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	if cfg.SeedOnStart {
		if err := database.SeedInitialEvents(context.Background(), eventRepo); err != nil {
			log.Fatalf("failed to seed events: %v", err)
		}
	}

	// RabbitMQ publisher: order/event notifications (optional)
	var publisher *rabbitmq.Publisher
	if cfg.RabbitURL != "" {
		var err error
		publisher, err = rabbitmq.NewPublisher(cfg.RabbitURL)
		if err != nil {
			log.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	}

	// Redis: event listing cache (optional)
	var listingCache *cache.RedisCache
	if cfg.RedisAddr != "" {
		var err error
		listingCache, err = cache.NewRedisCache(cfg.RedisAddr, time.Duration(cfg.CacheTTLSeconds)*time.Second)
		if err != nil {
			log.Fatalf("failed to connect to Redis: %v", err)
		}
		defer listingCache.Close()
	}

	// Services
	eventSvc := service.NewEventService(eventRepo, orderRepo, publisher, listingCache)
	purchaseSvc := service.NewPurchaseService(
		eventRepo, orderRepo,
		service.NewNumberGenerator(),
		cfg.MaxTicketsPerOrder,
		publisher, listingCache,
	)

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "eventlook"})
	})

	handler.NewEventHandler(eventSvc, purchaseSvc).RegisterRoutes(e)

	log.Printf("eventlook starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
