// @title Recommender API
// @version 1.0
// @description API системы cross-sell/upsell рекомендаций. Детерминированный пайплайн анализа истории покупок, co-occurrence анализ и скоринг возможностей с генерацией отчетов.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@example.com

// @license.name Internal Use Only
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:9999
// @BasePath /api
// @schemes http https

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"recommender/internal/api/routes"
	"recommender/internal/config"
	"recommender/internal/container"
	"recommender/internal/infrastructure/persistence"
	"recommender/server/middleware"
)

func main() {
	log.Println("═══════════════════════════════════════════════════════")
	log.Println("🚀 Запуск Recommender Server...")

	// Загружаем конфигурацию из env
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Подключаемся к хранилищу покупок (sqlite или postgres)
	repo, err := persistence.NewRepository(ctx, cfg)
	if err != nil {
		log.Fatalf("Ошибка подключения к базе данных: %v", err)
	}
	defer repo.Close()

	// Собираем контейнер зависимостей
	c, err := container.NewContainer(cfg, repo)
	if err != nil {
		log.Fatalf("Ошибка инициализации контейнера: %v", err)
	}
	defer c.Close()

	// Настраиваем gin engine с middleware
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(middleware.GinRequestIDMiddleware())
	engine.Use(middleware.GinCORSMiddleware())
	engine.Use(middleware.GinLoggerMiddleware())
	engine.Use(middleware.GinRecoveryMiddleware())

	router, err := routes.NewRouter(engine, c)
	if err != nil {
		log.Fatalf("Ошибка создания роутера: %v", err)
	}
	router.RegisterAllRoutes()

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      engine,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	// Запускаем сервер в отдельной горутине
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Fatalf("✗ КРИТИЧЕСКАЯ ОШИБКА: Паника при запуске сервера: %v", r)
			}
		}()
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("✗ КРИТИЧЕСКАЯ ОШИБКА: Ошибка запуска сервера: %v", err)
		}
	}()

	// Обработка сигналов для graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("═══════════════════════════════════════════════════════")
		log.Println("⏹  Получен сигнал завершения, останавливаю сервер...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("✗ Ошибка при остановке сервера: %v", err)
		} else {
			log.Println("✓ Сервер успешно остановлен")
		}

		cancel()
	}()

	log.Println("═══════════════════════════════════════════════════════")
	log.Printf("✓ Сервер успешно запущен на порту %s", cfg.Port)
	log.Printf("✓ API доступно: http://localhost:%s", cfg.Port)
	log.Printf("✓ Драйвер БД: %s", cfg.DBDriver)
	log.Printf("✓ Swagger UI: http://localhost:%s/swagger/index.html", cfg.Port)
	log.Println("  Для остановки нажмите Ctrl+C")
	log.Println("═══════════════════════════════════════════════════════")

	<-ctx.Done()
}
