package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"shanzai-server/internal/engine"
	"shanzai-server/internal/server"
	"shanzai-server/internal/version"
	"shanzai-server/pkg/logger"
)

func init() {
	logger.Init()
}

func main() {
	// 1. Парсинг конфигурации
	var seed int64
	// Читаем флаг -seed. По умолчанию 0 (значит сгенерировать случайно).
	flag.Int64Var(&seed, "seed", 0, "World seed (0 for random)")
	flag.Parse()

	logger.Log.Info("Starting Tiny Shanzai Rogue...")
	logger.Log.Info(version.String())

	// Формируем конфиг: окружение, затем флаг поверх
	cfg, err := engine.LoadConfig()
	if err != nil {
		logger.Log.Fatal("Config error:", err)
	}
	if seed != 0 {
		cfg.Seed = seed
		logger.Log.Infof("🎲 Using explicit seed: %d", seed)
	} else {
		logger.Log.Infof("🎲 Using random seed: %d", cfg.Seed)
	}

	// 2. Инициализация ядра с конфигом
	gameService := engine.NewService(cfg)

	// Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// 3. Запуск сервера
	srv := server.New(gameService, cfg.Port)

	go func() {
		if err := srv.Run(); err != nil {
			logger.Log.Fatal("Server start error:", err)
		}
	}()

	<-stop
	logger.Log.Info("Shutting down...")
	logger.Log.Info("Done.")
}
