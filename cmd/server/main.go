package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"settlement-server/internal/engine"
	"settlement-server/internal/server"
	"settlement-server/internal/version"
	"settlement-server/pkg/logger"
)

func init() {
	logger.Init()
}

func main() {
	// 1. Парсинг конфигурации
	var seed int64
	var preset string
	// Читаем флаг -seed. По умолчанию 0 (значит сгенерировать случайно).
	flag.Int64Var(&seed, "seed", 0, "World seed (0 for random)")
	flag.StringVar(&preset, "preset", "", "World preset (archipelago, continental, mountainous, pangaea, oceanic)")
	flag.Parse()

	logger.Log.Info("Starting Settlement Terrain Server...")
	logger.Log.Info(version.String())

	// Формируем конфиг
	cfg := engine.NewConfig()
	if seed != 0 {
		cfg.Seed = seed
		logger.Log.Infof("🎲 Using explicit world seed: %d", seed)
	} else {
		logger.Log.Infof("🎲 Using random world seed: %d", cfg.Seed)
	}
	cfg.Preset = preset

	port := os.Getenv("SB_PORT")
	if port == "" {
		port = "8080"
	}

	// 2. Инициализация ядра с конфигом
	worldService := engine.NewService(cfg)

	// Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// 3. Запуск сервера
	srv := server.New(worldService, port)

	go func() {
		if err := srv.Run(); err != nil {
			logger.Log.Fatal("Server start error:", err)
		}
	}()

	<-stop
	logger.Log.Info("Shutting down...")

	// Сид и параметры - все, что нужно для воспроизведения мира.
	// Выводим их напоследок, чтобы мир можно было поднять заново.
	st := worldService.Stats()
	logger.Log.WithField("seed", st.Seed).Info("World state summary")

	logger.Log.Info("Done.")
}
