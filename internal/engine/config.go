package engine

import "time"

// Config хранит параметры запуска движка
type Config struct {
	// Seed - мастер-зерно мира. От него со сдвигами сидятся все
	// семь полей шума генератора.
	Seed int64

	// Preset - имя пресета параметров ("" - значения по умолчанию)
	Preset string

	// Размеры канвы по умолчанию - до первого VIEWPORT от клиента
	CanvasWidth  int
	CanvasHeight int
}

// NewConfig создает конфиг по умолчанию (случайный сид)
func NewConfig() Config {
	return Config{
		Seed:         time.Now().UnixNano(),
		CanvasWidth:  1280,
		CanvasHeight: 720,
	}
}
