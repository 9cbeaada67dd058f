package api

import "encoding/json"

// --- КЛИЕНТ -> СЕРВЕР ---

// Действия клиента.
const (
	// ActionInit - первый запрос после подключения: отдать видимую область
	ActionInit = "INIT"
	// ActionViewport - размер канвы/зум/центр изменились разом (загрузка, resize)
	ActionViewport = "VIEWPORT"
	// ActionPan - промежуточное событие перетаскивания; вытеснение не запускает
	ActionPan = "PAN"
	// ActionPanEnd - жест панорамирования завершен; запускает проход вытеснения
	ActionPanEnd = "PAN_END"
	// ActionZoom - смена уровня зума; тоже запускает вытеснение
	ActionZoom = "ZOOM"
	// ActionPaint - игрок изменил тайл (постройка/покраска): координата
	// становится вечно резидентной
	ActionPaint = "PAINT"
	// ActionSetParams - частичное обновление параметров генерации
	ActionSetParams = "SET_PARAMS"
	// ActionPreset - применить именованный пресет мира
	ActionPreset = "PRESET"
	// ActionStats - снимок состояния генератора
	ActionStats = "STATS"
)

// ClientCommand - команда клиента. Payload разбирается по Action.
type ClientCommand struct {
	Action  string          `json:"action"`
	Token   string          `json:"token,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ViewportPayload - полное описание вьюпорта (VIEWPORT).
type ViewportPayload struct {
	CanvasWidth  int     `json:"canvasWidth"`
	CanvasHeight int     `json:"canvasHeight"`
	Zoom         float64 `json:"zoom"`
	CenterX      float64 `json:"centerX"`
	CenterY      float64 `json:"centerY"`
}

// PanPayload - новый центр вьюпорта (PAN / PAN_END).
type PanPayload struct {
	CenterX float64 `json:"centerX"`
	CenterY float64 `json:"centerY"`
}

// ZoomPayload - новый уровень зума (ZOOM).
type ZoomPayload struct {
	Zoom float64 `json:"zoom"`
}

// PaintPayload - координата измененного игроком тайла (PAINT).
type PaintPayload struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ParamsPayload - частичное обновление параметров (SET_PARAMS).
// nil-поля не меняются; смена сида перегенерирует мир.
type ParamsPayload struct {
	Seed               *int64   `json:"seed,omitempty"`
	Scale              *float64 `json:"scale,omitempty"`
	Octaves            *int     `json:"octaves,omitempty"`
	Persistence        *float64 `json:"persistence,omitempty"`
	Lacunarity         *float64 `json:"lacunarity,omitempty"`
	ElevationAmplitude *float64 `json:"elevationAmplitude,omitempty"`
	TemperatureScale   *float64 `json:"temperatureScale,omitempty"`
	MoistureScale      *float64 `json:"moistureScale,omitempty"`
	BiomeBlending      *float64 `json:"biomeBlending,omitempty"`
	RiverThreshold     *float64 `json:"riverThreshold,omitempty"`
}

// PresetPayload - имя пресета (PRESET).
type PresetPayload struct {
	Name string `json:"name"`
}

// --- СЕРВЕР -> КЛИЕНТ ---

// Типы ответов сервера.
const (
	ResponseUpdate = "UPDATE"
	ResponseStats  = "STATS"
	ResponseError  = "ERROR"
)

// ServerResponse - корневой объект ответа. Для UPDATE содержит снимок
// видимых тайлов; поля, не относящиеся к типу ответа, опускаются.
type ServerResponse struct {
	Type string `json:"type"`

	// Seed мира - клиенту для сохранения (save-система хранит сид
	// и не-дефолтные параметры, чтобы воспроизвести ландшафт)
	Seed int64 `json:"seed,omitempty"`

	// Viewport - актуальные границы видимой области
	Viewport *ViewportMeta `json:"viewport,omitempty"`

	// Tiles - видимые тайлы построчно
	Tiles []TileView `json:"tiles,omitempty"`

	// Eviction - итоги прохода вытеснения (после PAN_END / ZOOM)
	Eviction *EvictionView `json:"eviction,omitempty"`

	// Stats - снимок генератора (для STATS)
	Stats json.RawMessage `json:"stats,omitempty"`

	Error string `json:"error,omitempty"`
}

// ViewportMeta - границы видимой области в координатах тайлов.
type ViewportMeta struct {
	X0 int `json:"x0"`
	Y0 int `json:"y0"`
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
}

// TileView - DTO одного тайла для отрисовки на канве.
type TileView struct {
	X int `json:"x"`
	Y int `json:"y"`

	Biome string `json:"biome"`
	// Color - готовый "#RRGGBB" с уже примененным дизерингом
	Color string `json:"color"`

	Elevation   float64 `json:"elevation"`
	Temperature float64 `json:"temperature"`
	Moisture    float64 `json:"moisture"`

	Modified bool `json:"modified,omitempty"`
}

// EvictionView - итоги прохода вытеснения для клиента.
type EvictionView struct {
	EvictedTiles    int     `json:"evictedTiles"`
	EvictedRecords  int     `json:"evictedRecords"`
	RetentionRadius float64 `json:"retentionRadius"`
}
