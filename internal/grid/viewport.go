package grid

import (
	"math"

	"github.com/sirupsen/logrus"

	"settlement-server/internal/worldgen"
	"settlement-server/pkg/logger"
)

// Политика удержания тайлов.
const (
	// RetentionBuffer - запас тайлов за пределами максимально видимой области
	RetentionBuffer = 15

	// Границы радиуса удержания
	MinRetentionRadius = 20
	MaxRetentionRadius = 80

	// MinZoom - минимально допустимый зум: при нем видно больше всего тайлов
	MinZoom = 0.25
	MaxZoom = 4.0

	DefaultTileSize = 32
)

// Tile - резидентный тайл сетки.
type Tile struct {
	X       int                     `json:"x"`
	Y       int                     `json:"y"`
	Terrain *worldgen.TerrainRecord `json:"terrain"`

	// Modified - тайл тронут игроком (постройка, покраска).
	// Это авторитетное состояние пользователя, а не регенерируемый кэш,
	// поэтому вытеснению он не подлежит ни на каком расстоянии.
	Modified bool `json:"modified,omitempty"`
}

// Viewport владеет резидентным набором тайлов и политикой вытеснения.
// Мир бесконечен: без вытеснения и резидентный набор, и кэш генератора
// растут без предела по мере разведки. Вытеснение по расстоянию, а не
// по давности: для скользящей камеры будущую нужность тайла предсказывает
// пространственная близость, а не порядок обращений.
type Viewport struct {
	gen *worldgen.WorldGenerator

	CanvasWidth  int
	CanvasHeight int
	TileSize     int
	Zoom         float64

	// Центр вьюпорта в координатах тайлов
	CenterX float64
	CenterY float64

	tiles map[worldgen.Coord]*Tile
}

// NewViewport создает вьюпорт над генератором.
func NewViewport(gen *worldgen.WorldGenerator, canvasW, canvasH int) *Viewport {
	return &Viewport{
		gen:          gen,
		CanvasWidth:  canvasW,
		CanvasHeight: canvasH,
		TileSize:     DefaultTileSize,
		Zoom:         1.0,
		tiles:        make(map[worldgen.Coord]*Tile),
	}
}

// Resize обновляет размеры канвы (окно браузера изменилось).
func (v *Viewport) Resize(w, h int) {
	if w > 0 {
		v.CanvasWidth = w
	}
	if h > 0 {
		v.CanvasHeight = h
	}
}

// PanTo сдвигает центр вьюпорта. Вытеснение здесь НЕ запускается:
// во время непрерывного перетаскивания тайлы могут вот-вот вернуться
// в кадр, чистить их на каждом событии и дорого, и вредно.
func (v *Viewport) PanTo(cx, cy float64) {
	v.CenterX = cx
	v.CenterY = cy
}

// SetZoom меняет зум, зажимая его в допустимые пределы.
func (v *Viewport) SetZoom(z float64) {
	if z < MinZoom {
		z = MinZoom
	}
	if z > MaxZoom {
		z = MaxZoom
	}
	v.Zoom = z
}

// VisibleRange возвращает включительный диапазон тайлов, попадающих
// в канву при текущем зуме.
func (v *Viewport) VisibleRange() (x0, y0, x1, y1 int) {
	halfW := float64(v.CanvasWidth) / (float64(v.TileSize) * v.Zoom) / 2
	halfH := float64(v.CanvasHeight) / (float64(v.TileSize) * v.Zoom) / 2

	x0 = int(math.Floor(v.CenterX - halfW))
	y0 = int(math.Floor(v.CenterY - halfH))
	x1 = int(math.Ceil(v.CenterX + halfW))
	y1 = int(math.Ceil(v.CenterY + halfH))
	return
}

// VisibleTiles делает резидентными все видимые тайлы (генерируя
// недостающие через кэш генератора) и возвращает их построчно.
func (v *Viewport) VisibleTiles() []*Tile {
	x0, y0, x1, y1 := v.VisibleRange()

	out := make([]*Tile, 0, (x1-x0+1)*(y1-y0+1))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			out = append(out, v.tile(x, y))
		}
	}
	return out
}

// tile возвращает резидентный тайл, создавая его при необходимости.
func (v *Viewport) tile(x, y int) *Tile {
	key := worldgen.Coord{X: x, Y: y}
	if t, ok := v.tiles[key]; ok {
		return t
	}
	t := &Tile{X: x, Y: y, Terrain: v.gen.GenerateTerrain(x, y)}
	v.tiles[key] = t
	return t
}

// MarkModified помечает координату как измененную игроком.
// Тайл делается резидентным, если еще не был.
func (v *Viewport) MarkModified(x, y int) {
	v.tile(x, y).Modified = true
}

// IsModified сообщает, трогал ли игрок координату.
func (v *Viewport) IsModified(x, y int) bool {
	t, ok := v.tiles[worldgen.Coord{X: x, Y: y}]
	return ok && t.Modified
}

// ResidentCount возвращает размер резидентного набора.
func (v *Viewport) ResidentCount() int {
	return len(v.tiles)
}

// RetentionRadius - радиус удержания: половина наибольшей стороны канвы
// в тайлах при минимальном зуме (худший случай видимости) плюс запас,
// зажатая в [MinRetentionRadius, MaxRetentionRadius]. Пересчитывается
// на каждом проходе вытеснения - размер канвы мог измениться.
func (v *Viewport) RetentionRadius() float64 {
	tilesAcross := float64(v.CanvasWidth) / (float64(v.TileSize) * MinZoom)
	tilesDown := float64(v.CanvasHeight) / (float64(v.TileSize) * MinZoom)

	r := math.Max(tilesAcross, tilesDown)/2 + RetentionBuffer
	if r < MinRetentionRadius {
		r = MinRetentionRadius
	}
	if r > MaxRetentionRadius {
		r = MaxRetentionRadius
	}
	return r
}

// EvictionReport - итоги одного прохода вытеснения.
type EvictionReport struct {
	EvictedTiles    int     `json:"evictedTiles"`
	EvictedRecords  int     `json:"evictedRecords"`
	RetentionRadius float64 `json:"retentionRadius"`
}

// EvictDistant - проход вытеснения. Запускается после завершения
// панорамирования или смены зума, никогда не покадрово.
// Вытесняет из резидентного набора все неизмененные тайлы дальше
// радиуса удержания от центра и чистит кэш генератора тем же радиусом.
func (v *Viewport) EvictDistant() EvictionReport {
	radius := v.RetentionRadius()

	evicted := 0
	for key, t := range v.tiles {
		if t.Modified {
			continue
		}
		dx := float64(key.X) - v.CenterX
		dy := float64(key.Y) - v.CenterY
		if math.Sqrt(dx*dx+dy*dy) > radius {
			delete(v.tiles, key)
			evicted++
		}
	}

	records := v.gen.CleanDistantCacheEntries(v.CenterX, v.CenterY, radius)

	if evicted > 0 || records > 0 {
		logger.Log.WithFields(logrus.Fields{
			"tiles":   evicted,
			"records": records,
			"radius":  radius,
		}).Debug("Eviction pass completed")
	}

	return EvictionReport{
		EvictedTiles:    evicted,
		EvictedRecords:  records,
		RetentionRadius: radius,
	}
}
