package worldgen

import (
	"math"

	"settlement-server/pkg/logger"
)

// Смещения сидов. Каждое поле шума сидится от базового сида со своим
// сдвигом, иначе поля коррелируют и, например, горы всегда совпадают
// с засушливыми зонами.
const (
	seedOffsetElevation   = 1000
	seedOffsetTemperature = 2000
	seedOffsetMoisture    = 3000
	seedOffsetRiver       = 4000
	seedOffsetDetail      = 5000
	seedOffsetContinental = 6000
	seedOffsetOceanDepth  = 7000
)

// Константы конвейера синтеза.
const (
	// Континентальная маска: множители частоты относительно базового scale
	continentalFrequency = 0.25
	continentalSecondary = 2.7

	// Доля хребтового шума в рельефе у краев материков
	ridgeStrength  = 0.6
	ridgeFrequency = 1.5

	// Детальный шум для дизеринга цвета - 4x базовой частоты
	detailFrequency = 4.0

	// Границы высоты
	minElevation = -0.3
	maxElevation = 1.0
)

// DefaultCacheCapacity - предел кэша ландшафта по умолчанию.
const DefaultCacheCapacity = 10000

// Parameters - настройки синтеза ландшафта.
type Parameters struct {
	Scale              float64 `json:"scale"`
	Octaves            int     `json:"octaves"`
	Persistence        float64 `json:"persistence"`
	Lacunarity         float64 `json:"lacunarity"`
	ElevationAmplitude float64 `json:"elevationAmplitude"`
	TemperatureScale   float64 `json:"temperatureScale"`
	MoistureScale      float64 `json:"moistureScale"`
	BiomeBlending      float64 `json:"biomeBlending"`
	RiverThreshold     float64 `json:"riverThreshold"`
}

// DefaultParameters возвращает параметры по умолчанию.
func DefaultParameters() Parameters {
	return Parameters{
		Scale:              0.04,
		Octaves:            4,
		Persistence:        0.5,
		Lacunarity:         2.0,
		ElevationAmplitude: 1.0,
		TemperatureScale:   0.015,
		MoistureScale:      0.02,
		BiomeBlending:      0.1,
		RiverThreshold:     0.05,
	}
}

// ParameterUpdate - частичное обновление параметров: nil-поля не трогаются.
// Смена сида пересоздает все поля шума; любое фактическое изменение
// (сида или нет) полностью сбрасывает кэш - частичной инвалидации нет.
type ParameterUpdate struct {
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

// TerrainRecord - результат генерации одной координаты.
// Содержимое после создания не меняется; мутируют только приватные
// метки кэша (createdAt / lastAccessed).
type TerrainRecord struct {
	X int `json:"x"`
	Y int `json:"y"`

	Elevation   float64 `json:"elevation"`
	Temperature float64 `json:"temperature"`
	Moisture    float64 `json:"moisture"`
	Detail      float64 `json:"detail"`

	// River вычисляется и сохраняется, но классификацией не используется:
	// прорисовка рек отдана фоновой системе вне этого ядра.
	River float64 `json:"river"`

	Biome Biome `json:"biome"`
	Color RGB   `json:"color"`

	createdAt    int64
	lastAccessed int64
}

// Stats - снимок состояния генератора для API и отладки.
type Stats struct {
	Seed         int64      `json:"seed"`
	CacheSize    int        `json:"cacheSize"`
	MaxCacheSize int        `json:"maxCacheSize"`
	Parameters   Parameters `json:"parameters"`
}

// WorldGenerator владеет семью независимыми полями шума и кэшем
// записей ландшафта. Не потокобезопасен: владелец один (WorldService),
// все вызовы сериализуются на его стороне.
type WorldGenerator struct {
	seed   int64
	params Parameters

	elevation   *NoiseField
	temperature *NoiseField
	moisture    *NoiseField
	river       *NoiseField
	detail      *NoiseField
	continental *NoiseField
	oceanDepth  *NoiseField

	cache *terrainCache
}

// NewWorldGenerator создает генератор с параметрами по умолчанию.
func NewWorldGenerator(seed int64) *WorldGenerator {
	g := &WorldGenerator{
		params: DefaultParameters(),
		cache:  newTerrainCache(DefaultCacheCapacity),
	}
	g.reseed(seed)
	return g
}

// reseed пересоздает все поля шума от нового базового сида.
func (g *WorldGenerator) reseed(seed int64) {
	g.seed = seed
	g.elevation = NewNoiseField(seed + seedOffsetElevation)
	g.temperature = NewNoiseField(seed + seedOffsetTemperature)
	g.moisture = NewNoiseField(seed + seedOffsetMoisture)
	g.river = NewNoiseField(seed + seedOffsetRiver)
	g.detail = NewNoiseField(seed + seedOffsetDetail)
	g.continental = NewNoiseField(seed + seedOffsetContinental)
	g.oceanDepth = NewNoiseField(seed + seedOffsetOceanDepth)
}

// Seed возвращает текущий базовый сид.
func (g *WorldGenerator) Seed() int64 {
	return g.seed
}

// Params возвращает копию текущих параметров.
func (g *WorldGenerator) Params() Parameters {
	return g.params
}

// GenerateTerrain возвращает запись ландшафта для координаты.
// Попадание в кэш поднимает метку доступа и ничего не пересчитывает.
func (g *WorldGenerator) GenerateTerrain(x, y int) *TerrainRecord {
	key := Coord{x, y}
	if rec, ok := g.cache.Get(key); ok {
		return rec
	}

	fx, fy := float64(x), float64(y)

	cont := g.continentalMask(fx, fy)
	elev := g.elevationAt(fx, fy, cont)
	temp := g.temperatureAt(fx, fy)
	moist := g.moistureAt(fx, fy)
	det := g.detail.Sample2D(fx*g.params.Scale*detailFrequency, fy*g.params.Scale*detailFrequency)

	biome := Classify(elev, temp, moist)

	rec := &TerrainRecord{
		X: x, Y: y,
		Elevation:   elev,
		Temperature: temp,
		Moisture:    moist,
		Detail:      det,
		River:       g.riverValue(fx, fy),
		Biome:       biome,
		Color:       biome.Shade(det),
	}
	g.cache.PutIfAbsent(key, rec)
	return rec
}

// GenerateRegion генерирует прямоугольник тайлов построчно (row-major).
func (g *WorldGenerator) GenerateRegion(startX, startY, width, height int) []*TerrainRecord {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	records := make([]*TerrainRecord, 0, width*height)
	for y := startY; y < startY+height; y++ {
		for x := startX; x < startX+width; x++ {
			records = append(records, g.GenerateTerrain(x, y))
		}
	}
	return records
}

// CleanDistantCacheEntries удаляет из кэша записи дальше maxDistance от
// центра и возвращает их количество. Линейный проход по всему кэшу -
// вызывается только после завершения жеста, не покадрово.
func (g *WorldGenerator) CleanDistantCacheEntries(centerX, centerY, maxDistance float64) int {
	return g.cache.EvictByDistance(centerX, centerY, maxDistance)
}

// ClearCache полностью сбрасывает кэш ландшафта.
func (g *WorldGenerator) ClearCache() {
	g.cache.Clear()
}

// UpdateParameters вливает новые значения параметров.
// Смена сида пересоздает поля шума. Любое фактическое изменение
// сбрасывает весь кэш: старые записи считались по другим формулам.
// Повторная установка того же сида без других изменений - no-op.
func (g *WorldGenerator) UpdateParameters(u ParameterUpdate) {
	changed := false

	if u.Scale != nil && *u.Scale != g.params.Scale {
		g.params.Scale = *u.Scale
		changed = true
	}
	if u.Octaves != nil && *u.Octaves != g.params.Octaves {
		g.params.Octaves = *u.Octaves
		changed = true
	}
	if u.Persistence != nil && *u.Persistence != g.params.Persistence {
		g.params.Persistence = *u.Persistence
		changed = true
	}
	if u.Lacunarity != nil && *u.Lacunarity != g.params.Lacunarity {
		g.params.Lacunarity = *u.Lacunarity
		changed = true
	}
	if u.ElevationAmplitude != nil && *u.ElevationAmplitude != g.params.ElevationAmplitude {
		g.params.ElevationAmplitude = *u.ElevationAmplitude
		changed = true
	}
	if u.TemperatureScale != nil && *u.TemperatureScale != g.params.TemperatureScale {
		g.params.TemperatureScale = *u.TemperatureScale
		changed = true
	}
	if u.MoistureScale != nil && *u.MoistureScale != g.params.MoistureScale {
		g.params.MoistureScale = *u.MoistureScale
		changed = true
	}
	if u.BiomeBlending != nil && *u.BiomeBlending != g.params.BiomeBlending {
		g.params.BiomeBlending = *u.BiomeBlending
		changed = true
	}
	if u.RiverThreshold != nil && *u.RiverThreshold != g.params.RiverThreshold {
		g.params.RiverThreshold = *u.RiverThreshold
		changed = true
	}

	if u.Seed != nil && *u.Seed != g.seed {
		g.reseed(*u.Seed)
		changed = true
		logger.Log.WithField("seed", *u.Seed).Info("World reseeded")
	}

	if changed {
		g.cache.Clear()
	}
}

// Stats возвращает снимок состояния генератора.
func (g *WorldGenerator) Stats() Stats {
	return Stats{
		Seed:         g.seed,
		CacheSize:    g.cache.Len(),
		MaxCacheSize: g.cache.capacity,
		Parameters:   g.params,
	}
}

// --- Конвейер синтеза ---

// continentalMask - крупные очертания материков: смесь двух октавных
// выборок на очень низкой частоте (0.7 основная + 0.3 вторичная).
// Результат в [0,1]; ниже SeaLevelMask - океан.
func (g *WorldGenerator) continentalMask(x, y float64) float64 {
	f := g.params.Scale * continentalFrequency
	primary := (g.continental.Octave(x*f, y*f, 3, 0.5) + 1) / 2
	secondary := (g.continental.Octave(x*f*continentalSecondary, y*f*continentalSecondary, 2, 0.5) + 1) / 2
	return clamp01(0.7*primary + 0.3*secondary)
}

// elevationAt строит высоту из фрактальной базы и хребтового шума,
// усиленного у границ континентальной маски (зоны столкновения плит:
// горы концентрируются вдоль побережий).
func (g *WorldGenerator) elevationAt(x, y, cont float64) float64 {
	p := g.params

	base := fbm(g.elevation, x*p.Scale, y*p.Scale, p.Octaves, p.Persistence, p.Lacunarity)
	ridge := g.elevation.Ridged(x*p.Scale*ridgeFrequency, y*p.Scale*ridgeFrequency, 4, 0.5)

	edge := smoothstep(0.3, 0.8, math.Abs(cont-0.5)*2)
	relief := base + ridge*edge*ridgeStrength

	if cont < SeaLevelMask {
		// Океан: глубина растет с удалением от материка
		depth := (SeaLevelMask - cont) / SeaLevelMask
		floor := (g.oceanDepth.Octave(x*p.Scale*0.5, y*p.Scale*0.5, 3, 0.5) + 1) / 2
		return clampElevation(-0.02 - depth*(0.08+0.2*floor))
	}

	// Суша: влияние континента 0 при маске 0.3 и 1 при 0.7,
	// плюс линейный сдвиг от самой маски
	infl := smoothstep(0.3, 0.7, cont)
	land := (relief+1)/2*infl*p.ElevationAmplitude + (cont-SeaLevelMask)*0.3
	return clampElevation(land)
}

// temperatureAt - 60% широтная составляющая от |y|, 40% шум.
// Температура осознанно тянется к "широте", а не к чистому шуму.
func (g *WorldGenerator) temperatureAt(x, y float64) float64 {
	lat := math.Abs(y) * g.params.TemperatureScale

	var band float64
	switch {
	case lat < 1.0:
		band = 0.85 - 0.1*lat // тропики
	case lat < 3.0:
		band = 0.75 - 0.25*(lat-1) // умеренный пояс
	default:
		band = math.Max(0, 0.25-0.1*(lat-3)) // арктика
	}

	n := (fbm(g.temperature, x*g.params.TemperatureScale, y*g.params.TemperatureScale,
		g.params.Octaves, g.params.Persistence, g.params.Lacunarity) + 1) / 2

	return clamp01(0.6*band + 0.4*n)
}

// moistureAt - фрактальный шум, нормированный в [0,1], без направленного уклона.
func (g *WorldGenerator) moistureAt(x, y float64) float64 {
	n := fbm(g.moisture, x*g.params.MoistureScale, y*g.params.MoistureScale,
		g.params.Octaves, g.params.Persistence, g.params.Lacunarity)
	return clamp01((n + 1) / 2)
}

// riverValue - значение речного поля. Вычисляется и хранится в записи,
// но в классификации не участвует (см. комментарий у TerrainRecord.River).
func (g *WorldGenerator) riverValue(x, y float64) float64 {
	n := g.river.Sample2D(x*g.params.Scale*0.5, y*g.params.Scale*0.5)
	return 1 - math.Abs(n)
}

// --- Вспомогательные функции ---

// fbm - октавный шум с настраиваемой лакунарностью.
// NoiseField.Octave фиксирует удвоение частоты; конвейеру нужна
// лакунарность из параметров, поэтому накопление продублировано здесь.
func fbm(f *NoiseField, x, y float64, octaves int, persistence, lacunarity float64) float64 {
	total := 0.0
	frequency := 1.0
	amplitude := 1.0
	maxAmplitude := 0.0

	for i := 0; i < octaves; i++ {
		total += f.Sample2D(x*frequency, y*frequency) * amplitude
		maxAmplitude += amplitude
		amplitude *= persistence
		frequency *= lacunarity
	}

	if maxAmplitude == 0 {
		return f.Sample2D(x, y)
	}
	return total / maxAmplitude
}

// smoothstep - плавный переход 0..1 между edge0 и edge1.
func smoothstep(edge0, edge1, x float64) float64 {
	t := clamp01((x - edge0) / (edge1 - edge0))
	return t * t * (3 - 2*t)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampElevation(v float64) float64 {
	if v < minElevation {
		return minElevation
	}
	if v > maxElevation {
		return maxElevation
	}
	return v
}
