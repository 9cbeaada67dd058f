package worldgen

// Уровень моря встречается дважды: как порог континентальной маски при
// генерации высоты и как пороги воды в классификаторе. Это одно и то же
// понятие, поэтому все константы собраны здесь, а не разбросаны по коду.
const (
	// SeaLevelMask - значение континентальной маски, ниже которого координата океан
	SeaLevelMask = 0.4

	// Пороги высоты в классификаторе
	DeepWaterLevel = -0.1
	SeaLevel       = 0.0
	ShallowLevel   = 0.05
	BeachLevel     = 0.15
)

// Biome - замкнутое перечисление типов местности.
type Biome int

const (
	BiomeDeepWater Biome = iota
	BiomeWater
	BiomeSand
	BiomeGrass
	BiomeForest
	BiomeHills
	BiomeMountains
	BiomeSnow

	biomeCount
)

// RGB - цвет тайла для отрисовки на канве.
type RGB struct {
	R, G, B uint8
}

type biomeInfo struct {
	Name      string
	BaseColor RGB
	// Номинальный диапазон высот. Только описательный: классификация
	// идет по таблице правил в Classify, а не по этим значениям.
	MinElevation float64
	MaxElevation float64
}

var biomeTable = [biomeCount]biomeInfo{
	BiomeDeepWater: {"Deep Water", RGB{27, 79, 114}, -0.3, -0.1},
	BiomeWater:     {"Water", RGB{46, 134, 193}, -0.1, 0.05},
	BiomeSand:      {"Sand", RGB{232, 212, 160}, 0.05, 0.15},
	BiomeGrass:     {"Grass", RGB{88, 166, 92}, 0.15, 0.55},
	BiomeForest:    {"Forest", RGB{46, 107, 52}, 0.15, 0.55},
	BiomeHills:     {"Hills", RGB{146, 141, 110}, 0.55, 0.75},
	BiomeMountains: {"Mountains", RGB{127, 131, 134}, 0.75, 0.85},
	BiomeSnow:      {"Snow", RGB{238, 242, 245}, 0.85, 1.0},
}

func (b Biome) valid() bool {
	return b >= 0 && b < biomeCount
}

// Name возвращает человекочитаемое имя биома.
func (b Biome) Name() string {
	if !b.valid() {
		return "Unknown"
	}
	return biomeTable[b].Name
}

// BaseColor возвращает базовый цвет биома.
func (b Biome) BaseColor() RGB {
	if !b.valid() {
		return RGB{}
	}
	return biomeTable[b].BaseColor
}

// Shade возвращает базовый цвет, сдвинутый детальным шумом на +-15
// по каждому каналу. Легкий дизеринг, чтобы большие области одного
// биома не выглядели однотонной заливкой.
func (b Biome) Shade(detail float64) RGB {
	base := b.BaseColor()
	d := detail * 15
	return RGB{
		R: clampChannel(float64(base.R) + d),
		G: clampChannel(float64(base.G) + d),
		B: clampChannel(float64(base.B) + d),
	}
}

func clampChannel(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// Classify - чистая функция (высота, температура, влажность) -> биом.
// Никакой зависимости от соседних тайлов или порядка генерации.
// Порядок правил важен: побеждает первое совпавшее.
func Classify(elevation, temperature, moisture float64) Biome {
	switch {
	case elevation < DeepWaterLevel:
		return BiomeDeepWater
	case elevation < SeaLevel:
		return BiomeWater
	case elevation < ShallowLevel:
		return BiomeWater // мелководье
	case elevation < BeachLevel:
		return BiomeSand // пляжи
	case elevation > 0.85 || (elevation > 0.6 && temperature < 0.2):
		return BiomeSnow
	case elevation > 0.75:
		return BiomeMountains
	case elevation > 0.55:
		return BiomeHills
	case temperature > 0.7 && moisture < 0.3:
		return BiomeSand // жаркая пустыня
	case temperature < 0.3 && moisture < 0.4:
		return BiomeSand // холодная тундра
	case moisture > 0.65 && temperature > 0.5:
		return BiomeForest
	case moisture > 0.5 && temperature > 0.3 && temperature < 0.7:
		return BiomeForest
	case temperature < 0.25:
		if elevation > 0.4 {
			return BiomeHills
		}
		return BiomeGrass
	default:
		return BiomeGrass
	}
}
