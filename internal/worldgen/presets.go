package worldgen

import "sort"

// Preset - именованный набор параметров генерации.
// Остальные параметры (лакунарность, шкалы температуры и влажности)
// пресетом не трогаются.
type Preset struct {
	Scale              float64 `json:"scale"`
	Octaves            int     `json:"octaves"`
	Persistence        float64 `json:"persistence"`
	ElevationAmplitude float64 `json:"elevationAmplitude"`
	RiverThreshold     float64 `json:"riverThreshold"`
}

// Presets - пять предустановленных мировых конфигураций.
var Presets = map[string]Preset{
	"archipelago": {Scale: 0.08, Octaves: 4, Persistence: 0.55, ElevationAmplitude: 0.8, RiverThreshold: 0.04},
	"continental": {Scale: 0.03, Octaves: 5, Persistence: 0.5, ElevationAmplitude: 1.0, RiverThreshold: 0.05},
	"mountainous": {Scale: 0.05, Octaves: 6, Persistence: 0.6, ElevationAmplitude: 1.3, RiverThreshold: 0.06},
	"pangaea":     {Scale: 0.02, Octaves: 4, Persistence: 0.45, ElevationAmplitude: 0.9, RiverThreshold: 0.05},
	"oceanic":     {Scale: 0.06, Octaves: 4, Persistence: 0.5, ElevationAmplitude: 0.6, RiverThreshold: 0.03},
}

// PresetNames возвращает имена пресетов в стабильном порядке.
func PresetNames() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyPreset применяет именованный пресет через обычный путь
// UpdateParameters (с тем же сбросом кэша). false - имя неизвестно.
func (g *WorldGenerator) ApplyPreset(name string) bool {
	p, ok := Presets[name]
	if !ok {
		return false
	}
	g.UpdateParameters(ParameterUpdate{
		Scale:              &p.Scale,
		Octaves:            &p.Octaves,
		Persistence:        &p.Persistence,
		ElevationAmplitude: &p.ElevationAmplitude,
		RiverThreshold:     &p.RiverThreshold,
	})
	return true
}
