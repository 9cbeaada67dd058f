package worldgen

import "testing"

func TestClassifyRuleTable(t *testing.T) {
	// Порядок правил важен; проверяем каждое правило и граничные значения
	// точно на порогах. Граница не включается: elevation < -0.1 и т.д.
	cases := []struct {
		name             string
		elev, temp, mois float64
		want             Biome
	}{
		{"deep water", -0.2, 0.5, 0.5, BiomeDeepWater},
		{"deep water floor", -0.3, 0.5, 0.5, BiomeDeepWater},
		{"deep water boundary is water", -0.1, 0.5, 0.5, BiomeWater},
		{"water", -0.05, 0.5, 0.5, BiomeWater},
		{"water boundary at sea level", 0.0, 0.5, 0.5, BiomeWater},
		{"shallow water", 0.03, 0.5, 0.5, BiomeWater},
		{"shallow boundary is sand", 0.05, 0.5, 0.5, BiomeSand},
		{"beach", 0.1, 0.5, 0.5, BiomeSand},
		{"beach boundary falls through", 0.15, 0.5, 0.55, BiomeForest},
		{"snow high peak", 0.9, 0.9, 0.9, BiomeSnow},
		{"snow cold mountain", 0.65, 0.1, 0.5, BiomeSnow},
		{"snow boundary at 0.85 is mountains", 0.85, 0.5, 0.5, BiomeMountains},
		{"mountains", 0.8, 0.5, 0.5, BiomeMountains},
		{"mountains boundary at 0.75 is hills", 0.75, 0.5, 0.5, BiomeHills},
		{"hills", 0.6, 0.5, 0.5, BiomeHills},
		{"hills boundary at 0.55 falls through", 0.55, 0.5, 0.55, BiomeForest},
		{"hot desert", 0.3, 0.8, 0.2, BiomeSand},
		{"cold tundra sand", 0.3, 0.2, 0.3, BiomeSand},
		{"warm wet forest", 0.3, 0.6, 0.7, BiomeForest},
		{"temperate forest", 0.3, 0.5, 0.55, BiomeForest},
		{"cold highland hills", 0.45, 0.2, 0.5, BiomeHills},
		{"cold lowland grass", 0.3, 0.2, 0.5, BiomeGrass},
		{"default grass", 0.3, 0.5, 0.4, BiomeGrass},
	}

	for _, tc := range cases {
		got := Classify(tc.elev, tc.temp, tc.mois)
		if got != tc.want {
			t.Errorf("%s: Classify(%v, %v, %v) = %s, want %s",
				tc.name, tc.elev, tc.temp, tc.mois, got.Name(), tc.want.Name())
		}
	}
}

func TestDeepWaterPrecedence(t *testing.T) {
	// Глубина < -0.1 - это всегда глубокая вода, какой бы ни была
	// температура и влажность: первое правило перекрывает остальные
	for _, temp := range []float64{0, 0.25, 0.5, 0.75, 1} {
		for _, mois := range []float64{0, 0.3, 0.6, 1} {
			if got := Classify(-0.15, temp, mois); got != BiomeDeepWater {
				t.Errorf("Classify(-0.15, %v, %v) = %s, want Deep Water", temp, mois, got.Name())
			}
		}
	}
}

func TestClassifyAlwaysValid(t *testing.T) {
	// Любая комбинация из допустимых диапазонов дает один из 8 биомов
	for e := -0.3; e <= 1.0; e += 0.05 {
		for temp := 0.0; temp <= 1.0; temp += 0.1 {
			for m := 0.0; m <= 1.0; m += 0.1 {
				b := Classify(e, temp, m)
				if !b.valid() {
					t.Fatalf("Classify(%v, %v, %v) returned invalid biome %d", e, temp, m, b)
				}
			}
		}
	}
}

func TestBiomeTableComplete(t *testing.T) {
	for b := Biome(0); b < biomeCount; b++ {
		if b.Name() == "" || b.Name() == "Unknown" {
			t.Errorf("biome %d has no name", b)
		}
		c := b.BaseColor()
		if c == (RGB{}) {
			t.Errorf("biome %s has zero base color", b.Name())
		}
		info := biomeTable[b]
		if info.MinElevation >= info.MaxElevation {
			t.Errorf("biome %s has inverted nominal elevation band", b.Name())
		}
	}
}

func TestShadeClamped(t *testing.T) {
	// Дизеринг на +-15 не должен выводить каналы за [0,255]
	for _, detail := range []float64{-1.01, -0.5, 0, 0.5, 1.01} {
		for b := Biome(0); b < biomeCount; b++ {
			b.Shade(detail) // паника или переполнение uint8 провалили бы тест
		}
	}

	snowHigh := BiomeSnow.Shade(1.0)
	if snowHigh.B < BiomeSnow.BaseColor().B {
		t.Error("positive detail should brighten, not darken")
	}
}
