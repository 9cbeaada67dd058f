package engine

import (
	"encoding/json"
	"fmt"
	"sync"

	"settlement-server/internal/grid"
	"settlement-server/internal/network"
	"settlement-server/internal/worldgen"
	"settlement-server/pkg/api"
	"settlement-server/pkg/logger"
)

// WorldService - ядро: владеет генератором и вьюпортом и обрабатывает
// команды клиентов. Генерация сама по себе чисто вычислительная и
// однопоточная; мьютекс сериализует только конкурирующие вызовы
// от WS-сессий и HTTP-хендлеров.
type WorldService struct {
	mu sync.Mutex

	Gen  *worldgen.WorldGenerator
	View *grid.Viewport
	Hub  *network.Broadcaster
}

// NewService собирает движок по конфигу.
func NewService(cfg Config) *WorldService {
	gen := worldgen.NewWorldGenerator(cfg.Seed)
	if cfg.Preset != "" {
		if gen.ApplyPreset(cfg.Preset) {
			logger.Log.Infof("🌍 World preset: %s", cfg.Preset)
		} else {
			logger.Log.Warnf("Unknown preset %q, using defaults", cfg.Preset)
		}
	}

	return &WorldService{
		Gen:  gen,
		View: grid.NewViewport(gen, cfg.CanvasWidth, cfg.CanvasHeight),
		Hub:  network.NewBroadcaster(),
	}
}

// ProcessCommand выполняет команду клиента и возвращает ответ.
// Второе возвращаемое значение - ответ для рассылки ВСЕМ сессиям
// (мир перегенерирован), или nil.
func (s *WorldService) ProcessCommand(cmd api.ClientCommand) (api.ServerResponse, *api.ServerResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch cmd.Action {
	case api.ActionInit:
		return s.snapshot(nil), nil

	case api.ActionViewport:
		var p api.ViewportPayload
		if err := parsePayload(cmd.Payload, &p); err != nil {
			return errorResponse(err), nil
		}
		s.View.Resize(p.CanvasWidth, p.CanvasHeight)
		if p.Zoom != 0 {
			s.View.SetZoom(p.Zoom)
		}
		s.View.PanTo(p.CenterX, p.CenterY)
		return s.snapshot(nil), nil

	case api.ActionPan:
		var p api.PanPayload
		if err := parsePayload(cmd.Payload, &p); err != nil {
			return errorResponse(err), nil
		}
		// Жест еще идет: двигаем камеру, вытеснение не запускаем
		s.View.PanTo(p.CenterX, p.CenterY)
		return s.snapshot(nil), nil

	case api.ActionPanEnd:
		var p api.PanPayload
		if err := parsePayload(cmd.Payload, &p); err != nil {
			return errorResponse(err), nil
		}
		s.View.PanTo(p.CenterX, p.CenterY)
		report := s.View.EvictDistant()
		return s.snapshot(&report), nil

	case api.ActionZoom:
		var p api.ZoomPayload
		if err := parsePayload(cmd.Payload, &p); err != nil {
			return errorResponse(err), nil
		}
		s.View.SetZoom(p.Zoom)
		report := s.View.EvictDistant()
		return s.snapshot(&report), nil

	case api.ActionPaint:
		var p api.PaintPayload
		if err := parsePayload(cmd.Payload, &p); err != nil {
			return errorResponse(err), nil
		}
		s.View.MarkModified(p.X, p.Y)
		return s.snapshot(nil), nil

	case api.ActionSetParams:
		var p api.ParamsPayload
		if err := parsePayload(cmd.Payload, &p); err != nil {
			return errorResponse(err), nil
		}
		s.Gen.UpdateParameters(toUpdate(p))
		resp := s.snapshot(nil)
		return resp, &resp

	case api.ActionPreset:
		var p api.PresetPayload
		if err := parsePayload(cmd.Payload, &p); err != nil {
			return errorResponse(err), nil
		}
		if !s.Gen.ApplyPreset(p.Name) {
			return errorResponse(fmt.Errorf("unknown preset %q", p.Name)), nil
		}
		resp := s.snapshot(nil)
		return resp, &resp

	case api.ActionStats:
		return s.statsResponse(), nil

	default:
		return errorResponse(fmt.Errorf("unknown action %q", cmd.Action)), nil
	}
}

// --- Методы для HTTP API ---

// Terrain возвращает запись одной координаты.
func (s *WorldService) Terrain(x, y int) *worldgen.TerrainRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Gen.GenerateTerrain(x, y)
}

// Region возвращает прямоугольник записей построчно.
func (s *WorldService) Region(startX, startY, width, height int) []*worldgen.TerrainRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Gen.GenerateRegion(startX, startY, width, height)
}

// Stats возвращает снимок генератора.
func (s *WorldService) Stats() worldgen.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Gen.Stats()
}

// UpdateParameters применяет частичное обновление и рассылает всем
// сессиям свежий снимок - мир перегенерирован.
func (s *WorldService) UpdateParameters(p api.ParamsPayload) {
	s.mu.Lock()
	s.Gen.UpdateParameters(toUpdate(p))
	resp := s.snapshot(nil)
	s.mu.Unlock()

	s.Hub.Broadcast(resp)
}

// --- Вспомогательные функции ---

// snapshot собирает UPDATE-ответ по текущему вьюпорту. Вызывается под мьютексом.
func (s *WorldService) snapshot(eviction *grid.EvictionReport) api.ServerResponse {
	x0, y0, x1, y1 := s.View.VisibleRange()
	tiles := s.View.VisibleTiles()

	views := make([]api.TileView, 0, len(tiles))
	for _, t := range tiles {
		views = append(views, api.TileView{
			X:           t.X,
			Y:           t.Y,
			Biome:       t.Terrain.Biome.Name(),
			Color:       hexColor(t.Terrain.Color),
			Elevation:   t.Terrain.Elevation,
			Temperature: t.Terrain.Temperature,
			Moisture:    t.Terrain.Moisture,
			Modified:    t.Modified,
		})
	}

	resp := api.ServerResponse{
		Type:     api.ResponseUpdate,
		Seed:     s.Gen.Seed(),
		Viewport: &api.ViewportMeta{X0: x0, Y0: y0, X1: x1, Y1: y1},
		Tiles:    views,
	}
	if eviction != nil {
		resp.Eviction = &api.EvictionView{
			EvictedTiles:    eviction.EvictedTiles,
			EvictedRecords:  eviction.EvictedRecords,
			RetentionRadius: eviction.RetentionRadius,
		}
	}
	return resp
}

func (s *WorldService) statsResponse() api.ServerResponse {
	raw, err := json.Marshal(s.Gen.Stats())
	if err != nil {
		return errorResponse(err)
	}
	return api.ServerResponse{Type: api.ResponseStats, Seed: s.Gen.Seed(), Stats: raw}
}

// parsePayload разбирает payload и прогоняет валидацию, если DTO ее реализует.
func parsePayload(raw json.RawMessage, dst interface{}) error {
	if len(raw) == 0 {
		return fmt.Errorf("payload is required")
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("malformed payload: %w", err)
	}
	if v, ok := dst.(api.Validator); ok {
		return v.Validate()
	}
	return nil
}

func errorResponse(err error) api.ServerResponse {
	return api.ServerResponse{Type: api.ResponseError, Error: err.Error()}
}

func toUpdate(p api.ParamsPayload) worldgen.ParameterUpdate {
	return worldgen.ParameterUpdate{
		Seed:               p.Seed,
		Scale:              p.Scale,
		Octaves:            p.Octaves,
		Persistence:        p.Persistence,
		Lacunarity:         p.Lacunarity,
		ElevationAmplitude: p.ElevationAmplitude,
		TemperatureScale:   p.TemperatureScale,
		MoistureScale:      p.MoistureScale,
		BiomeBlending:      p.BiomeBlending,
		RiverThreshold:     p.RiverThreshold,
	}
}

func hexColor(c worldgen.RGB) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}
