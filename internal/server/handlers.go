package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"settlement-server/internal/engine"
	"settlement-server/internal/worldgen"
	"settlement-server/pkg/api"
)

// Предел размера региона за один запрос, чтобы один GET не заставил
// сервер синхронно посчитать полмира.
const maxRegionTiles = 16384

// APIHandler - read-API поверх движка: точечные запросы ландшафта,
// регионы для save-системы и инструментов, статистика, пресеты.
type APIHandler struct {
	Service *engine.WorldService
}

func NewAPIHandler(s *engine.WorldService) *APIHandler {
	return &APIHandler{Service: s}
}

// RegisterRoutes регистрирует API-эндпоинты
func (h *APIHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/terrain/{x}/{y}", h.handleTerrain)
		r.Get("/region", h.handleRegion)
		r.Get("/stats", h.handleStats)
		r.Get("/presets", h.handlePresets)
		r.Post("/params", h.handleParams)
	})
}

// /api/terrain/{x}/{y} - запись одной координаты
func (h *APIHandler) handleTerrain(w http.ResponseWriter, r *http.Request) {
	x, errX := strconv.Atoi(chi.URLParam(r, "x"))
	y, errY := strconv.Atoi(chi.URLParam(r, "y"))
	if errX != nil || errY != nil {
		http.Error(w, "coordinates must be integers", http.StatusBadRequest)
		return
	}

	writeJSON(w, h.Service.Terrain(x, y))
}

// /api/region?x=..&y=..&w=..&h=.. - прямоугольник записей построчно
func (h *APIHandler) handleRegion(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	x, errX := strconv.Atoi(q.Get("x"))
	y, errY := strconv.Atoi(q.Get("y"))
	width, errW := strconv.Atoi(q.Get("w"))
	height, errH := strconv.Atoi(q.Get("h"))
	if errX != nil || errY != nil || errW != nil || errH != nil {
		http.Error(w, "x, y, w, h query params are required integers", http.StatusBadRequest)
		return
	}
	// Стороны проверяются до произведения: иначе w*h может переполниться
	// и обойти предел
	if width <= 0 || height <= 0 ||
		width > maxRegionTiles || height > maxRegionTiles ||
		width*height > maxRegionTiles {
		http.Error(w, "region size out of range", http.StatusBadRequest)
		return
	}

	writeJSON(w, h.Service.Region(x, y, width, height))
}

// /api/stats - снимок генератора
func (h *APIHandler) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Service.Stats())
}

// /api/presets - имена и содержимое пресетов
func (h *APIHandler) handlePresets(w http.ResponseWriter, r *http.Request) {
	type presetView struct {
		Name string `json:"name"`
		worldgen.Preset
	}

	var out []presetView
	for _, name := range worldgen.PresetNames() {
		out = append(out, presetView{Name: name, Preset: worldgen.Presets[name]})
	}
	writeJSON(w, out)
}

// POST /api/params - частичное обновление параметров генерации.
// Изменение уходит broadcast'ом во все WS-сессии.
func (h *APIHandler) handleParams(w http.ResponseWriter, r *http.Request) {
	var p api.ParamsPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "malformed parameters: "+err.Error(), http.StatusBadRequest)
		return
	}

	h.Service.UpdateParameters(p)
	writeJSON(w, h.Service.Stats())
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")

	// Пустой срез отдаем как [], а не null
	if data == nil {
		w.Write([]byte("[]"))
		return
	}

	json.NewEncoder(w).Encode(data)
}
