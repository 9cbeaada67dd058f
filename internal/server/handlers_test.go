package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"settlement-server/internal/engine"
	"settlement-server/internal/worldgen"
)

func newTestRouter() chi.Router {
	svc := engine.NewService(engine.Config{Seed: 42, CanvasWidth: 320, CanvasHeight: 240})
	r := chi.NewRouter()
	NewAPIHandler(svc).RegisterRoutes(r)
	return r
}

func TestTerrainEndpoint(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/terrain/5/-3", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var terr worldgen.TerrainRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &terr); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if terr.X != 5 || terr.Y != -3 {
		t.Errorf("coordinates = (%d,%d), want (5,-3)", terr.X, terr.Y)
	}
}

func TestTerrainEndpointRejectsNonIntegers(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/terrain/abc/0", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestRegionEndpoint(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/region?x=-2&y=1&w=4&h=3", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var records []*worldgen.TerrainRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &records); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if len(records) != 12 {
		t.Fatalf("region 4x3 returned %d records, want 12", len(records))
	}
	// Построчный порядок: первая запись - левый верхний угол
	if records[0].X != -2 || records[0].Y != 1 {
		t.Errorf("first record at (%d,%d), want (-2,1)", records[0].X, records[0].Y)
	}
}

// Предел размера региона не должен обходиться ни знаком, ни переполнением
// произведения w*h.
func TestRegionEndpointSizeLimit(t *testing.T) {
	r := newTestRouter()

	cases := []struct {
		name  string
		query string
	}{
		{"zero width", "x=0&y=0&w=0&h=10"},
		{"negative height", "x=0&y=0&w=10&h=-1"},
		{"missing params", "x=0&y=0"},
		{"product over limit", "x=0&y=0&w=200&h=200"},
		{"one side over limit", "x=0&y=0&w=100000&h=1"},
		{"product wraps to zero", "x=0&y=0&w=4294967296&h=4294967296"},
		{"product wraps negative", "x=0&y=0&w=3037000500&h=3037000500"},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/api/region?"+tc.query, nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", tc.name, rec.Code)
		}
	}
}

func TestPresetsEndpoint(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/presets", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var out []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if len(out) != len(worldgen.Presets) {
		t.Errorf("presets returned %d entries, want %d", len(out), len(worldgen.Presets))
	}
}
