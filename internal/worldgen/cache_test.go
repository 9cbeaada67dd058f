package worldgen

import "testing"

func record(x, y int) *TerrainRecord {
	return &TerrainRecord{X: x, Y: y}
}

func TestCacheCapacityNeverExceeded(t *testing.T) {
	c := newTerrainCache(10)

	for i := 0; i < 100; i++ {
		c.PutIfAbsent(Coord{i, 0}, record(i, 0))
		if c.Len() > 10 {
			t.Fatalf("cache size %d exceeds capacity 10 after %d inserts", c.Len(), i+1)
		}
	}
}

func TestCacheEvictsLeastRecentlyAccessed(t *testing.T) {
	c := newTerrainCache(10)

	// Заполняем до предела
	for i := 0; i < 10; i++ {
		c.PutIfAbsent(Coord{i, 0}, record(i, 0))
	}

	// Поднимаем метки всем, кроме ключей 8 и 9
	for i := 0; i < 8; i++ {
		if _, ok := c.Get(Coord{i, 0}); !ok {
			t.Fatalf("key %d missing before overflow", i)
		}
	}

	// Переполнение: должна уйти ровно пятая часть (2 записи) - самые старые
	c.PutIfAbsent(Coord{100, 100}, record(100, 100))

	for _, stale := range []int{8, 9} {
		if _, ok := c.entries[Coord{stale, 0}]; ok {
			t.Errorf("key %d should have been evicted as least-recently-accessed", stale)
		}
	}
	for i := 0; i < 8; i++ {
		if _, ok := c.entries[Coord{i, 0}]; !ok {
			t.Errorf("recently accessed key %d was evicted", i)
		}
	}
	if _, ok := c.entries[Coord{100, 100}]; !ok {
		t.Error("newly inserted key missing after eviction")
	}
}

func TestCachePutIfAbsentKeepsOriginal(t *testing.T) {
	c := newTerrainCache(10)

	first := record(1, 1)
	second := record(1, 1)
	c.PutIfAbsent(Coord{1, 1}, first)
	c.PutIfAbsent(Coord{1, 1}, second)

	got, _ := c.Get(Coord{1, 1})
	if got != first {
		t.Error("PutIfAbsent replaced an existing record")
	}
}

func TestCacheEvictByDistance(t *testing.T) {
	c := newTerrainCache(100)

	// Расстояния от (0,0): 5, ~9.9, ~10.2, 50
	coords := []Coord{{3, 4}, {7, 7}, {10, 2}, {50, 0}}
	for _, k := range coords {
		c.PutIfAbsent(k, record(k.X, k.Y))
	}

	removed := c.EvictByDistance(0, 0, 10)
	if removed != 2 {
		t.Errorf("EvictByDistance removed %d entries, want 2", removed)
	}

	for _, keep := range []Coord{{3, 4}, {7, 7}} {
		if _, ok := c.entries[keep]; !ok {
			t.Errorf("entry %v within radius was removed", keep)
		}
	}
	for _, gone := range []Coord{{10, 2}, {50, 0}} {
		if _, ok := c.entries[gone]; ok {
			t.Errorf("entry %v beyond radius survived", gone)
		}
	}
}

func TestCacheClear(t *testing.T) {
	c := newTerrainCache(10)
	for i := 0; i < 5; i++ {
		c.PutIfAbsent(Coord{i, i}, record(i, i))
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("cache size %d after Clear, want 0", c.Len())
	}
}

func TestCacheAccessCounterMonotonic(t *testing.T) {
	c := newTerrainCache(10)
	c.PutIfAbsent(Coord{0, 0}, record(0, 0))
	c.PutIfAbsent(Coord{1, 0}, record(1, 0))

	a, _ := c.Get(Coord{0, 0})
	first := a.lastAccessed
	b, _ := c.Get(Coord{1, 0})
	if b.lastAccessed <= first {
		t.Error("access counter is not strictly increasing")
	}
	a2, _ := c.Get(Coord{0, 0})
	if a2.lastAccessed <= b.lastAccessed {
		t.Error("re-access did not bump the counter")
	}
}
