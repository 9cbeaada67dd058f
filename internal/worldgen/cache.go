package worldgen

import (
	"math"
	"sort"
)

// Coord - целочисленный ключ тайла на бесконечной плоскости.
type Coord struct {
	X, Y int
}

// terrainCache - ограниченный кэш записей ландшафта.
// Наружу торчат только Get / PutIfAbsent / EvictByDistance / Clear:
// прямого доступа к содержимому нет, поэтому инварианты (например,
// корректность LRU-меток) нарушить извне нельзя.
//
// Вместо wall-clock времени используется монотонный счетчик обращений:
// при быстрых последовательных доступах часы дают одинаковые метки,
// и порядок LRU становится неопределенным.
type terrainCache struct {
	entries  map[Coord]*TerrainRecord
	capacity int
	clock    int64
}

func newTerrainCache(capacity int) *terrainCache {
	if capacity < 1 {
		capacity = 1
	}
	return &terrainCache{
		entries:  make(map[Coord]*TerrainRecord),
		capacity: capacity,
	}
}

// Get возвращает запись и поднимает ее метку последнего доступа.
func (c *terrainCache) Get(key Coord) (*TerrainRecord, bool) {
	rec, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.clock++
	rec.lastAccessed = c.clock
	return rec, true
}

// PutIfAbsent кладет запись, если ее еще нет.
// При переполнении предварительно вытесняет ~20% самых старых.
func (c *terrainCache) PutIfAbsent(key Coord, rec *TerrainRecord) {
	if _, ok := c.entries[key]; ok {
		return
	}
	if len(c.entries) >= c.capacity {
		c.evictOldest()
	}
	c.clock++
	rec.createdAt = c.clock
	rec.lastAccessed = c.clock
	c.entries[key] = rec
}

// evictOldest убирает пятую часть наименее недавно использованных записей.
// Полная сортировка - O(n log n), но проход случается раз на capacity/5 вставок.
func (c *terrainCache) evictOldest() {
	type aged struct {
		key  Coord
		last int64
	}
	all := make([]aged, 0, len(c.entries))
	for k, r := range c.entries {
		all = append(all, aged{k, r.lastAccessed})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].last < all[j].last })

	n := c.capacity / 5
	if n < 1 {
		n = 1
	}
	for i := 0; i < n && i < len(all); i++ {
		delete(c.entries, all[i].key)
	}
}

// EvictByDistance удаляет все записи дальше maxDistance (евклидово)
// от центра. Возвращает количество удаленных.
func (c *terrainCache) EvictByDistance(centerX, centerY, maxDistance float64) int {
	removed := 0
	for k := range c.entries {
		dx := float64(k.X) - centerX
		dy := float64(k.Y) - centerY
		if math.Sqrt(dx*dx+dy*dy) > maxDistance {
			delete(c.entries, k)
			removed++
		}
	}
	return removed
}

// Clear полностью опустошает кэш (смена сида или параметров).
func (c *terrainCache) Clear() {
	c.entries = make(map[Coord]*TerrainRecord)
}

func (c *terrainCache) Len() int {
	return len(c.entries)
}
