package worldgen

import "math"

// Константы симплексной решетки.
// F2 скашивает (x,y) в треугольную сетку, G2 возвращает обратно.
const (
	skewF2   = 0.36602540378443865 // (sqrt(3)-1)/2
	unskewG2 = 0.21132486540518713 // (3-sqrt(3))/6
)

// Генератор Лемера (Park-Miller): s' = s*16807 mod (2^31 - 1).
// Используется только для тасования таблицы перестановок.
const (
	lehmerMultiplier = 16807
	lehmerModulus    = 2147483647
)

// 12 фиксированных градиентов. Компонента z не используется
// при 2D-выборке, но таблица остается трехмерной.
var grad3 = [12][3]float64{
	{1, 1, 0}, {-1, 1, 0}, {1, -1, 0}, {-1, -1, 0},
	{1, 0, 1}, {-1, 0, 1}, {1, 0, -1}, {-1, 0, -1},
	{0, 1, 1}, {0, -1, 1}, {0, 1, -1}, {0, -1, -1},
}

// NoiseField - детерминированный 2D шум с посеянной таблицей перестановок.
// Неизменяем после создания: один сид - одна таблица - одни и те же значения
// в любой точке, сколько бы раз мы их ни запрашивали.
type NoiseField struct {
	perm      [512]int
	permMod12 [512]int
}

// NewNoiseField строит поле шума из сида.
// Сид нормализуется по модулю генератора; ноль заменяется на единицу,
// иначе генератор Лемера вырождается в константу.
func NewNoiseField(seed int64) *NoiseField {
	f := &NoiseField{}

	var base [256]int
	for i := range base {
		base[i] = i
	}

	s := seed % lehmerModulus
	if s < 0 {
		s += lehmerModulus
	}
	if s == 0 {
		s = 1
	}

	// Fisher-Yates на генераторе Лемера
	for i := 255; i > 0; i-- {
		s = s * lehmerMultiplier % lehmerModulus
		j := int(s % int64(i+1))
		base[i], base[j] = base[j], base[i]
	}

	// Дублируем таблицу до 512 записей, чтобы при выборке не проверять
	// выход индекса за границу. Индекс градиента считаем заранее.
	for i := 0; i < 512; i++ {
		f.perm[i] = base[i&255]
		f.permMod12[i] = f.perm[i] % 12
	}
	return f
}

// Sample2D возвращает симплекс-шум в точке (x,y), примерно в [-1,1].
// Чистая функция от (x, y, сид).
func (f *NoiseField) Sample2D(x, y float64) float64 {
	// Скашиваем точку в симплексную сетку
	s := (x + y) * skewF2
	i := math.Floor(x + s)
	j := math.Floor(y + s)

	t := (i + j) * unskewG2
	x0 := x - (i - t)
	y0 := y - (j - t)

	// В каком из двух треугольников единичной ячейки мы находимся
	var i1, j1 int
	if x0 > y0 {
		i1, j1 = 1, 0 // нижний треугольник
	} else {
		i1, j1 = 0, 1 // верхний
	}

	x1 := x0 - float64(i1) + unskewG2
	y1 := y0 - float64(j1) + unskewG2
	x2 := x0 - 1 + 2*unskewG2
	y2 := y0 - 1 + 2*unskewG2

	ii := int(i) & 255
	jj := int(j) & 255

	g0 := f.permMod12[ii+f.perm[jj]]
	g1 := f.permMod12[ii+i1+f.perm[jj+j1]]
	g2 := f.permMod12[ii+1+f.perm[jj+1]]

	// Сумма вкладов трех вершин; 70 приводит результат примерно к [-1,1]
	return 70.0 * (cornerContribution(g0, x0, y0) +
		cornerContribution(g1, x1, y1) +
		cornerContribution(g2, x2, y2))
}

// cornerContribution - вклад одной вершины симплекса с радиальным затуханием.
func cornerContribution(gi int, x, y float64) float64 {
	t := 0.5 - x*x - y*y
	if t < 0 {
		return 0
	}
	t *= t
	return t * t * (grad3[gi][0]*x + grad3[gi][1]*y)
}

// Octave - фрактальный (fBm) шум: сумма выборок на удваивающихся частотах
// с геометрически затухающей амплитудой, нормированная на суммарную амплитуду.
func (f *NoiseField) Octave(x, y float64, octaves int, persistence float64) float64 {
	total := 0.0
	frequency := 1.0
	amplitude := 1.0
	maxAmplitude := 0.0

	for i := 0; i < octaves; i++ {
		total += f.Sample2D(x*frequency, y*frequency) * amplitude
		maxAmplitude += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	if maxAmplitude == 0 {
		// octaves <= 0: отдаем одиночную выборку, а не NaN
		return f.Sample2D(x, y)
	}
	return total / maxAmplitude
}

// Ridged - каждая октава считается как (1-|n|)^2: резкие гребни-максимумы.
// Используется для горного рельефа.
func (f *NoiseField) Ridged(x, y float64, octaves int, persistence float64) float64 {
	total := 0.0
	frequency := 1.0
	amplitude := 1.0
	maxAmplitude := 0.0

	for i := 0; i < octaves; i++ {
		r := 1 - math.Abs(f.Sample2D(x*frequency, y*frequency))
		total += r * r * amplitude
		maxAmplitude += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	if maxAmplitude == 0 {
		r := 1 - math.Abs(f.Sample2D(x, y))
		return r * r
	}
	return total / maxAmplitude
}

// Billow - каждая октава как |n|: округлые, облачные бугры.
// Текущим конвейером биомов не используется, но поддерживается.
func (f *NoiseField) Billow(x, y float64, octaves int, persistence float64) float64 {
	total := 0.0
	frequency := 1.0
	amplitude := 1.0
	maxAmplitude := 0.0

	for i := 0; i < octaves; i++ {
		total += math.Abs(f.Sample2D(x*frequency, y*frequency)) * amplitude
		maxAmplitude += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	if maxAmplitude == 0 {
		return math.Abs(f.Sample2D(x, y))
	}
	return total / maxAmplitude
}
