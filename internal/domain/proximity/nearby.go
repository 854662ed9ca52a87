// Package proximity simula reportes "cercanos" sobre un plano normalizado 0..100.
// Es ilustrativo: no es un índice geoespacial ni una búsqueda real.
package proximity

import (
	"math"
	"math/rand/v2"
)

const (
	PlaneMin = 0.0
	PlaneMax = 100.0

	DefaultRadius = 15.0
)

// Point en el plano normalizado (Lat = eje vertical, Lng = eje horizontal).
type Point struct {
	Lat float64
	Lng float64
}

// DefaultCenter se usa cuando el reporte no trae coordenadas.
var DefaultCenter = Point{Lat: 50, Lng: 50}

// Nearby genera count puntos con jitter uniforme en [c-radius, c+radius],
// redondeados a entero y recortados a [0,100] en ambos ejes.
func Nearby(center Point, count int, radius float64, rng *rand.Rand) []Point {
	if count <= 0 {
		return nil
	}
	radius = math.Abs(radius)

	out := make([]Point, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, Point{
			Lat: Clamp(math.Round(jitter(center.Lat, radius, rng))),
			Lng: Clamp(math.Round(jitter(center.Lng, radius, rng))),
		})
	}
	return out
}

func jitter(c, radius float64, rng *rand.Rand) float64 {
	return c - radius + rng.Float64()*2*radius
}

// Clamp recorta v a [0,100]. NaN cae al centro.
func Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return DefaultCenter.Lat
	}
	return math.Max(PlaneMin, math.Min(PlaneMax, v))
}

// NewRand crea un generador sembrado (tests usan semillas fijas).
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
