package proximity

import (
	"math/rand/v2"
	"time"

	"pet-lost-found/internal/domain/reports"
)

// Marker es un pin del mapa simulado.
type Marker struct {
	Name     string
	Status   reports.Status
	Species  string
	Breed    string
	Color    string
	Location string
	Photo    string
	Date     string
	Point    Point
	Subject  bool // el reporte propio (icono "home")
}

// decoys son los reportes de ejemplo que se muestran alrededor del reporte.
var decoys = []Marker{
	{
		Name:     "Friendly Golden Retriever",
		Status:   reports.StatusFound,
		Species:  "Dog",
		Breed:    "Golden Retriever",
		Color:    "Golden",
		Location: "Near park",
		Photo:    "https://via.placeholder.com/150/f0e68c/808080?Text=Found+Dog",
	},
	{
		Name:     "Small Tabby Cat",
		Status:   reports.StatusFound,
		Species:  "Cat",
		Breed:    "Tabby",
		Color:    "Grey and black",
		Location: "Downtown area",
		Photo:    "https://via.placeholder.com/150/d3d3d3/808080?Text=Found+Cat",
	},
}

// Map es el estado del panel: marcadores + selección (solo sesión).
type Map struct {
	Markers  []Marker
	Selected int // -1 = ninguno
}

// Options permite cambiar el radio; la cantidad de decoys es fija.
type Options struct {
	Radius float64
	Now    time.Time
}

// NewMap arma el mapa del reporte: primero el sujeto, después los decoys.
func NewMap(rep reports.Report, rng *rand.Rand, opts Options) Map {
	radius := opts.Radius
	if radius <= 0 {
		radius = DefaultRadius
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	center := DefaultCenter
	if rep.Coordinates != nil {
		center = Point{Lat: Clamp(rep.Coordinates.Lat), Lng: Clamp(rep.Coordinates.Lng)}
	}

	name := rep.Name
	if name == "" {
		name = "Unknown Pet"
	}
	markers := []Marker{{
		Name:     name,
		Status:   rep.Status,
		Species:  rep.Species,
		Breed:    rep.Breed,
		Color:    rep.Color,
		Location: rep.Location,
		Photo:    rep.Photo.Src(),
		Date:     rep.Date,
		Point:    center,
		Subject:  true,
	}}

	points := Nearby(center, len(decoys), radius, rng)
	for i, p := range points {
		m := decoys[i]
		m.Point = p
		m.Date = now.Format(reports.DateLayout)
		markers = append(markers, m)
	}

	return Map{Markers: markers, Selected: -1}
}

// Select muestra el popup de un marcador. Índices fuera de rango limpian la selección.
func (m *Map) Select(i int) {
	if i < 0 || i >= len(m.Markers) {
		m.Selected = -1
		return
	}
	m.Selected = i
}

// Clear es el click en el fondo del panel.
func (m *Map) Clear() { m.Selected = -1 }

// Popup devuelve el marcador seleccionado, si hay.
func (m Map) Popup() (Marker, bool) {
	if m.Selected < 0 || m.Selected >= len(m.Markers) {
		return Marker{}, false
	}
	return m.Markers[m.Selected], true
}
