package reports

import (
	"math"
	"strings"
	"time"
)

// Draft es el reporte mientras se completa el formulario: sin id, sin owner, sin createdAt.
type Draft struct {
	Attributes

	// Preview local de la foto (data URL). Nunca se persiste.
	Photo Photo
}

// NewDraft crea un draft vacío con la fecha por defecto = hoy.
func NewDraft(status Status, today time.Time) Draft {
	return Draft{
		Attributes: Attributes{
			Status: status,
			Date:   today.Format(DateLayout),
		},
	}
}

// Validate es el gate del formulario (equivalente a los "required" nativos).
// Si devuelve error, el pipeline no se invoca.
func (d Draft) Validate() error {
	if _, ok := ParseStatus(string(d.Status)); !ok {
		return ErrInvalidStatus
	}
	if _, ok := ParseGender(string(d.Gender)); !ok {
		return ErrInvalidGender
	}

	required := []struct {
		field string
		value string
	}{
		{"species", d.Species},
		{"color", d.Color},
		{"date", d.Date},
		{"location", d.Location},
		{"contactName", d.ContactName},
		{"contactPhone", d.ContactPhone},
		{"contactEmail", d.ContactEmail},
	}

	var missing []string
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.field)
		}
	}
	if len(missing) > 0 {
		return &MissingFieldsError{Fields: missing}
	}

	if d.ParsedDate().IsZero() {
		return ErrInvalidDate
	}
	if c := d.Coordinates; c != nil && (!inPlane(c.Lat) || !inPlane(c.Lng)) {
		return ErrInvalidCoordinates
	}
	return nil
}

// NaN no cumple ninguna comparación, así que también queda afuera.
func inPlane(v float64) bool {
	return v >= 0 && v <= 100 && !math.IsInf(v, 0)
}
