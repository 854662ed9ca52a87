package reports

import (
	"strings"
	"time"
)

// Collection es el nombre de la colección en el document store.
const Collection = "pets"

// DateLayout es el formato de fecha del formulario (input type=date).
const DateLayout = "2006-01-02"

// Status clasifica el reporte. Se fija al crear y no cambia.
// @Enum Lost, Found
type Status string

const (
	StatusLost  Status = "Lost"
	StatusFound Status = "Found"
)

func ParseStatus(s string) (Status, bool) {
	switch Status(strings.TrimSpace(s)) {
	case StatusLost:
		return StatusLost, true
	case StatusFound:
		return StatusFound, true
	default:
		return "", false
	}
}

// Gender: Male, Female, Unknown o vacío (sin seleccionar).
type Gender string

const (
	GenderUnset   Gender = ""
	GenderMale    Gender = "Male"
	GenderFemale  Gender = "Female"
	GenderUnknown Gender = "Unknown"
)

func ParseGender(s string) (Gender, bool) {
	switch Gender(strings.TrimSpace(s)) {
	case GenderUnset:
		return GenderUnset, true
	case GenderMale:
		return GenderMale, true
	case GenderFemale:
		return GenderFemale, true
	case GenderUnknown:
		return GenderUnknown, true
	default:
		return "", false
	}
}

// Coordinates en el plano normalizado [0,100].
type Coordinates struct {
	Lat float64 `json:"lat" dynamodbav:"lat"`
	Lng float64 `json:"lng" dynamodbav:"lng"`
}

// Attributes son los campos que el usuario completa en el formulario.
// Se comparten entre Draft, Record y Report.
type Attributes struct {
	Status         Status `json:"status" dynamodbav:"status"`
	Name           string `json:"name" dynamodbav:"name"`
	Species        string `json:"species" dynamodbav:"species"`
	Breed          string `json:"breed" dynamodbav:"breed"`
	Color          string `json:"color" dynamodbav:"color"`
	Age            string `json:"age" dynamodbav:"age"`
	Gender         Gender `json:"gender" dynamodbav:"gender"`
	IsMicrochipped bool   `json:"isMicrochipped" dynamodbav:"isMicrochipped"`

	Date     string `json:"date" dynamodbav:"date"` // YYYY-MM-DD
	Location string `json:"location" dynamodbav:"location"`

	Description string `json:"description" dynamodbav:"description"`

	ContactName  string `json:"contactName" dynamodbav:"contactName"`
	ContactPhone string `json:"contactPhone" dynamodbav:"contactPhone"`
	ContactEmail string `json:"contactEmail" dynamodbav:"contactEmail"`

	Coordinates *Coordinates `json:"coordinates,omitempty" dynamodbav:"coordinates,omitempty"`
}

// Record es el documento que se persiste.
// Photo solo puede ser la URL durable devuelta por el object store (o nil).
type Record struct {
	Attributes

	Photo     *string   `json:"photo" dynamodbav:"photo"`
	UserID    string    `json:"userId" dynamodbav:"userId"`
	CreatedAt time.Time `json:"createdAt" dynamodbav:"createdAt"`
}

// Report es el view-model de un reporte ya persistido (lo que muestra el dashboard).
type Report struct {
	Attributes

	ID        string
	UserID    string
	Photo     Photo
	CreatedAt time.Time
}

// ParsedDate devuelve la fecha del reporte; zero si no parsea.
func (a Attributes) ParsedDate() time.Time {
	t, err := time.Parse(DateLayout, strings.TrimSpace(a.Date))
	if err != nil {
		return time.Time{}
	}
	return t
}
