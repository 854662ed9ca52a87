package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pet-lost-found/internal/domain/reports"
	"pet-lost-found/internal/ports/textgen"
)

// GenerationError: falló la llamada al generador (red, cuota, respuesta vacía/malformada).
// El caller debe dejar la descripción existente intacta.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generate description: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

var errEmptyResponse = errors.New("empty response")

// Attributes es la proyección del draft que se usa para generar la descripción.
type Attributes struct {
	Status         reports.Status
	Name           string
	Species        string
	Breed          string
	Color          string
	Age            string
	Gender         reports.Gender
	IsMicrochipped bool
	Location       string
	Date           string
	Description    string
}

// FromDraft arma los Attributes desde un draft del formulario.
func FromDraft(d reports.Draft) Attributes {
	return Attributes{
		Status:         d.Status,
		Name:           d.Name,
		Species:        d.Species,
		Breed:          d.Breed,
		Color:          d.Color,
		Age:            d.Age,
		Gender:         d.Gender,
		IsMicrochipped: d.IsMicrochipped,
		Location:       d.Location,
		Date:           d.Date,
		Description:    d.Description,
	}
}

// Assistant genera el texto de la descripción.
type Assistant interface {
	GenerateDescription(ctx context.Context, in Attributes) (string, error)
	IsRemote() bool
}

// New elige la estrategia una sola vez: remota si hay generador, local si no.
func New(gen textgen.Generator) Assistant {
	if gen == nil {
		return Local{}
	}
	return &Remote{gen: gen}
}

// Remote usa el servicio externo de generación de texto.
type Remote struct {
	gen textgen.Generator
}

func NewRemote(gen textgen.Generator) *Remote { return &Remote{gen: gen} }

func (r *Remote) IsRemote() bool { return true }

func (r *Remote) GenerateDescription(ctx context.Context, in Attributes) (string, error) {
	out, err := r.gen.Generate(ctx, BuildPrompt(in))
	if err != nil {
		return "", &GenerationError{Err: err}
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", &GenerationError{Err: errEmptyResponse}
	}
	return out, nil
}

// Local es el fallback determinístico sin red.
type Local struct{}

func (Local) IsRemote() bool { return false }

func (Local) GenerateDescription(_ context.Context, in Attributes) (string, error) {
	return Fallback(in), nil
}

// Fallback: "This is a <gender> <color> <breed>. Last seen|Found near <location>."
// Los descriptores vacíos se omiten.
func Fallback(in Attributes) string {
	parts := make([]string, 0, 3)
	for _, s := range []string{string(in.Gender), in.Color, in.Breed} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		if sp := strings.TrimSpace(in.Species); sp != "" {
			parts = append(parts, sp)
		} else {
			parts = append(parts, "pet")
		}
	}

	seen := "Found"
	if in.Status == reports.StatusLost {
		seen = "Last seen"
	}

	return fmt.Sprintf("This is a %s. %s near %s.", strings.Join(parts, " "), seen, strings.TrimSpace(in.Location))
}
