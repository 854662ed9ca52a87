package textgen

import "context"

// Generator es la capacidad opcional de generación de texto.
// Si no hay credencial configurada, no existe implementación (nil) y se usa el fallback local.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
