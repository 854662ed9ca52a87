package dashboard

import (
	"context"
	"time"
)

// DefaultTickInterval es cada cuánto rota el mensaje de estado.
const DefaultTickInterval = 5 * time.Second

// StatusMessages es la lista fija (y ordenada) del ticker. Puramente cosmético.
var StatusMessages = []string{
	"Initializing search protocols...",
	"Scanning local shelter databases...",
	"Checking social media feeds for keywords...",
	"Cross-referencing with found pet reports in your area...",
	"Analyzing image for potential matches...",
}

type Ticker struct {
	Messages []string
	Interval time.Duration
}

func NewTicker(interval time.Duration) Ticker {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return Ticker{Messages: StatusMessages, Interval: interval}
}

// MessageAt devuelve el mensaje visible después de elapsed. Da la vuelta indefinidamente.
func (t Ticker) MessageAt(elapsed time.Duration) string {
	if len(t.Messages) == 0 {
		return ""
	}
	if elapsed < 0 || t.Interval <= 0 {
		return t.Messages[0]
	}
	return t.Messages[int(elapsed/t.Interval)%len(t.Messages)]
}

// Run emite el mensaje actual y luego uno por intervalo hasta que ctx termina.
// El canal se cierra al salir.
func (t Ticker) Run(ctx context.Context) <-chan string {
	return t.RunFrom(ctx, 0)
}

// RunFrom es Run arrancando en el mensaje de MessageAt(elapsed), para que
// una reconexión siga la secuencia en vez de volver al primero.
func (t Ticker) RunFrom(ctx context.Context, elapsed time.Duration) <-chan string {
	out := make(chan string)
	go func() {
		defer close(out)
		if len(t.Messages) == 0 {
			return
		}

		tk := time.NewTicker(t.Interval)
		defer tk.Stop()

		i := 0
		if elapsed > 0 {
			i = int(elapsed/t.Interval) % len(t.Messages)
		}
		for {
			select {
			case out <- t.Messages[i]:
			case <-ctx.Done():
				return
			}
			select {
			case <-tk.C:
				i = (i + 1) % len(t.Messages)
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
