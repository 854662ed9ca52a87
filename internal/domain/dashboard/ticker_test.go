package dashboard

import (
	"context"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestTicker_MessageAt_WrapsIndefinitely(t *testing.T) {
	tk := NewTicker(5 * time.Second)

	if got := tk.MessageAt(0); got != StatusMessages[0] {
		t.Fatalf("expected first message at 0, got %q", got)
	}
	if got := tk.MessageAt(4999 * time.Millisecond); got != StatusMessages[0] {
		t.Fatalf("expected first message before interval, got %q", got)
	}
	if got := tk.MessageAt(5 * time.Second); got != StatusMessages[1] {
		t.Fatalf("expected second message, got %q", got)
	}
	n := time.Duration(len(StatusMessages))
	if got := tk.MessageAt(n * 5 * time.Second); got != StatusMessages[0] {
		t.Fatalf("expected wrap to first message, got %q", got)
	}
	if got := tk.MessageAt(1000*n*5*time.Second + 12*time.Second); got != StatusMessages[2] {
		t.Fatalf("expected third message after many cycles, got %q", got)
	}
}

func TestTicker_Run_EmitsInOrderAndStops(t *testing.T) {
	tk := NewTicker(time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())

	ch := tk.Run(ctx)
	for i := 0; i < len(StatusMessages)+2; i++ {
		want := StatusMessages[i%len(StatusMessages)]
		if got := <-ch; got != want {
			cancel()
			t.Fatalf("tick %d: expected %q, got %q", i, want, got)
		}
	}

	cancel()
	for range ch {
		// drenar hasta que cierre
	}
}

func TestTicker_RunFrom_ResumesAtElapsedMessage(t *testing.T) {
	tk := NewTicker(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := tk.RunFrom(ctx, 3*time.Hour+time.Minute)
	if got := <-ch; got != StatusMessages[3] {
		t.Fatalf("expected fourth message, got %q", got)
	}

	cancel()
	for range ch {
	}
}

func TestTicker_Run_ClosesWhenContextAlreadyDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ch := NewTicker(time.Hour).Run(ctx)
	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatalf("channel not closed after cancel")
		}
	}
}
