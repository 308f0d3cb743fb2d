package observability

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/aretw0/penrose/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestCombine(t *testing.T) {
	var order []string
	first := domain.LifecycleHooks{
		OnPass:     func(*domain.PassEvent) { order = append(order, "first.pass") },
		OnComplete: func(*domain.CompleteEvent) { order = append(order, "first.complete") },
	}
	onlyComplete := domain.LifecycleHooks{
		OnComplete: func(*domain.CompleteEvent) { order = append(order, "second.complete") },
	}

	hooks := Combine(first, onlyComplete, domain.LifecycleHooks{})
	hooks.OnPass(&domain.PassEvent{Pass: 1})
	hooks.OnComplete(&domain.CompleteEvent{})

	assert.Equal(t, []string{"first.pass", "first.complete", "second.complete"}, order)
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	hooks := LogHooks(logger)

	hooks.OnPass(&domain.PassEvent{Tiling: "penrose-p3", Pass: 2, Length: 113})
	hooks.OnComplete(&domain.CompleteEvent{Tiling: "penrose-p3", Depth: 3, Segments: 90})
	hooks.OnComplete(&domain.CompleteEvent{Tiling: "penrose-p3", Depth: 9, Err: errors.New("boom")})

	out := buf.String()
	assert.Contains(t, out, "pass=2 length=113")
	assert.Contains(t, out, "segments=90")
	assert.Contains(t, out, "Generation Failed")
	assert.Contains(t, out, "err=boom")
}
