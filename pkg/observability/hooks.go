package observability

import (
	"log/slog"

	"github.com/aretw0/penrose/pkg/domain"
)

// Combine fans every event out to each hook set in order. Nil callbacks are skipped.
func Combine(hooks ...domain.LifecycleHooks) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnPass: func(e *domain.PassEvent) {
			for _, h := range hooks {
				if h.OnPass != nil {
					h.OnPass(e)
				}
			}
		},
		OnComplete: func(e *domain.CompleteEvent) {
			for _, h := range hooks {
				if h.OnComplete != nil {
					h.OnComplete(e)
				}
			}
		},
	}
}

// LogHooks logs every pass and the outcome of each generation at debug level.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnPass: func(e *domain.PassEvent) {
			logger.Debug("Rewrite Pass", "tiling", e.Tiling, "pass", e.Pass, "length", e.Length)
		},
		OnComplete: func(e *domain.CompleteEvent) {
			if e.Err != nil {
				logger.Debug("Generation Failed", "tiling", e.Tiling, "depth", e.Depth, "err", e.Err)
				return
			}
			logger.Debug("Generation Complete",
				"tiling", e.Tiling,
				"depth", e.Depth,
				"segments", e.Segments,
				"duration", e.Duration,
			)
		},
	}
}
