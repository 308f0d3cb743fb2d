package domain

import "time"

// PassEvent is emitted after each rewrite pass.
type PassEvent struct {
	Tiling string `json:"tiling"`
	Pass   int    `json:"pass"` // 1-based
	Length int    `json:"length"`
}

// CompleteEvent is emitted once a generation finishes, successfully or not.
type CompleteEvent struct {
	Tiling   string        `json:"tiling"`
	Depth    int           `json:"depth"`
	Passes   int           `json:"passes"`
	Segments int           `json:"segments"`
	Duration time.Duration `json:"duration"`
	Err      error         `json:"-"`
}

// LifecycleHooks defines callbacks for generator observability.
type LifecycleHooks struct {
	OnPass     func(*PassEvent)
	OnComplete func(*CompleteEvent)
}
