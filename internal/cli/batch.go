package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/penrose/pkg/domain"
	"github.com/aretw0/penrose/pkg/memo"
	"golang.org/x/sync/errgroup"
)

// BatchItem reports one depth of a batch run.
type BatchItem struct {
	Depth    int           `json:"depth" yaml:"depth"`
	Segments int           `json:"segments" yaml:"segments"`
	Cached   bool          `json:"cached" yaml:"cached"`
	Path     string        `json:"path,omitempty" yaml:"path,omitempty"`
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// Batch generates several depths of one tiling concurrently.
type Batch struct {
	Memo     *memo.Memo
	Length   float64
	Workers  int
	Dir      string // when empty, results are generated but not written
	Format   string
	Compress bool
	Logger   *slog.Logger
}

// Run generates every depth, at most Workers at a time. The first failure
// cancels the remaining work. Items are returned in the order of depths.
func (b *Batch) Run(ctx context.Context, depths []int) ([]BatchItem, error) {
	if b.Dir != "" {
		if err := os.MkdirAll(b.Dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	logger := b.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	items := make([]BatchItem, len(depths))
	g, ctx := errgroup.WithContext(ctx)
	if b.Workers > 0 {
		g.SetLimit(b.Workers)
	}
	for i, depth := range depths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			req := domain.Request{Depth: depth, StepLength: b.Length}
			res, cached, err := b.Memo.Run(ctx, req)
			if err != nil {
				return fmt.Errorf("depth %d: %w", depth, err)
			}
			item := BatchItem{
				Depth:    depth,
				Segments: len(res.Segments),
				Cached:   cached,
			}
			if b.Dir != "" {
				item.Path = filepath.Join(b.Dir, fmt.Sprintf("%s-d%d%s", res.Tiling, depth, Extension(b.Format, b.Compress)))
				if err := b.write(item.Path, res); err != nil {
					return fmt.Errorf("depth %d: %w", depth, err)
				}
			}
			item.Duration = time.Since(start)
			items[i] = item
			logger.Info("Batch Item", "depth", depth, "segments", item.Segments, "cached", cached, "path", item.Path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return items, nil
}

func (b *Batch) write(path string, res *domain.Result) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	out, err := OpenOutput(f, b.Compress)
	if err != nil {
		return err
	}
	if err := WriteResult(out, res, b.Format); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// ParseDepths parses a comma separated list of depths and inclusive ranges,
// e.g. "2-4,6" yields [2 3 4 6].
func ParseDepths(s string) ([]int, error) {
	var depths []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lo, hi, isRange := strings.Cut(part, "-")
		from, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return nil, fmt.Errorf("invalid depth %q", part)
		}
		to := from
		if isRange {
			if to, err = strconv.Atoi(strings.TrimSpace(hi)); err != nil {
				return nil, fmt.Errorf("invalid depth range %q", part)
			}
			if to < from {
				return nil, fmt.Errorf("invalid depth range %q: end before start", part)
			}
		}
		for d := from; d <= to; d++ {
			depths = append(depths, d)
		}
	}
	if len(depths) == 0 {
		return nil, fmt.Errorf("no depths in %q", s)
	}
	return depths, nil
}
