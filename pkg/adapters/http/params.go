package http

import (
	"fmt"
	"net/url"

	"github.com/oapi-codegen/runtime"
)

const (
	DefaultDepth  = 4
	DefaultLength = 10.0
)

// GenerateParams are the query parameters of GET /generate.
type GenerateParams struct {
	Depth    *int
	Length   *float64
	Segments *bool
}

// StatsParams are the query parameters of GET /stats.
type StatsParams struct {
	Depth *int
}

// RulesParams are the query parameters of GET /rules.
type RulesParams struct {
	Format *string
}

func bindGenerateParams(q url.Values) (GenerateParams, error) {
	var p GenerateParams
	if err := runtime.BindQueryParameter("form", true, false, "depth", q, &p.Depth); err != nil {
		return p, fmt.Errorf("invalid format for parameter depth: %w", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "length", q, &p.Length); err != nil {
		return p, fmt.Errorf("invalid format for parameter length: %w", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "segments", q, &p.Segments); err != nil {
		return p, fmt.Errorf("invalid format for parameter segments: %w", err)
	}
	return p, nil
}

func bindStatsParams(q url.Values) (StatsParams, error) {
	var p StatsParams
	if err := runtime.BindQueryParameter("form", true, false, "depth", q, &p.Depth); err != nil {
		return p, fmt.Errorf("invalid format for parameter depth: %w", err)
	}
	return p, nil
}

func bindRulesParams(q url.Values) (RulesParams, error) {
	var p RulesParams
	if err := runtime.BindQueryParameter("form", true, false, "format", q, &p.Format); err != nil {
		return p, fmt.Errorf("invalid format for parameter format: %w", err)
	}
	return p, nil
}

func valueOr[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
