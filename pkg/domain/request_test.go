package domain_test

import (
	"testing"

	"github.com/aretw0/penrose/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestRequest_Key(t *testing.T) {
	req := domain.Request{Depth: 4, StepLength: 10}
	assert.Equal(t, "penrose-p3/d4/p3/s10", req.Key(domain.PenroseName, 3))
	assert.NotEqual(t, req.Key(domain.PenroseName, 3), req.Key(domain.PenroseName, 4))

	frac := domain.Request{Depth: 2, StepLength: 0.25}
	assert.Equal(t, "penrose-p3/d2/p1/s0.25", frac.Key(domain.PenroseName, 1))
}
