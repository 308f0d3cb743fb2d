package lsystem_test

import (
	"errors"
	"testing"

	"github.com/aretw0/penrose/internal/lsystem"
	"github.com/aretw0/penrose/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpand_SinglePass(t *testing.T) {
	out, err := lsystem.Expand(domain.PenroseSeed(), 1, domain.PenroseRules())
	require.NoError(t, err)

	want := "[+81--91[---61--71]+]++[+81--91[---61--71]+]++[+81--91[---61--71]+]++[+81--91[---61--71]+]++[+81--91[---61--71]+]"
	assert.Equal(t, want, out.String())
}

func TestExpand_ForwardIsErasedByPenroseTable(t *testing.T) {
	// Forward moves from pass 1 must not survive into pass 2.
	once, err := lsystem.Expand(domain.PenroseSeed(), 1, domain.PenroseRules())
	require.NoError(t, err)
	twice, err := lsystem.Expand(domain.PenroseSeed(), 2, domain.PenroseRules())
	require.NoError(t, err)

	assert.Equal(t, once.Count(domain.A)+once.Count(domain.B)+once.Count(domain.C)+once.Count(domain.D), 20)
	assert.Equal(t, 90, twice.Count(domain.Forward))
}

func TestExpand_ForwardWithoutRuleIsCopied(t *testing.T) {
	rules := domain.ProductionTable{domain.A: domain.MustParseSequence("1+6")}
	out, err := lsystem.Expand(domain.MustParseSequence("16"), 2, rules)
	require.NoError(t, err)
	assert.Equal(t, "11+1+6", out.String())
}

func TestExpand_Deterministic(t *testing.T) {
	a, err := lsystem.Expand(domain.PenroseSeed(), 4, domain.PenroseRules())
	require.NoError(t, err)
	b, err := lsystem.Expand(domain.PenroseSeed(), 4, domain.PenroseRules())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestExpand_DoesNotMutateInputs(t *testing.T) {
	seed := domain.PenroseSeed()
	rules := domain.PenroseRules()
	_, err := lsystem.Expand(seed, 3, rules)
	require.NoError(t, err)
	assert.Equal(t, domain.PenroseSeed(), seed)
	assert.Equal(t, domain.PenroseRules(), rules)
}

func TestExpand_InvalidPasses(t *testing.T) {
	for _, passes := range []int{0, -1} {
		_, err := lsystem.Expand(domain.PenroseSeed(), passes, domain.PenroseRules())
		assert.ErrorIs(t, err, domain.ErrInvalidDepth, "passes=%d", passes)
	}
}

func TestExpand_MissingRuleFailsFast(t *testing.T) {
	rules := domain.PenroseRules()
	delete(rules, domain.A)

	// Seed only references B; B's body references A, so pass 2 must fail.
	_, err := lsystem.Expand(domain.PenroseSeed(), 1, rules)
	require.NoError(t, err)

	_, err = lsystem.Expand(domain.PenroseSeed(), 2, rules)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMalformedRule)

	var symErr *domain.SymbolError
	require.True(t, errors.As(err, &symErr))
	assert.Equal(t, domain.A, symErr.Symbol)
	assert.Equal(t, "expand", symErr.Op)
	assert.GreaterOrEqual(t, symErr.Pos, 0)
}

func TestExpand_ObserversSeeEveryPass(t *testing.T) {
	var lengths []int
	_, err := lsystem.Expand(domain.PenroseSeed(), 3, domain.PenroseRules(), func(pass int, out domain.Sequence) {
		assert.Equal(t, len(lengths)+1, pass)
		lengths = append(lengths, len(out))
	})
	require.NoError(t, err)
	assert.Equal(t, []int{113, 513, 2283}, lengths)
}

func TestEraseNonTerminals(t *testing.T) {
	out, err := lsystem.Expand(domain.PenroseSeed(), 1, domain.PenroseRules())
	require.NoError(t, err)

	erased := lsystem.EraseNonTerminals(out)
	assert.Equal(t, "[+1--1[---1--1]+]++[+1--1[---1--1]+]++[+1--1[---1--1]+]++[+1--1[---1--1]+]++[+1--1[---1--1]+]", erased.String())
	assert.Equal(t, out.Count(domain.Forward), erased.Count(domain.Forward))
	assert.Len(t, out, 113, "input left untouched")
}
