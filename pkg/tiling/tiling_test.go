package tiling_test

import (
	"path/filepath"
	"testing"

	"github.com/aretw0/penrose"
	"github.com/aretw0/penrose/pkg/domain"
	"github.com/aretw0/penrose/pkg/tiling"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile_AllFormats(t *testing.T) {
	for _, name := range []string{"spiral.yaml", "spiral.toml", "spiral.json"} {
		t.Run(name, func(t *testing.T) {
			got, err := tiling.LoadFile(filepath.Join("testdata", name))
			require.NoError(t, err)

			assert.Equal(t, "square-spiral", got.Name)
			assert.Equal(t, 90.0, got.Angle)
			assert.Equal(t, domain.Sequence{domain.A}, got.Seed)
			assert.Equal(t, "1+1+1+6", got.Rules[domain.A].String())
			assert.Equal(t, "1", got.Rules[domain.Forward].String())
		})
	}
}

func TestLoadFile_PenroseMatchesBuiltin(t *testing.T) {
	got, err := tiling.LoadFile(filepath.Join("testdata", "penrose.yaml"))
	require.NoError(t, err)
	assert.Equal(t, domain.PenroseTiling(), got)
}

func TestLoadFile_FeedsGenerator(t *testing.T) {
	def, err := tiling.LoadFile(filepath.Join("testdata", "spiral.yaml"))
	require.NoError(t, err)

	gen, err := penrose.New(penrose.WithTiling(def))
	require.NoError(t, err)

	segs, err := gen.Generate(3, 1)
	require.NoError(t, err)
	assert.Len(t, segs, 6)
}

func TestLoadFile_Errors(t *testing.T) {
	_, err := tiling.LoadFile(filepath.Join("testdata", "missing-rule.yaml"))
	assert.ErrorIs(t, err, domain.ErrMalformedRule)

	_, err = tiling.LoadFile(filepath.Join("testdata", "bad-symbol.yaml"))
	assert.ErrorIs(t, err, tiling.ErrInvalidDefinition)
	assert.Contains(t, err.Error(), "/rules/A")

	_, err = tiling.LoadFile(filepath.Join("testdata", "nope.yaml"))
	assert.Error(t, err)
}

func TestParse_SchemaViolations(t *testing.T) {
	cases := map[string]string{
		"missing seed":     `{"name":"x","rules":{"6":"1"}}`,
		"unknown field":    `{"name":"x","seed":"6","rules":{"6":"1"},"depth":3}`,
		"bad rule key":     `{"name":"x","seed":"6","rules":{"E":"1"}}`,
		"negative angle":   `{"name":"x","seed":"6","angle":-5,"rules":{"6":"1"}}`,
		"empty rule table": `{"name":"x","seed":"6","rules":{}}`,
		"non-string body":  `{"name":"x","seed":"6","rules":{"6":7}}`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := tiling.Parse([]byte(doc), tiling.FormatJSON)
			assert.ErrorIs(t, err, tiling.ErrInvalidDefinition)
		})
	}
}

func TestParse_NumericAngleAgainstSchema(t *testing.T) {
	got, err := tiling.Parse([]byte(`{"name":"x","seed":"6","angle":22.5,"rules":{"6":"1"}}`), tiling.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, 22.5, got.Angle)

	_, err = tiling.Parse([]byte("name: x\nseed: \"6\"\nangle: 360.0\nrules:\n  A: \"1\"\n"), tiling.FormatYAML)
	require.ErrorIs(t, err, tiling.ErrInvalidDefinition)
	assert.Contains(t, err.Error(), "/angle")
}

func TestParse_DuplicateSymbol(t *testing.T) {
	_, err := tiling.Parse([]byte(`{"name":"x","seed":"6","rules":{"6":"1","A":"1"}}`), tiling.FormatJSON)
	assert.ErrorIs(t, err, domain.ErrMalformedRule)
}

func TestParse_SyntaxError(t *testing.T) {
	_, err := tiling.Parse([]byte("name: [unterminated"), tiling.FormatYAML)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, tiling.ErrInvalidDefinition)
}

func TestEncode_RoundTrip(t *testing.T) {
	for _, format := range []tiling.Format{tiling.FormatYAML, tiling.FormatTOML, tiling.FormatJSON} {
		t.Run(string(format), func(t *testing.T) {
			data, err := tiling.Encode(domain.PenroseTiling(), format)
			require.NoError(t, err)

			got, err := tiling.Parse(data, format)
			require.NoError(t, err)
			assert.Equal(t, domain.PenroseTiling(), got)
		})
	}
}

func TestFormatOf(t *testing.T) {
	assert.Equal(t, tiling.FormatTOML, tiling.FormatOf("a/b.TOML"))
	assert.Equal(t, tiling.FormatJSON, tiling.FormatOf("x.json"))
	assert.Equal(t, tiling.FormatYAML, tiling.FormatOf("x.yml"))
	assert.Equal(t, tiling.FormatYAML, tiling.FormatOf("x"))
}
