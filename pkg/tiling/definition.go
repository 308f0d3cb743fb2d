package tiling

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/penrose/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrInvalidDefinition is returned when a document does not match the tiling schema.
var ErrInvalidDefinition = errors.New("invalid tiling definition")

//go:embed schema.json
var schemaJSON string

const schemaURL = "https://github.com/aretw0/penrose/tiling.schema.json"

var (
	compiled    *jsonschema.Schema
	compileErr  error
	compileOnce sync.Once
)

// Schema returns the compiled JSON Schema for tiling definitions.
func Schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiled, compileErr = jsonschema.CompileString(schemaURL, schemaJSON)
	})
	return compiled, compileErr
}

// SchemaJSON returns the raw schema document.
func SchemaJSON() string {
	return schemaJSON
}

// Definition is the textual form of a tiling.
type Definition struct {
	Name        string            `json:"name" yaml:"name" toml:"name" mapstructure:"name"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty" mapstructure:"description"`
	Angle       float64           `json:"angle,omitempty" yaml:"angle,omitempty" toml:"angle,omitempty" mapstructure:"angle"`
	Seed        string            `json:"seed" yaml:"seed" toml:"seed" mapstructure:"seed"`
	Rules       map[string]string `json:"rules" yaml:"rules" toml:"rules" mapstructure:"rules"`
}

// Tiling compiles the definition into symbols and validates the rule table.
// A zero angle defaults to domain.PenroseAngle.
func (d Definition) Tiling() (domain.Tiling, error) {
	seed, err := domain.ParseSequence(d.Seed)
	if err != nil {
		return domain.Tiling{}, fmt.Errorf("seed: %w", err)
	}

	rules := make(domain.ProductionTable, len(d.Rules))
	for key, body := range d.Rules {
		sym, err := domain.ParseSymbol(key)
		if err != nil {
			return domain.Tiling{}, fmt.Errorf("rules: %w", err)
		}
		if _, dup := rules[sym]; dup {
			return domain.Tiling{}, fmt.Errorf("rules: %w: symbol %s defined twice", domain.ErrMalformedRule, sym.Name())
		}
		seq, err := domain.ParseSequence(body)
		if err != nil {
			return domain.Tiling{}, fmt.Errorf("rules[%s]: %w", key, err)
		}
		rules[sym] = seq
	}

	angle := d.Angle
	if angle == 0 {
		angle = domain.PenroseAngle
	}

	t := domain.Tiling{Name: d.Name, Seed: seed, Rules: rules, Angle: angle}
	if err := t.Validate(); err != nil {
		return domain.Tiling{}, fmt.Errorf("tiling %s: %w", d.Name, err)
	}
	return t, nil
}

// FromTiling renders a tiling back into its textual form, keyed by symbol name.
func FromTiling(t domain.Tiling) Definition {
	rules := make(map[string]string, len(t.Rules))
	for _, sym := range t.Rules.Symbols() {
		rules[sym.Name()] = t.Rules[sym].String()
	}
	return Definition{
		Name:  t.Name,
		Angle: t.Angle,
		Seed:  t.Seed.String(),
		Rules: rules,
	}
}

// FromMap validates a generic document against the schema and compiles it.
func FromMap(raw map[string]any) (domain.Tiling, error) {
	def, err := DecodeMap(raw)
	if err != nil {
		return domain.Tiling{}, err
	}
	return def.Tiling()
}

// DecodeMap validates a generic document against the schema and decodes it
// into a Definition without compiling the rules.
func DecodeMap(raw map[string]any) (Definition, error) {
	if err := validateSchema(raw); err != nil {
		return Definition{}, err
	}

	var def Definition
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &def,
		TagName:     "mapstructure",
		ErrorUnused: true,
	})
	if err != nil {
		return Definition{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return Definition{}, fmt.Errorf("%w: %w", ErrInvalidDefinition, err)
	}
	return def, nil
}

// validateSchema normalises decoder-specific value types through JSON
// before validating, so YAML and TOML documents see the same schema.
func validateSchema(raw map[string]any) error {
	s, err := Schema()
	if err != nil {
		return fmt.Errorf("compile tiling schema: %w", err)
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDefinition, err)
	}
	var doc any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDefinition, err)
	}

	if err := s.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return fmt.Errorf("%w: %s", ErrInvalidDefinition, describe(ve))
		}
		return fmt.Errorf("%w: %w", ErrInvalidDefinition, err)
	}
	return nil
}

// describe flattens the validation tree into "location: message" lines.
func describe(ve *jsonschema.ValidationError) string {
	var lines []string
	var walk func(*jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			loc := e.InstanceLocation
			if loc == "" {
				loc = "/"
			}
			lines = append(lines, loc+": "+e.Message)
			return
		}
		for _, c := range e.Causes {
			walk(c)
		}
	}
	walk(ve)
	sort.Strings(lines)

	var buf bytes.Buffer
	for i, l := range lines {
		if i > 0 {
			buf.WriteString("; ")
		}
		buf.WriteString(l)
	}
	return buf.String()
}

// Compile validates an already-decoded definition against the schema and compiles it.
func Compile(def Definition) (domain.Tiling, error) {
	data, err := json.Marshal(def)
	if err != nil {
		return domain.Tiling{}, fmt.Errorf("%w: %w", ErrInvalidDefinition, err)
	}
	raw := make(map[string]any)
	if err := json.Unmarshal(data, &raw); err != nil {
		return domain.Tiling{}, fmt.Errorf("%w: %w", ErrInvalidDefinition, err)
	}
	if err := validateSchema(raw); err != nil {
		return domain.Tiling{}, err
	}
	return def.Tiling()
}
