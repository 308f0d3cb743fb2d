package schema

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Type defines the contract for field validation.
type Type interface {
	// Name returns the human-readable name of the type (e.g., "int", "float>=0").
	Name() string
	// Validate checks if a value conforms to this type.
	Validate(value any) error
}

// --- Built-in Type Implementations ---

// IntType validates integers, optionally bounded.
type IntType struct {
	Min, Max       int
	HasMin, HasMax bool
}

func (t *IntType) Name() string {
	switch {
	case t.HasMin && t.HasMax:
		return fmt.Sprintf("int[%d..%d]", t.Min, t.Max)
	case t.HasMin:
		return fmt.Sprintf("int>=%d", t.Min)
	case t.HasMax:
		return fmt.Sprintf("int<=%d", t.Max)
	}
	return "int"
}

func (t *IntType) Validate(value any) error {
	n, err := toInt(value)
	if err != nil {
		return err
	}
	if t.HasMin && n < t.Min {
		return fmt.Errorf("must be at least %d", t.Min)
	}
	if t.HasMax && n > t.Max {
		return fmt.Errorf("must be at most %d", t.Max)
	}
	return nil
}

// FloatType validates finite floating-point values, optionally bounded below.
type FloatType struct {
	Min    float64
	HasMin bool
}

func (t *FloatType) Name() string {
	if t.HasMin {
		return fmt.Sprintf("float>=%v", t.Min)
	}
	return "float"
}

func (t *FloatType) Validate(value any) error {
	f, err := toFloat(value)
	if err != nil {
		return err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("must be finite")
	}
	if t.HasMin && f < t.Min {
		return fmt.Errorf("must be at least %v", t.Min)
	}
	return nil
}

// EnumType validates a string against a closed set of values.
type EnumType struct {
	Values []string
}

func (t *EnumType) Name() string {
	return "enum(" + strings.Join(t.Values, "|") + ")"
}

func (t *EnumType) Validate(value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected string, got %T", value)
	}
	for _, v := range t.Values {
		if v == s {
			return nil
		}
	}
	if best := Suggest(s, t.Values); best != "" {
		return fmt.Errorf("value %q is not one of %v, did you mean %q?", s, t.Values, best)
	}
	return fmt.Errorf("value %q is not one of %v", s, t.Values)
}

// CustomType applies a user-defined validation function.
type CustomType struct {
	name     string
	validate func(any) error
}

func (t *CustomType) Name() string { return t.name }

func (t *CustomType) Validate(value any) error {
	return t.validate(value)
}

// sentinelType tags failures of an inner type with a sentinel error.
type sentinelType struct {
	Type
	err error
}

func (t *sentinelType) Validate(value any) error {
	if err := t.Type.Validate(value); err != nil {
		return fmt.Errorf("%w: %v", t.err, err)
	}
	return nil
}

// --- Factory Functions ---

// Int creates an unbounded integer validator.
func Int() Type { return &IntType{} }

// IntAtLeast creates an integer validator with a lower bound.
func IntAtLeast(min int) Type { return &IntType{Min: min, HasMin: true} }

// IntBetween creates an integer validator with inclusive bounds.
func IntBetween(min, max int) Type {
	return &IntType{Min: min, Max: max, HasMin: true, HasMax: true}
}

// Float creates a finite float validator.
func Float() Type { return &FloatType{} }

// FloatAtLeast creates a finite float validator with a lower bound.
func FloatAtLeast(min float64) Type { return &FloatType{Min: min, HasMin: true} }

// Enum creates a closed-set string validator.
func Enum(values ...string) Type { return &EnumType{Values: values} }

// Custom creates a custom type validator with a user-defined function.
func Custom(name string, validate func(any) error) Type {
	return &CustomType{name: name, validate: validate}
}

// WithSentinel makes every failure of t wrap sentinel.
func WithSentinel(t Type, sentinel error) Type {
	return &sentinelType{Type: t, err: sentinel}
}

// Suggest returns the candidate closest to s by edit distance, or "" when
// nothing is within half the length of s (rounded up).
func Suggest(s string, candidates []string) string {
	best, bestDist := "", -1
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(strings.ToLower(s), strings.ToLower(c))
		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	if bestDist < 0 || bestDist > (len(s)+1)/2 {
		return ""
	}
	return best
}

func toInt(value any) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int8:
		return int(v), nil
	case int16:
		return int(v), nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case float64:
		// Accept floats that are whole numbers (from JSON unmarshaling)
		if v == math.Trunc(v) && !math.IsInf(v, 0) {
			return int(v), nil
		}
		return 0, fmt.Errorf("expected int, got float (not a whole number)")
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("expected int, got %q", v)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("expected int, got %T", value)
	}
}

func toFloat(value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int, int8, int16, int32, int64:
		n, _ := toInt(v)
		return float64(n), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("expected float, got %q", v)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("expected float, got %T", value)
	}
}
