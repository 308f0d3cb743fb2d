// Package schema validates loosely typed parameters before they reach the generator.
//
// Adapters receive depth and step length as query strings, tool arguments or
// config values. A Schema maps field names to types; Validate reports every
// failing field at once. Types can be bound to a domain sentinel so callers keep
// using errors.Is:
//
//	err := schema.ValidateRequest(map[string]any{"depth": 1, "step_length": 2.0})
//	errors.Is(err, domain.ErrInvalidDepth) // true
//
// Enum types suggest the closest allowed value for typos:
//
//	schema.Enum("json", "yaml").Validate("jsn") // value "jsn" is not one of [json yaml], did you mean "json"?
package schema
