package form

import (
	"net/url"
	"sort"
	"strings"
)

const (
	envVarFieldPrefix = "envVars["
	envVarFieldSuffix = "]"
)

// EnvVarPair is one environment variable parsed from the settings form.
type EnvVarPair struct {
	Name  string
	Value string
}

// Reshaped is the result of splitting a flat settings form into scalar
// fields and the environment variable collection.
type Reshaped struct {
	Scalars map[string]string
	EnvVars []EnvVarPair
}

// FieldError describes a single invalid form field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Reshape splits a flat form into scalar fields and environment variables.
//
// Keys of the form "envVars[NAME]" are collected into the EnvVars list with
// the wrapper stripped; every other key is passed through as a scalar. When a
// key was submitted more than once the last submitted value wins — current
// behavior carried over from the form contract, kept deliberately. Keys that
// start the bracket wrapper but do not close it, or that carry an empty name,
// are reported as field errors instead of being guessed at.
//
// The returned EnvVars are sorted by name so the result is deterministic;
// callers must not rely on submission order.
func Reshape(values url.Values) (*Reshaped, []FieldError) {
	scalars := make(map[string]string)
	envVars := make(map[string]string)
	var errs []FieldError

	for key, vals := range values {
		if len(vals) == 0 {
			continue
		}
		// Last submitted value wins for duplicate keys
		val := vals[len(vals)-1]

		if !strings.HasPrefix(key, envVarFieldPrefix) {
			scalars[key] = val
			continue
		}

		name, ok := strings.CutSuffix(strings.TrimPrefix(key, envVarFieldPrefix), envVarFieldSuffix)
		if !ok || name == "" {
			errs = append(errs, FieldError{
				Field:   key,
				Message: "malformed environment variable field",
			})
			continue
		}

		envVars[name] = val
	}

	if len(errs) > 0 {
		return nil, errs
	}

	names := make([]string, 0, len(envVars))
	for name := range envVars {
		names = append(names, name)
	}
	sort.Strings(names)

	pairs := make([]EnvVarPair, len(names))
	for i, name := range names {
		pairs[i] = EnvVarPair{Name: name, Value: envVars[name]}
	}

	return &Reshaped{Scalars: scalars, EnvVars: pairs}, nil
}
