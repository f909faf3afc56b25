package form_test

import (
	"net/url"
	"testing"

	"launchpad-core/internal/application/form"
)

func TestReshapeNoEnvVars(t *testing.T) {
	values := url.Values{
		"action":       {"save"},
		"branch":       {"main"},
		"startCommand": {"npm start"},
	}

	reshaped, errs := form.Reshape(values)
	if len(errs) != 0 {
		t.Fatalf("Reshape() returned errors: %v", errs)
	}

	if len(reshaped.EnvVars) != 0 {
		t.Errorf("EnvVars = %v, want empty", reshaped.EnvVars)
	}

	for key, want := range map[string]string{"action": "save", "branch": "main", "startCommand": "npm start"} {
		if got := reshaped.Scalars[key]; got != want {
			t.Errorf("Scalars[%q] = %q, want %q", key, got, want)
		}
	}
}

func TestReshapeCollectsEnvVars(t *testing.T) {
	// Two submissions with keys in different order produce the same result
	inputs := []url.Values{
		{"envVars[A]": {"x"}, "envVars[B]": {"y"}, "branch": {"main"}},
		{"envVars[B]": {"y"}, "branch": {"main"}, "envVars[A]": {"x"}},
	}

	for _, values := range inputs {
		reshaped, errs := form.Reshape(values)
		if len(errs) != 0 {
			t.Fatalf("Reshape() returned errors: %v", errs)
		}

		if len(reshaped.EnvVars) != 2 {
			t.Fatalf("len(EnvVars) = %d, want 2", len(reshaped.EnvVars))
		}

		want := []form.EnvVarPair{{Name: "A", Value: "x"}, {Name: "B", Value: "y"}}
		for i, pair := range want {
			if reshaped.EnvVars[i] != pair {
				t.Errorf("EnvVars[%d] = %v, want %v", i, reshaped.EnvVars[i], pair)
			}
		}

		if _, ok := reshaped.Scalars["envVars[A]"]; ok {
			t.Error("bracket key leaked into scalars")
		}
		if reshaped.Scalars["branch"] != "main" {
			t.Errorf("Scalars[branch] = %q, want main", reshaped.Scalars["branch"])
		}
	}
}

// Duplicate submissions of the same key keep the last value. This documents
// current behavior; callers that want rejection must validate upstream.
func TestReshapeDuplicateKeyLastWins(t *testing.T) {
	values := url.Values{
		"envVars[A]": {"first", "second", "third"},
		"branch":     {"old", "new"},
	}

	reshaped, errs := form.Reshape(values)
	if len(errs) != 0 {
		t.Fatalf("Reshape() returned errors: %v", errs)
	}

	if len(reshaped.EnvVars) != 1 || reshaped.EnvVars[0] != (form.EnvVarPair{Name: "A", Value: "third"}) {
		t.Errorf("EnvVars = %v, want [{A third}]", reshaped.EnvVars)
	}

	if reshaped.Scalars["branch"] != "new" {
		t.Errorf("Scalars[branch] = %q, want new", reshaped.Scalars["branch"])
	}
}

func TestReshapeMalformedKeys(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{"missing closing bracket", "envVars[FOO"},
		{"empty name", "envVars[]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reshaped, errs := form.Reshape(url.Values{tt.key: {"v"}})
			if reshaped != nil {
				t.Fatalf("Reshape() = %v, want nil on malformed key", reshaped)
			}
			if len(errs) != 1 {
				t.Fatalf("len(errs) = %d, want 1", len(errs))
			}
			if errs[0].Field != tt.key {
				t.Errorf("errs[0].Field = %q, want %q", errs[0].Field, tt.key)
			}
		})
	}
}
