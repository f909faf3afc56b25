package form

import (
	"fmt"
	"reflect"
	"strings"

	"launchpad-core/internal/domain/project"

	"github.com/go-playground/validator/v10"
)

// Form field names as they appear in the settings form
const (
	FieldAutoDeploy   = "autoDeploy"
	FieldBranch       = "branch"
	FieldBuildCommand = "buildCommand"
	FieldStartCommand = "startCommand"
)

// SettingsForm carries the raw scalar fields of a settings submission
type SettingsForm struct {
	AutoDeploy   string `form:"autoDeploy" validate:"required,oneof=yes no"`
	Branch       string `form:"branch" validate:"required,max=255"`
	BuildCommand string `form:"buildCommand" validate:"omitempty,max=500"`
	StartCommand string `form:"startCommand" validate:"required,max=500"`
}

// SettingsPayload is the validated, normalized settings change
type SettingsPayload struct {
	Branch       string
	BuildCommand string
	StartCommand string
	AutoDeploy   bool
	EnvVars      []EnvVarPair
}

// Result is the outcome of validating a settings submission: exactly one of
// the payload or the error list is populated.
type Result struct {
	payload *SettingsPayload
	errors  []FieldError
}

// OK reports whether validation succeeded
func (r Result) OK() bool {
	return r.payload != nil
}

// Payload returns the validated payload; nil when validation failed
func (r Result) Payload() *SettingsPayload {
	return r.payload
}

// Errors returns the field errors; empty when validation succeeded
func (r Result) Errors() []FieldError {
	return r.errors
}

func invalid(errs []FieldError) Result {
	return Result{errors: errs}
}

func valid(payload *SettingsPayload) Result {
	return Result{payload: payload}
}

// SettingsValidator validates reshaped settings submissions
type SettingsValidator struct {
	validate *validator.Validate
}

// NewSettingsValidator creates a settings validator
func NewSettingsValidator() *SettingsValidator {
	v := validator.New()

	// Report errors under the form field name, not the Go struct field
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &SettingsValidator{validate: v}
}

// Validate checks the scalar fields and environment variables of a reshaped
// submission. Schema violations come back as field errors; no error or panic
// escapes for bad input.
func (sv *SettingsValidator) Validate(scalars map[string]string, envVars []EnvVarPair) Result {
	frm := SettingsForm{
		AutoDeploy:   scalars[FieldAutoDeploy],
		Branch:       scalars[FieldBranch],
		BuildCommand: scalars[FieldBuildCommand],
		StartCommand: scalars[FieldStartCommand],
	}

	var errs []FieldError

	if err := sv.validate.Struct(&frm); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			errs = append(errs, FieldError{Field: "form", Message: err.Error()})
		}
		for _, fe := range verrs {
			errs = append(errs, FieldError{Field: fe.Field(), Message: messageFor(fe)})
		}
	}

	// Branch charset is a domain rule, checked past the schema pass
	if frm.Branch != "" {
		if _, err := project.NewBranch(frm.Branch); err != nil {
			errs = append(errs, FieldError{Field: FieldBranch, Message: "is not a valid git branch name"})
		}
	}

	for _, pair := range envVars {
		if _, err := project.NewEnvVarKey(pair.Name); err != nil {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("envVars[%s]", pair.Name),
				Message: "is not a valid environment variable name",
			})
		}
	}

	if len(errs) > 0 {
		return invalid(errs)
	}

	return valid(&SettingsPayload{
		Branch:       frm.Branch,
		BuildCommand: frm.BuildCommand,
		StartCommand: frm.StartCommand,
		AutoDeploy:   frm.AutoDeploy == "yes",
		EnvVars:      envVars,
	})
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
