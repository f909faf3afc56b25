package project

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// EnvironmentVariable represents a project environment variable
type EnvironmentVariable struct {
	id        EnvVarID
	projectID ProjectID
	key       EnvVarKey
	value     EnvVarValue
	createdAt time.Time
	updatedAt time.Time
}

// NewEnvironmentVariable creates a new environment variable
func NewEnvironmentVariable(projectID ProjectID, key, value string) (*EnvironmentVariable, error) {
	envKey, err := NewEnvVarKey(key)
	if err != nil {
		return nil, fmt.Errorf("invalid key: %w", err)
	}

	now := time.Now()
	return &EnvironmentVariable{
		id:        NewEnvVarID(),
		projectID: projectID,
		key:       envKey,
		value:     NewEnvVarValue(value),
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstituteEnvVar recreates an environment variable from persistence
func ReconstituteEnvVar(
	id string,
	projectID ProjectID,
	key, encryptedValue string,
	createdAt, updatedAt time.Time,
) (*EnvironmentVariable, error) {
	envID, err := ParseEnvVarID(id)
	if err != nil {
		return nil, fmt.Errorf("invalid env var ID: %w", err)
	}

	envKey, err := NewEnvVarKey(key)
	if err != nil {
		return nil, fmt.Errorf("invalid key: %w", err)
	}

	return &EnvironmentVariable{
		id:        envID,
		projectID: projectID,
		key:       envKey,
		value:     NewEnvVarValueFromEncrypted(encryptedValue),
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

// Getters

func (e *EnvironmentVariable) ID() EnvVarID {
	return e.id
}

func (e *EnvironmentVariable) ProjectID() ProjectID {
	return e.projectID
}

func (e *EnvironmentVariable) Key() EnvVarKey {
	return e.key
}

func (e *EnvironmentVariable) Value() EnvVarValue {
	return e.value
}

func (e *EnvironmentVariable) CreatedAt() time.Time {
	return e.createdAt
}

func (e *EnvironmentVariable) UpdatedAt() time.Time {
	return e.updatedAt
}

// EnvVarID is a value object for environment variable ID
type EnvVarID struct {
	value uuid.UUID
}

func NewEnvVarID() EnvVarID {
	return EnvVarID{value: uuid.New()}
}

func ParseEnvVarID(id string) (EnvVarID, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return EnvVarID{}, fmt.Errorf("invalid env var ID format: %w", err)
	}
	return EnvVarID{value: uid}, nil
}

func (id EnvVarID) String() string {
	return id.value.String()
}

func (id EnvVarID) UUID() uuid.UUID {
	return id.value
}

// EnvVarKey is a value object for environment variable key
type EnvVarKey struct {
	value string
}

func NewEnvVarKey(key string) (EnvVarKey, error) {
	key = strings.TrimSpace(key)

	if key == "" {
		return EnvVarKey{}, fmt.Errorf("environment variable key cannot be empty")
	}

	// Unix env var rules: starts with letter or underscore, rest alphanumeric or underscore
	if !isValidEnvVarKey(key) {
		return EnvVarKey{}, fmt.Errorf("invalid key format: must start with letter/underscore and contain only alphanumeric and underscores")
	}

	if len(key) > 255 {
		return EnvVarKey{}, fmt.Errorf("key too long (max 255 characters)")
	}

	return EnvVarKey{value: key}, nil
}

func (k EnvVarKey) String() string {
	return k.value
}

func (k EnvVarKey) Equals(other EnvVarKey) bool {
	return k.value == other.value
}

func isValidEnvVarKey(key string) bool {
	if len(key) == 0 {
		return false
	}

	first := rune(key[0])
	if !((first >= 'A' && first <= 'Z') || (first >= 'a' && first <= 'z') || first == '_') {
		return false
	}

	for _, c := range key {
		if !((c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '_') {
			return false
		}
	}

	return true
}

// EnvVarValue is a value object for environment variable value.
// Holds the encrypted value; the application service encrypts before storage.
type EnvVarValue struct {
	encryptedValue string
}

func NewEnvVarValue(plaintext string) EnvVarValue {
	return EnvVarValue{encryptedValue: plaintext}
}

func NewEnvVarValueFromEncrypted(encrypted string) EnvVarValue {
	return EnvVarValue{encryptedValue: encrypted}
}

func (v EnvVarValue) EncryptedValue() string {
	return v.encryptedValue
}

// Masked returns a masked version of the value for display.
// Example: "my_secret_value" -> "m*******e"
func (v EnvVarValue) Masked() string {
	if v.encryptedValue == "" {
		return ""
	}

	if len(v.encryptedValue) <= 2 {
		return "***"
	}

	first := string(v.encryptedValue[0])
	last := string(v.encryptedValue[len(v.encryptedValue)-1])

	return fmt.Sprintf("%s*******%s", first, last)
}

// IsEmpty checks if value is empty
func (v EnvVarValue) IsEmpty() bool {
	return v.encryptedValue == ""
}
