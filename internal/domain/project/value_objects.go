package project

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ProjectID is a value object for project ID
type ProjectID struct {
	value uuid.UUID
}

func NewProjectID() ProjectID {
	return ProjectID{value: uuid.New()}
}

func ParseProjectID(id string) (ProjectID, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return ProjectID{}, fmt.Errorf("invalid project ID format: %w", err)
	}
	return ProjectID{value: uid}, nil
}

func (id ProjectID) String() string {
	return id.value.String()
}

func (id ProjectID) UUID() uuid.UUID {
	return id.value
}

func (id ProjectID) Equals(other ProjectID) bool {
	return id.value == other.value
}

// Name is a value object for the project's display name
type Name struct {
	value string
}

func NewName(name string) (Name, error) {
	name = strings.TrimSpace(name)

	if name == "" {
		return Name{}, fmt.Errorf("project name cannot be empty")
	}

	if len(name) > 100 {
		return Name{}, fmt.Errorf("project name too long (max 100 characters)")
	}

	return Name{value: name}, nil
}

func (n Name) String() string {
	return n.value
}

// Branch is a value object for the git branch deployments build from
type Branch struct {
	value string
}

func NewBranch(branch string) (Branch, error) {
	branch = strings.TrimSpace(branch)

	if branch == "" {
		return Branch{}, fmt.Errorf("branch cannot be empty")
	}

	if len(branch) > 255 {
		return Branch{}, fmt.Errorf("branch too long (max 255 characters)")
	}

	// Subset of git ref rules, enough to reject obviously broken input
	if strings.ContainsAny(branch, " ~^:?*[\\") || strings.Contains(branch, "..") {
		return Branch{}, fmt.Errorf("branch contains invalid characters")
	}
	if strings.HasPrefix(branch, "/") || strings.HasSuffix(branch, "/") || strings.HasSuffix(branch, ".lock") {
		return Branch{}, fmt.Errorf("branch is not a valid git ref name")
	}

	return Branch{value: branch}, nil
}

func (b Branch) String() string {
	return b.value
}

// Command is a value object for a shell command run during deployment
type Command struct {
	value string
}

func NewCommand(cmd string) (Command, error) {
	cmd = strings.TrimSpace(cmd)

	if cmd == "" {
		return Command{}, fmt.Errorf("command cannot be empty")
	}

	if len(cmd) > 500 {
		return Command{}, fmt.Errorf("command too long (max 500 characters)")
	}

	return Command{value: cmd}, nil
}

// NewOptionalCommand creates a command that may be empty
func NewOptionalCommand(cmd string) Command {
	return Command{value: strings.TrimSpace(cmd)}
}

func (c Command) String() string {
	return c.value
}

func (c Command) IsEmpty() bool {
	return c.value == ""
}
