package domain

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

// Capability is what a manifest allows a plugin to do. A report plugin
// receives the aggregated statistics of the current user; a command plugin
// receives caller-supplied JSON.
type Capability string

const (
	CapabilityReport  Capability = "report"
	CapabilityCommand Capability = "command"
)

var (
	ErrPluginDisabled    = errors.New("plugin is disabled")
	ErrChecksumMismatch  = errors.New("plugin checksum mismatch")
	ErrCapabilityMissing = errors.New("plugin capability missing")
	ErrCommandNotFound   = errors.New("plugin command not found")
	ErrPluginTimeout     = errors.New("plugin timeout")
)

const DefaultCommandTimeout = 5 * time.Second

var sha256Pattern = regexp.MustCompile(`^[a-f0-9]{64}$`)

type Manifest struct {
	Name         string       `json:"name" yaml:"name"`
	Version      string       `json:"version" yaml:"version"`
	Binary       string       `json:"binary" yaml:"binary"`
	SHA256       string       `json:"sha256" yaml:"sha256"`
	Enabled      bool         `json:"enabled" yaml:"enabled"`
	Capabilities []Capability `json:"capabilities" yaml:"capabilities"`
}

func (m Manifest) Validate() error {
	switch {
	case m.Name == "":
		return fmt.Errorf("plugin name is required")
	case m.Version == "":
		return fmt.Errorf("plugin %s: version is required", m.Name)
	case m.Binary == "":
		return fmt.Errorf("plugin %s: binary path is required", m.Name)
	case !sha256Pattern.MatchString(m.SHA256):
		return fmt.Errorf("plugin %s: sha256 must be lowercase 64-char hex", m.Name)
	case len(m.Capabilities) == 0:
		return fmt.Errorf("plugin %s: capabilities are required", m.Name)
	}
	seen := map[Capability]struct{}{}
	for _, capability := range m.Capabilities {
		if err := capability.Validate(); err != nil {
			return err
		}
		if _, ok := seen[capability]; ok {
			return fmt.Errorf("plugin %s: duplicate capability %s", m.Name, capability)
		}
		seen[capability] = struct{}{}
	}
	return nil
}

func (c Capability) Validate() error {
	switch c {
	case CapabilityReport, CapabilityCommand:
		return nil
	default:
		return fmt.Errorf("unknown capability: %s", c)
	}
}

func (m Manifest) HasCapability(capability Capability) bool {
	for _, c := range m.Capabilities {
		if c == capability {
			return true
		}
	}
	return false
}

type CommandDescriptor struct {
	ID          string
	Title       string
	Description string
	Kind        Capability
	TimeoutMS   int
}

func (d CommandDescriptor) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("command id is required")
	}
	return d.Kind.Validate()
}

// Timeout is the declared command timeout, or DefaultCommandTimeout.
func (d CommandDescriptor) Timeout() time.Duration {
	if d.TimeoutMS <= 0 {
		return DefaultCommandTimeout
	}
	return time.Duration(d.TimeoutMS) * time.Millisecond
}

type Metadata struct {
	Name         string
	Version      string
	Capabilities []Capability
}

type RunContext struct {
	VaultPath string
	OwnerID   string
	Period    string
}

func (c RunContext) Validate() error {
	if c.VaultPath == "" {
		return fmt.Errorf("vault path is required")
	}
	return nil
}

type RunRequest struct {
	CommandID string
	InputJSON string
	Timeout   time.Duration
	Context   RunContext
}

func (r RunRequest) Validate() error {
	if r.CommandID == "" {
		return fmt.Errorf("command id is required")
	}
	return r.Context.Validate()
}

type RunResult struct {
	Stdout     string
	Stderr     string
	OutputJSON string
	ExitCode   int
}

// StatsInput is the JSON document handed to report commands.
type StatsInput struct {
	OwnerID      string       `json:"owner_id"`
	Period       string       `json:"period"`
	From         string       `json:"from,omitempty"`
	To           string       `json:"to,omitempty"`
	Sessions     int          `json:"sessions"`
	TotalHours   float64      `json:"total_hours"`
	DailyAverage *float64     `json:"daily_average,omitempty"`
	Mean         float64      `json:"mean"`
	Median       float64      `json:"median"`
	Mode         float64      `json:"mode"`
	MostWeekday  string       `json:"most_weekday"`
	LeastWeekday string       `json:"least_weekday"`
	Favorite     string       `json:"favorite_subject"`
	Weekdays     []NamedHours `json:"weekdays"`
	Subjects     []NamedHours `json:"subjects"`
	Goal         *GoalInput   `json:"goal,omitempty"`
	Report       []string     `json:"report"`
}

type NamedHours struct {
	Name  string  `json:"name"`
	Hours float64 `json:"hours"`
}

type GoalInput struct {
	Hours   float64 `json:"hours"`
	Period  string  `json:"period"`
	Percent int     `json:"percent"`
	Met     bool    `json:"met"`
}
