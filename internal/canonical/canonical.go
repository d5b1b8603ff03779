// Package canonical defines the format-agnostic record types that every
// format adapter converts through.
//
// Records are transient: they are created fresh for each conversion and
// discarded once serialized to the target format. They are never persisted.
// The metadata bag on each record is the lossless round-trip escape hatch:
// an adapter may stash format-specific fields there during ToCanonical and
// must check for them during FromCanonical before computing a default.
package canonical

import "fmt"

// Kind identifies the type of configuration record being synced.
type Kind string

const (
	// KindAgent is an agent definition (name, instructions, tools, model).
	KindAgent Kind = "agent"

	// KindPermission is a permission rule set (allow/ask/deny decisions).
	KindPermission Kind = "permission"

	// KindSlashCommand is a slash-command prompt definition.
	KindSlashCommand Kind = "slash-command"
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	return string(k)
}

// ParseKind converts a CLI config-type value to a Kind.
// Accepted values: "agent", "permission", "slash-command".
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindAgent, KindPermission, KindSlashCommand:
		return Kind(s), nil
	}
	return "", fmt.Errorf("unknown config type: %q (want agent, permission, or slash-command)", s)
}

// Record is implemented by every canonical record type.
type Record interface {
	// RecordKind returns the kind of configuration this record holds.
	RecordKind() Kind

	// Validate checks required fields and enum values.
	Validate() error
}

// Metadata is the open key-value bag attached to each canonical record.
//
// Keys are namespaced by the format that wrote them ("claude.skills",
// "copilot.handoffs"). Discipline: an adapter may only read keys it would
// itself have written. Cross-format reads leak representation details and
// break round-trip guarantees.
type Metadata map[string]any

// Get returns the value for key, or nil if absent.
func (m Metadata) Get(key string) any {
	if m == nil {
		return nil
	}
	return m[key]
}

// Has reports whether key is present.
func (m Metadata) Has(key string) bool {
	if m == nil {
		return false
	}
	_, ok := m[key]
	return ok
}

// Set stores value under key, allocating the map on first use.
// Returns the (possibly newly allocated) map so callers can do
// rec.Meta = rec.Meta.Set(k, v) when Meta may be nil.
func (m Metadata) Set(key string, value any) Metadata {
	if m == nil {
		m = make(Metadata)
	}
	m[key] = value
	return m
}
