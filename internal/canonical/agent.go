package canonical

import "fmt"

// Agent is the canonical representation of an agent definition.
//
// Name and Description are required; everything else may be absent.
// Tools preserves source ordering. Model uses the short canonical names
// (sonnet, opus, haiku) where a mapping is known; otherwise the source
// value is passed through as-is.
type Agent struct {
	// Name uniquely identifies the agent within a directory.
	Name string

	// Description is a short human-readable summary.
	Description string

	// Instructions is the agent's instruction body text (markdown).
	Instructions string

	// Tools is the ordered list of tool identifiers the agent may use.
	Tools []string

	// Model is the canonical model identifier, empty if inherited.
	Model string

	// Meta holds format-specific fields with no canonical home.
	Meta Metadata
}

// RecordKind implements Record.
func (a *Agent) RecordKind() Kind { return KindAgent }

// Validate implements Record.
func (a *Agent) Validate() error {
	if a.Name == "" {
		return fmt.Errorf("agent name is required")
	}
	if a.Description == "" {
		return fmt.Errorf("agent description is required")
	}
	return nil
}
