package canonical

import "fmt"

// Decision is the outcome a permission rule assigns to matching operations.
type Decision string

const (
	// DecisionAllow permits the operation without prompting.
	DecisionAllow Decision = "allow"

	// DecisionAsk prompts the user before the operation runs.
	DecisionAsk Decision = "ask"

	// DecisionDeny refuses the operation outright.
	//
	// Not every format can express deny. Toggle-style formats degrade it
	// to ask on conversion, recording a warning; they never reconstruct it.
	DecisionDeny Decision = "deny"
)

// RuleKind classifies what a permission rule's pattern matches against.
type RuleKind string

const (
	// RuleShellCommand matches shell command invocations.
	RuleShellCommand RuleKind = "shell-command"

	// RuleNetworkDomain matches outbound network domains.
	RuleNetworkDomain RuleKind = "network-domain"
)

// Metadata keys used by adapters that support split request/response
// approvals. Both are bools; they are preserved verbatim so a conversion
// back to the originating format reconstructs the original sub-decisions.
const (
	MetaCopilotRequest  = "copilot.request"
	MetaCopilotResponse = "copilot.response"
)

// PermissionRule is one canonical permission rule.
type PermissionRule struct {
	// Pattern is a literal command/domain, or a regular expression when
	// Regex is true. Regex patterns are carried verbatim between formats.
	Pattern string

	// Regex flags Pattern as a regular expression rather than a literal.
	Regex bool

	// Decision is always one of allow, ask, deny.
	Decision Decision

	// Kind says whether the pattern targets shell commands or domains.
	Kind RuleKind

	// Meta carries format-specific detail, notably split request/response
	// approvals which have no canonical field.
	Meta Metadata
}

// Validate checks the rule's enum fields.
func (r *PermissionRule) Validate() error {
	switch r.Decision {
	case DecisionAllow, DecisionAsk, DecisionDeny:
	default:
		return fmt.Errorf("invalid decision: %q", r.Decision)
	}
	switch r.Kind {
	case RuleShellCommand, RuleNetworkDomain:
	default:
		return fmt.Errorf("invalid rule kind: %q", r.Kind)
	}
	if r.Pattern == "" {
		return fmt.Errorf("rule pattern is required")
	}
	return nil
}

// PermissionSet is the canonical representation of a permission rule set.
type PermissionSet struct {
	// Rules in source order. Ordering is preserved across conversions.
	Rules []PermissionRule

	// Meta holds format-specific fields with no canonical home.
	Meta Metadata
}

// RecordKind implements Record.
func (p *PermissionSet) RecordKind() Kind { return KindPermission }

// Validate implements Record.
func (p *PermissionSet) Validate() error {
	for i := range p.Rules {
		if err := p.Rules[i].Validate(); err != nil {
			return fmt.Errorf("rule %d: %w", i, err)
		}
	}
	return nil
}
