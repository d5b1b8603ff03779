package claude

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/agentsync/agsync/internal/canonical"
	"github.com/agentsync/agsync/internal/format"
)

// settingsFile is the JSON shape of settings.json / settings.local.json.
type settingsFile struct {
	Permissions *permissionsBlock `json:"permissions"`
}

type permissionsBlock struct {
	Allow []string `json:"allow"`
	Deny  []string `json:"deny"`
	Ask   []string `json:"ask"`
}

func (a *Adapter) permissionToCanonical(content []byte) (*format.Result, error) {
	var f settingsFile
	if err := json.Unmarshal(content, &f); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON in settings file: %v", format.ErrMalformed, err)
	}

	set := &canonical.PermissionSet{}
	// A settings file without a permissions key is a valid empty set.
	if f.Permissions == nil {
		return &format.Result{Record: set}, nil
	}

	for _, entry := range f.Permissions.Allow {
		set.Rules = append(set.Rules, parseEntry(entry, canonical.DecisionAllow))
	}
	for _, entry := range f.Permissions.Deny {
		set.Rules = append(set.Rules, parseEntry(entry, canonical.DecisionDeny))
	}
	for _, entry := range f.Permissions.Ask {
		set.Rules = append(set.Rules, parseEntry(entry, canonical.DecisionAsk))
	}

	return &format.Result{Record: set}, nil
}

func (a *Adapter) permissionFromCanonical(set *canonical.PermissionSet) (*format.Result, []byte, error) {
	block := permissionsBlock{
		Allow: []string{},
		Deny:  []string{},
		Ask:   []string{},
	}
	res := &format.Result{}

	for i := range set.Rules {
		rule := &set.Rules[i]
		entry := entryFor(rule)
		switch rule.Decision {
		case canonical.DecisionAllow:
			block.Allow = append(block.Allow, entry)
		case canonical.DecisionDeny:
			block.Deny = append(block.Deny, entry)
		case canonical.DecisionAsk:
			block.Ask = append(block.Ask, entry)
		default:
			return nil, nil, fmt.Errorf("rule %q: invalid decision %q", rule.Pattern, rule.Decision)
		}
		res.Warnings = append(res.Warnings, foreignMetaWarnings(rule.Meta, "claude.")...)
	}
	res.Warnings = append(res.Warnings, foreignMetaWarnings(set.Meta, "claude.")...)

	out, err := json.MarshalIndent(settingsFile{Permissions: &block}, "", "  ")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to serialize settings JSON: %w", err)
	}
	return res, append(out, '\n'), nil
}

// parseEntry converts one settings entry into a canonical rule.
//
// Recognized spellings:
//
//	Bash(cmd)                   shell rule, literal
//	Bash(cmd *)                 shell rule, literal with invocation wildcard
//	Bash(/regex/)               shell rule, regex
//	WebFetch(domain:d)          network rule, literal domain
//	WebFetch(domain:/regex/)    network rule, regex domain
//	anything-else               shell rule, verbatim literal
//
// The original spelling is always preserved in rule metadata so that a
// claude -> canonical -> claude round trip reproduces the file exactly.
func parseEntry(entry string, decision canonical.Decision) canonical.PermissionRule {
	rule := canonical.PermissionRule{
		Decision: decision,
		Kind:     canonical.RuleShellCommand,
		Pattern:  entry,
	}
	rule.Meta = rule.Meta.Set(metaPattern, entry)

	tool, arg, ok := splitInvocation(entry)
	if !ok {
		return rule
	}

	switch {
	case tool == "WebFetch" && strings.HasPrefix(arg, "domain:"):
		rule.Kind = canonical.RuleNetworkDomain
		arg = strings.TrimPrefix(arg, "domain:")
	case tool == "Bash":
		// fall through to pattern extraction below
	default:
		// Unrecognized tool wrappers (Read, Edit, ...) stay verbatim.
		return rule
	}

	if inner, isRegex := stripRegexDelimiters(arg); isRegex {
		rule.Pattern = inner
		rule.Regex = true
		return rule
	}

	// "cmd *" is the wildcarded invocation form of the literal "cmd".
	rule.Pattern = strings.TrimSuffix(arg, " *")
	return rule
}

// entryFor serializes a canonical rule into the settings entry syntax.
// The verbatim spelling from metadata wins when present.
func entryFor(rule *canonical.PermissionRule) string {
	if v, ok := rule.Meta.Get(metaPattern).(string); ok {
		return v
	}

	pattern := rule.Pattern
	if rule.Regex {
		pattern = "/" + pattern + "/"
	}

	if rule.Kind == canonical.RuleNetworkDomain {
		return "WebFetch(domain:" + pattern + ")"
	}
	if rule.Regex {
		return "Bash(" + pattern + ")"
	}
	// A plain literal command matches any invocation of it.
	return "Bash(" + pattern + " *)"
}

// splitInvocation splits "Tool(arg)" into its parts.
func splitInvocation(entry string) (tool, arg string, ok bool) {
	open := strings.Index(entry, "(")
	if open <= 0 || !strings.HasSuffix(entry, ")") {
		return "", "", false
	}
	return entry[:open], entry[open+1 : len(entry)-1], true
}

// stripRegexDelimiters unwraps a /.../-delimited pattern.
func stripRegexDelimiters(s string) (string, bool) {
	if len(s) > 2 && strings.HasPrefix(s, "/") && strings.HasSuffix(s, "/") {
		return s[1 : len(s)-1], true
	}
	return s, false
}
