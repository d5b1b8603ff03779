package copilot

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/agentsync/agsync/internal/canonical"
	"github.com/agentsync/agsync/internal/format"
)

// permSettings is the JSON shape of a <name>.perm.json file, mirroring the
// VS Code settings keys Copilot reads.
type permSettings struct {
	AutoApprove map[string]bool           `json:"chat.tools.terminal.autoApprove"`
	Domains     map[string]domainApproval `json:"chat.network.allowedDomains,omitempty"`
}

// domainApproval is a split approval: the outbound request and its
// response are approved independently.
type domainApproval struct {
	Request  bool `json:"request"`
	Response bool `json:"response"`
}

// permissionToCanonical maps the toggle model onto the canonical three-way
// decision.
//
// A true toggle is allow. A false toggle is ask - never deny, because
// false means "prompt", not "refuse". Split domain approvals collapse to
// the single safer decision (ask unless both sides are approved) with the
// original sub-decisions preserved verbatim in rule metadata.
func (a *Adapter) permissionToCanonical(content []byte) (*format.Result, error) {
	var f permSettings
	if err := json.Unmarshal(content, &f); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON in copilot permission file: %v", format.ErrMalformed, err)
	}

	set := &canonical.PermissionSet{}

	// Iterate in sorted key order so rule order is deterministic.
	for _, pattern := range sortedKeys(f.AutoApprove) {
		rule := canonical.PermissionRule{
			Pattern:  pattern,
			Decision: canonical.DecisionAsk,
			Kind:     canonical.RuleShellCommand,
		}
		if f.AutoApprove[pattern] {
			rule.Decision = canonical.DecisionAllow
		}
		if inner, isRegex := stripRegexDelimiters(pattern); isRegex {
			rule.Pattern = inner
			rule.Regex = true
		}
		set.Rules = append(set.Rules, rule)
	}

	for _, domain := range sortedKeys(f.Domains) {
		approval := f.Domains[domain]
		rule := canonical.PermissionRule{
			Pattern:  domain,
			Decision: canonical.DecisionAsk,
			Kind:     canonical.RuleNetworkDomain,
		}
		if approval.Request && approval.Response {
			rule.Decision = canonical.DecisionAllow
		}
		if inner, isRegex := stripRegexDelimiters(domain); isRegex {
			rule.Pattern = inner
			rule.Regex = true
		}
		rule.Meta = rule.Meta.Set(metaRequest, approval.Request)
		rule.Meta = rule.Meta.Set(metaResponse, approval.Response)
		set.Rules = append(set.Rules, rule)
	}

	return &format.Result{Record: set}, nil
}

// permissionFromCanonical serializes canonical rules into the toggle model.
//
// Deny is unrepresentable here: the toggle side cannot truly block, so
// deny degrades to false (ask) and always records a warning. Split
// approvals are restored verbatim from metadata when present.
func (a *Adapter) permissionFromCanonical(set *canonical.PermissionSet) (*format.Result, []byte, error) {
	out := permSettings{
		AutoApprove: map[string]bool{},
	}
	res := &format.Result{}

	for i := range set.Rules {
		rule := &set.Rules[i]
		key := rule.Pattern
		if rule.Regex {
			key = "/" + key + "/"
		}

		if rule.Decision == canonical.DecisionDeny {
			res.Warnings = append(res.Warnings, fmt.Sprintf(
				"deny rule %q degraded to ask: copilot cannot block, only prompt", rule.Pattern))
		}

		switch rule.Kind {
		case canonical.RuleShellCommand:
			out.AutoApprove[key] = rule.Decision == canonical.DecisionAllow
		case canonical.RuleNetworkDomain:
			if out.Domains == nil {
				out.Domains = map[string]domainApproval{}
			}
			approved := rule.Decision == canonical.DecisionAllow
			approval := domainApproval{Request: approved, Response: approved}
			// Restore the original sub-decisions when this rule came
			// from a copilot file in the first place.
			req, hasReq := rule.Meta.Get(metaRequest).(bool)
			resp, hasResp := rule.Meta.Get(metaResponse).(bool)
			if hasReq && hasResp && rule.Decision != canonical.DecisionDeny {
				approval = domainApproval{Request: req, Response: resp}
			}
			out.Domains[key] = approval
		default:
			return nil, nil, fmt.Errorf("rule %q: invalid rule kind %q", rule.Pattern, rule.Kind)
		}
		res.Warnings = append(res.Warnings, foreignMetaWarnings(rule.Meta)...)
	}
	res.Warnings = append(res.Warnings, foreignMetaWarnings(set.Meta)...)

	// encoding/json sorts map keys, so output is deterministic.
	data, err := json.MarshalIndent(&out, "", "  ")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to serialize copilot permission JSON: %w", err)
	}
	return res, append(data, '\n'), nil
}

// sortedKeys returns the map's keys in sorted order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// stripRegexDelimiters unwraps a /.../-delimited pattern.
func stripRegexDelimiters(s string) (string, bool) {
	if len(s) > 2 && strings.HasPrefix(s, "/") && strings.HasSuffix(s, "/") {
		return s[1 : len(s)-1], true
	}
	return s, false
}
