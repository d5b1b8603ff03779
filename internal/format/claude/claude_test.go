package claude

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/agentsync/agsync/internal/canonical"
	"github.com/agentsync/agsync/internal/format"
)

func TestCanHandle(t *testing.T) {
	a := New()
	tests := []struct {
		path string
		want bool
	}{
		{"settings.json", true},
		{"settings.local.json", true},
		{"/home/x/.claude/settings.json", true},
		{"reviewer.md", true},
		{"agents/reviewer.md", true},
		{"reviewer.agent.md", false},
		{"deploy.prompt.md", false},
		{"other.json", false},
		{"profile.toml", false},
	}
	for _, tt := range tests {
		if got := a.CanHandle(tt.path); got != tt.want {
			t.Errorf("CanHandle(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestAgentRoundTrip(t *testing.T) {
	input := `---
name: reviewer
description: Reviews code for correctness
tools: Read, Grep, Bash
model: sonnet
---
Be thorough. Check every error path.
`
	a := New()
	res, err := a.ToCanonical([]byte(input), canonical.KindAgent)
	if err != nil {
		t.Fatalf("ToCanonical failed: %v", err)
	}

	agent, ok := res.Record.(*canonical.Agent)
	if !ok {
		t.Fatalf("record is %T, want *canonical.Agent", res.Record)
	}
	if agent.Name != "reviewer" {
		t.Errorf("Name = %q", agent.Name)
	}
	if agent.Model != "sonnet" {
		t.Errorf("Model = %q", agent.Model)
	}
	if len(agent.Tools) != 3 || agent.Tools[0] != "Read" || agent.Tools[2] != "Bash" {
		t.Errorf("Tools = %v", agent.Tools)
	}
	if agent.Instructions != "Be thorough. Check every error path." {
		t.Errorf("Instructions = %q", agent.Instructions)
	}

	_, out, err := a.FromCanonical(agent, format.Options{})
	if err != nil {
		t.Fatalf("FromCanonical failed: %v", err)
	}
	if string(out) != input {
		t.Errorf("round trip changed bytes:\ngot:  %q\nwant: %q", out, input)
	}
}

func TestAgentModelInherit(t *testing.T) {
	input := "---\nname: helper\ndescription: Helps\nmodel: inherit\n---\nHelp out.\n"
	a := New()
	res, err := a.ToCanonical([]byte(input), canonical.KindAgent)
	if err != nil {
		t.Fatalf("ToCanonical failed: %v", err)
	}

	agent := res.Record.(*canonical.Agent)
	if agent.Model != "" {
		t.Errorf("inherit should map to empty model, got %q", agent.Model)
	}

	_, out, err := a.FromCanonical(agent, format.Options{})
	if err != nil {
		t.Fatalf("FromCanonical failed: %v", err)
	}
	if string(out) != input {
		t.Errorf("inherit spelling not reproduced:\ngot:  %q\nwant: %q", out, input)
	}
}

func TestAgentToolsListForm(t *testing.T) {
	input := "---\nname: helper\ndescription: Helps\ntools:\n  - Read\n  - Grep\n---\nBody.\n"
	a := New()
	res, err := a.ToCanonical([]byte(input), canonical.KindAgent)
	if err != nil {
		t.Fatalf("ToCanonical failed: %v", err)
	}
	agent := res.Record.(*canonical.Agent)
	if len(agent.Tools) != 2 || agent.Tools[0] != "Read" || agent.Tools[1] != "Grep" {
		t.Errorf("Tools = %v", agent.Tools)
	}
}

func TestAgentMalformed(t *testing.T) {
	a := New()
	_, err := a.ToCanonical([]byte("just markdown, no frontmatter\n"), canonical.KindAgent)
	if !errors.Is(err, format.ErrMalformed) {
		t.Errorf("err = %v, want ErrMalformed", err)
	}
	_, err = a.ToCanonical([]byte("---\ntools: [unclosed\n---\nbody\n"), canonical.KindAgent)
	if !errors.Is(err, format.ErrMalformed) {
		t.Errorf("bad yaml err = %v, want ErrMalformed", err)
	}
}

func TestParseEntry(t *testing.T) {
	tests := []struct {
		entry       string
		wantPattern string
		wantRegex   bool
		wantKind    canonical.RuleKind
	}{
		{"Bash(git status)", "git status", false, canonical.RuleShellCommand},
		{"Bash(npm *)", "npm", false, canonical.RuleShellCommand},
		{"Bash(/rm -rf .*/)", "rm -rf .*", true, canonical.RuleShellCommand},
		{"WebFetch(domain:docs.example.com)", "docs.example.com", false, canonical.RuleNetworkDomain},
		{"WebFetch(domain:/.+[.]corp[.]com/)", ".+[.]corp[.]com", true, canonical.RuleNetworkDomain},
		{"Read(.env)", "Read(.env)", false, canonical.RuleShellCommand},
		{"mcp__github", "mcp__github", false, canonical.RuleShellCommand},
	}

	for _, tt := range tests {
		t.Run(tt.entry, func(t *testing.T) {
			rule := parseEntry(tt.entry, canonical.DecisionAllow)
			if rule.Pattern != tt.wantPattern {
				t.Errorf("Pattern = %q, want %q", rule.Pattern, tt.wantPattern)
			}
			if rule.Regex != tt.wantRegex {
				t.Errorf("Regex = %v, want %v", rule.Regex, tt.wantRegex)
			}
			if rule.Kind != tt.wantKind {
				t.Errorf("Kind = %q, want %q", rule.Kind, tt.wantKind)
			}
			// The verbatim spelling is always kept for exact round trips.
			if got := rule.Meta.Get("claude.pattern"); got != tt.entry {
				t.Errorf("meta pattern = %v, want %q", got, tt.entry)
			}
		})
	}
}

func TestEntryForWithoutMeta(t *testing.T) {
	tests := []struct {
		name string
		rule canonical.PermissionRule
		want string
	}{
		{"shell literal", canonical.PermissionRule{Pattern: "npm", Kind: canonical.RuleShellCommand}, "Bash(npm *)"},
		{"shell regex", canonical.PermissionRule{Pattern: "rm .*", Regex: true, Kind: canonical.RuleShellCommand}, "Bash(/rm .*/)"},
		{"domain literal", canonical.PermissionRule{Pattern: "example.com", Kind: canonical.RuleNetworkDomain}, "WebFetch(domain:example.com)"},
		{"domain regex", canonical.PermissionRule{Pattern: ".*[.]dev", Regex: true, Kind: canonical.RuleNetworkDomain}, "WebFetch(domain:/.*[.]dev/)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := entryFor(&tt.rule); got != tt.want {
				t.Errorf("entryFor = %q, want %q", got, tt.want)
			}
		})
	}
}

// settingsDoc mirrors the on-disk settings shape for building test input
// byte-for-byte the way the adapter serializes it.
type settingsDoc struct {
	Permissions struct {
		Allow []string `json:"allow"`
		Deny  []string `json:"deny"`
		Ask   []string `json:"ask"`
	} `json:"permissions"`
}

func settingsInput(t *testing.T, allow, deny, ask []string) string {
	t.Helper()
	var doc settingsDoc
	doc.Permissions.Allow = allow
	doc.Permissions.Deny = deny
	doc.Permissions.Ask = ask
	data, err := json.MarshalIndent(&doc, "", "  ")
	if err != nil {
		t.Fatalf("building input: %v", err)
	}
	return string(data) + "\n"
}

func TestPermissionRoundTrip(t *testing.T) {
	input := settingsInput(t,
		[]string{"Bash(git status)", "Bash(npm *)", "WebFetch(domain:docs.example.com)", "Read(.env)"},
		[]string{"Bash(/rm -rf .*/)"},
		[]string{"Bash(git push *)"},
	)

	a := New()
	res, err := a.ToCanonical([]byte(input), canonical.KindPermission)
	if err != nil {
		t.Fatalf("ToCanonical failed: %v", err)
	}

	set := res.Record.(*canonical.PermissionSet)
	if len(set.Rules) != 6 {
		t.Fatalf("got %d rules, want 6", len(set.Rules))
	}
	if set.Rules[0].Decision != canonical.DecisionAllow {
		t.Errorf("rule 0 decision = %q", set.Rules[0].Decision)
	}
	if set.Rules[4].Decision != canonical.DecisionDeny || !set.Rules[4].Regex {
		t.Errorf("deny regex rule parsed as %+v", set.Rules[4])
	}
	if set.Rules[5].Decision != canonical.DecisionAsk {
		t.Errorf("ask rule decision = %q", set.Rules[5].Decision)
	}

	_, out, err := a.FromCanonical(set, format.Options{})
	if err != nil {
		t.Fatalf("FromCanonical failed: %v", err)
	}
	if string(out) != input {
		t.Errorf("round trip changed bytes:\ngot:  %s\nwant: %s", out, input)
	}
}

func TestPermissionEmptySettings(t *testing.T) {
	a := New()
	res, err := a.ToCanonical([]byte("{}\n"), canonical.KindPermission)
	if err != nil {
		t.Fatalf("ToCanonical failed: %v", err)
	}
	set := res.Record.(*canonical.PermissionSet)
	if len(set.Rules) != 0 {
		t.Fatalf("empty settings produced %d rules", len(set.Rules))
	}

	// Serializing an empty set still emits all three arrays.
	_, out, err := a.FromCanonical(set, format.Options{})
	if err != nil {
		t.Fatalf("FromCanonical failed: %v", err)
	}
	for _, key := range []string{`"allow": []`, `"deny": []`, `"ask": []`} {
		if !strings.Contains(string(out), key) {
			t.Errorf("output missing %s:\n%s", key, out)
		}
	}
}

func TestCommandRoundTrip(t *testing.T) {
	input := "---\ndescription: Deploy the app\nargument-hint: environment name\n---\nDeploy to $1 and report status.\n"
	a := New()
	res, err := a.ToCanonical([]byte(input), canonical.KindSlashCommand)
	if err != nil {
		t.Fatalf("ToCanonical failed: %v", err)
	}

	cmd := res.Record.(*canonical.SlashCommand)
	if cmd.Description != "Deploy the app" {
		t.Errorf("Description = %q", cmd.Description)
	}
	if cmd.ArgumentHint != "environment name" {
		t.Errorf("ArgumentHint = %q", cmd.ArgumentHint)
	}

	_, out, err := a.FromCanonical(cmd, format.Options{})
	if err != nil {
		t.Fatalf("FromCanonical failed: %v", err)
	}
	if string(out) != input {
		t.Errorf("round trip changed bytes:\ngot:  %q\nwant: %q", out, input)
	}
}

func TestCommandEmptyHeader(t *testing.T) {
	a := New()
	cmd := &canonical.SlashCommand{Name: "review", Prompt: "Review the diff."}
	_, out, err := a.FromCanonical(cmd, format.Options{})
	if err != nil {
		t.Fatalf("FromCanonical failed: %v", err)
	}
	if string(out) != "---\n---\nReview the diff.\n" {
		t.Errorf("empty header output = %q", out)
	}
}

func TestForeignMetaWarnings(t *testing.T) {
	a := New()
	agent := &canonical.Agent{Name: "helper", Description: "Helps"}
	agent.Meta = agent.Meta.Set("copilot.target", "vscode")
	agent.Meta = agent.Meta.Set("copilot.handoffs", []string{"x"})
	agent.Meta = agent.Meta.Set("claude.permissionMode", "default")

	res, _, err := a.FromCanonical(agent, format.Options{})
	if err != nil {
		t.Fatalf("FromCanonical failed: %v", err)
	}
	if len(res.Warnings) != 2 {
		t.Fatalf("warnings = %v, want 2 entries", res.Warnings)
	}
	// Warnings are sorted by key for deterministic output.
	if !strings.Contains(res.Warnings[0], "copilot.handoffs") {
		t.Errorf("warning 0 = %q", res.Warnings[0])
	}
	if !strings.Contains(res.Warnings[1], "copilot.target") {
		t.Errorf("warning 1 = %q", res.Warnings[1])
	}
}
