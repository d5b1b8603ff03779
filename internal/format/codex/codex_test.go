package codex

import (
	"errors"
	"strings"
	"testing"

	"github.com/agentsync/agsync/internal/canonical"
	"github.com/agentsync/agsync/internal/format"
)

func TestSupports(t *testing.T) {
	a := New()
	if !a.Supports(canonical.KindAgent) || !a.Supports(canonical.KindSlashCommand) {
		t.Error("codex should support agents and slash commands")
	}
	if a.Supports(canonical.KindPermission) {
		t.Error("codex has no permission files")
	}
}

func TestCanHandle(t *testing.T) {
	a := New()
	if !a.CanHandle("reviewer.toml") {
		t.Error("CanHandle(.toml) = false")
	}
	// Markdown prompts are indistinguishable from claude files by name,
	// so codex does not claim them.
	if a.CanHandle("deploy.md") {
		t.Error("CanHandle(.md) = true")
	}
	if a.CanHandle("terminal.perm.json") {
		t.Error("CanHandle(.perm.json) = true")
	}
}

func TestAgentProfileRoundTripFixedPoint(t *testing.T) {
	input := `name = "reviewer"
description = "Reviews code for correctness"
model = "sonnet"
tools = ["Read", "Grep"]
instructions = "Be thorough."
`
	a := New()
	res, err := a.ToCanonical([]byte(input), canonical.KindAgent)
	if err != nil {
		t.Fatalf("ToCanonical failed: %v", err)
	}

	agent := res.Record.(*canonical.Agent)
	if agent.Name != "reviewer" || agent.Model != "sonnet" {
		t.Errorf("parsed agent = %+v", agent)
	}
	if len(agent.Tools) != 2 || agent.Tools[1] != "Grep" {
		t.Errorf("Tools = %v", agent.Tools)
	}
	if agent.Instructions != "Be thorough." {
		t.Errorf("Instructions = %q", agent.Instructions)
	}

	_, first, err := a.FromCanonical(agent, format.Options{})
	if err != nil {
		t.Fatalf("FromCanonical failed: %v", err)
	}

	res2, err := a.ToCanonical(first, canonical.KindAgent)
	if err != nil {
		t.Fatalf("ToCanonical of own output failed: %v", err)
	}
	_, second, err := a.FromCanonical(res2.Record, format.Options{})
	if err != nil {
		t.Fatalf("second FromCanonical failed: %v", err)
	}
	if string(first) != string(second) {
		t.Errorf("not a fixed point:\nfirst:  %q\nsecond: %q", first, second)
	}
}

func TestAgentMalformedTOML(t *testing.T) {
	a := New()
	_, err := a.ToCanonical([]byte("name = \"unterminated\ndescription"), canonical.KindAgent)
	if !errors.Is(err, format.ErrMalformed) {
		t.Errorf("err = %v, want ErrMalformed", err)
	}
}

func TestSlashCommandHeadingAsDescription(t *testing.T) {
	a := New()
	res, err := a.ToCanonical([]byte("# Deploy\n\nDeploy to production.\n"), canonical.KindSlashCommand)
	if err != nil {
		t.Fatalf("ToCanonical failed: %v", err)
	}

	cmd := res.Record.(*canonical.SlashCommand)
	if cmd.Description != "Deploy" {
		t.Errorf("Description = %q", cmd.Description)
	}
	if !strings.Contains(cmd.Prompt, "Deploy to production.") {
		t.Errorf("Prompt = %q", cmd.Prompt)
	}

	_, out, err := a.FromCanonical(cmd, format.Options{})
	if err != nil {
		t.Fatalf("FromCanonical failed: %v", err)
	}
	if string(out) != "# Deploy\n\nDeploy to production.\n" {
		t.Errorf("output = %q", out)
	}
}

func TestSlashCommandDescriptionOnly(t *testing.T) {
	a := New()
	cmd := &canonical.SlashCommand{Name: "deploy", Description: "Deploy the app"}
	_, out, err := a.FromCanonical(cmd, format.Options{})
	if err != nil {
		t.Fatalf("FromCanonical failed: %v", err)
	}
	if string(out) != "# Deploy the app\n" {
		t.Errorf("output = %q", out)
	}
}

func TestDropWarnings(t *testing.T) {
	a := New()

	agent := &canonical.Agent{Name: "helper", Description: "Helps"}
	agent.Meta = agent.Meta.Set("claude.permissionMode", "default")
	agent.Meta = agent.Meta.Set("copilot.handoffs", "x")

	res, _, err := a.FromCanonical(agent, format.Options{})
	if err != nil {
		t.Fatalf("FromCanonical failed: %v", err)
	}
	if len(res.Warnings) != 2 {
		t.Fatalf("warnings = %v", res.Warnings)
	}
	if !strings.Contains(res.Warnings[0], "claude.permissionMode") {
		t.Errorf("warning 0 = %q", res.Warnings[0])
	}

	cmd := &canonical.SlashCommand{Name: "deploy", Prompt: "Deploy.", ArgumentHint: "env"}
	res, _, err = a.FromCanonical(cmd, format.Options{})
	if err != nil {
		t.Fatalf("FromCanonical failed: %v", err)
	}
	found := false
	for _, w := range res.Warnings {
		if strings.Contains(w, "argument-hint") {
			found = true
		}
	}
	if !found {
		t.Errorf("argument-hint drop not warned: %v", res.Warnings)
	}
}

func TestUnsupportedKind(t *testing.T) {
	a := New()
	if _, err := a.ToCanonical([]byte("{}"), canonical.KindPermission); !errors.Is(err, format.ErrUnsupportedKind) {
		t.Errorf("ToCanonical permission err = %v", err)
	}
	set := &canonical.PermissionSet{}
	if _, _, err := a.FromCanonical(set, format.Options{}); !errors.Is(err, format.ErrUnsupportedKind) {
		t.Errorf("FromCanonical permission err = %v", err)
	}
}
