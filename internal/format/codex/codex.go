// Package codex implements the format adapter for Codex CLI
// configuration files.
//
// On-disk shapes:
//
//   - Agents: <name>.toml profiles (name, description, model, tools,
//     instructions), the shape of a config.toml profile block split into
//     one file per agent.
//   - Slash commands: <name>.md plain markdown prompts with no
//     frontmatter; a leading "# " heading doubles as the description.
//
// Codex has no permission rule files, so Supports reports false for the
// permission kind. It also carries no metadata sidecar, which makes it
// the lossy intermediate stop in multi-hop conversions: fields other
// formats preserved in metadata are dropped here with warnings.
package codex

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/agentsync/agsync/internal/canonical"
	"github.com/agentsync/agsync/internal/format"
)

// FormatName is the registry name for this adapter.
const FormatName = "codex"

// metaModel preserves the verbatim model identifier across a round trip.
const metaModel = "codex.model"

// Adapter converts Codex files to and from the canonical model.
type Adapter struct{}

// New creates the Codex adapter.
func New() *Adapter {
	return &Adapter{}
}

// Name implements format.Adapter.
func (a *Adapter) Name() string { return FormatName }

// Supports implements format.Adapter.
func (a *Adapter) Supports(kind canonical.Kind) bool {
	return kind == canonical.KindAgent || kind == canonical.KindSlashCommand
}

// Extension implements format.Adapter.
func (a *Adapter) Extension(kind canonical.Kind) string {
	if kind == canonical.KindSlashCommand {
		return ".md"
	}
	return ".toml"
}

// CanHandle implements format.Adapter.
//
// Only .toml files are claimed: a bare .md prompt is indistinguishable
// from a Claude agent file by name alone, so markdown detection is left
// to the claude adapter.
func (a *Adapter) CanHandle(path string) bool {
	return strings.HasSuffix(path, ".toml")
}

// profile is the TOML shape of a Codex agent file.
// Field order here is serialization order.
type profile struct {
	Name         string   `toml:"name"`
	Description  string   `toml:"description"`
	Model        string   `toml:"model,omitempty"`
	Tools        []string `toml:"tools,omitempty"`
	Instructions string   `toml:"instructions,omitempty"`
}

// ToCanonical implements format.Adapter.
func (a *Adapter) ToCanonical(content []byte, kind canonical.Kind) (*format.Result, error) {
	switch kind {
	case canonical.KindAgent:
		var p profile
		if err := toml.Unmarshal(content, &p); err != nil {
			return nil, fmt.Errorf("%w: invalid TOML in codex profile: %v", format.ErrMalformed, err)
		}
		agent := &canonical.Agent{
			Name:         p.Name,
			Description:  p.Description,
			Instructions: strings.TrimSpace(p.Instructions),
			Tools:        p.Tools,
			Model:        strings.ToLower(strings.TrimSpace(p.Model)),
		}
		if p.Model != "" {
			agent.Meta = agent.Meta.Set(metaModel, p.Model)
		}
		return &format.Result{Record: agent}, nil

	case canonical.KindSlashCommand:
		cmd := &canonical.SlashCommand{
			Prompt: strings.TrimSpace(string(content)),
		}
		// A leading markdown heading doubles as the description.
		if strings.HasPrefix(cmd.Prompt, "# ") {
			line, _, _ := strings.Cut(cmd.Prompt, "\n")
			cmd.Description = strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
		return &format.Result{Record: cmd}, nil
	}
	return nil, fmt.Errorf("%w: %s cannot parse %s", format.ErrUnsupportedKind, FormatName, kind)
}

// FromCanonical implements format.Adapter.
func (a *Adapter) FromCanonical(rec canonical.Record, _ format.Options) (*format.Result, []byte, error) {
	switch r := rec.(type) {
	case *canonical.Agent:
		p := profile{
			Name:         r.Name,
			Description:  r.Description,
			Model:        r.Model,
			Tools:        r.Tools,
			Instructions: r.Instructions,
		}
		if v, ok := r.Meta.Get(metaModel).(string); ok {
			p.Model = v
		}

		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(&p); err != nil {
			return nil, nil, fmt.Errorf("failed to serialize codex profile: %w", err)
		}
		return &format.Result{Warnings: foreignMetaWarnings(r.Meta)}, buf.Bytes(), nil

	case *canonical.SlashCommand:
		prompt := r.Prompt
		if prompt == "" && r.Description != "" {
			prompt = "# " + r.Description
		}
		res := &format.Result{Warnings: foreignMetaWarnings(r.Meta)}
		if r.ArgumentHint != "" {
			res.Warnings = append(res.Warnings, "dropped field with no codex representation: argument-hint")
		}
		return res, []byte(prompt + "\n"), nil
	}
	return nil, nil, fmt.Errorf("%w: %s cannot serialize %s", format.ErrUnsupportedKind, FormatName, rec.RecordKind())
}

// foreignMetaWarnings lists metadata keys written by other formats.
// Codex has no metadata sidecar at all, so every foreign key is dropped.
func foreignMetaWarnings(meta canonical.Metadata) []string {
	keys := make([]string, 0, len(meta))
	for key := range meta {
		if !strings.HasPrefix(key, "codex.") {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	warnings := make([]string, 0, len(keys))
	for _, key := range keys {
		warnings = append(warnings, fmt.Sprintf("dropped field with no %s representation: %s", FormatName, key))
	}
	return warnings
}
