// Package claude implements the format adapter for Claude Code
// configuration files.
//
// On-disk shapes:
//
//   - Agents: <name>.md with YAML frontmatter (name, description, tools as
//     a comma-separated string, model, permissionMode, skills) followed by
//     the instruction body in markdown.
//   - Permissions: settings.json / settings.local.json with a
//     {"permissions": {"allow": [], "deny": [], "ask": []}} object.
//   - Slash commands: <name>.md with YAML frontmatter (description,
//     argument-hint) followed by the prompt body.
//
// Claude's short model names (sonnet, opus, haiku) are the canonical form,
// so models pass through lowercased. Claude-specific agent fields
// (permissionMode, skills) ride in record metadata under "claude." keys.
package claude

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agentsync/agsync/internal/canonical"
	"github.com/agentsync/agsync/internal/format"
)

// FormatName is the registry name for this adapter.
const FormatName = "claude"

// Metadata keys written and read by this adapter.
const (
	metaPermissionMode = "claude.permissionMode"
	metaSkills         = "claude.skills"
	metaModel          = "claude.model"
	metaPattern        = "claude.pattern"
)

// Adapter converts Claude Code files to and from the canonical model.
type Adapter struct{}

// New creates the Claude adapter.
func New() *Adapter {
	return &Adapter{}
}

// Name implements format.Adapter.
func (a *Adapter) Name() string { return FormatName }

// Supports implements format.Adapter.
func (a *Adapter) Supports(kind canonical.Kind) bool {
	switch kind {
	case canonical.KindAgent, canonical.KindPermission, canonical.KindSlashCommand:
		return true
	}
	return false
}

// Extension implements format.Adapter.
func (a *Adapter) Extension(kind canonical.Kind) string {
	if kind == canonical.KindPermission {
		return ".json"
	}
	return ".md"
}

// CanHandle implements format.Adapter.
//
// Claude agents and commands are .md files that are NOT .agent.md or
// .prompt.md files (those belong to Copilot). Permission files are
// settings.json or settings.local.json.
func (a *Adapter) CanHandle(path string) bool {
	name := baseOf(path)
	if name == "settings.json" || name == "settings.local.json" {
		return true
	}
	return strings.HasSuffix(name, ".md") &&
		!strings.HasSuffix(name, ".agent.md") &&
		!strings.HasSuffix(name, ".prompt.md")
}

// ToCanonical implements format.Adapter.
func (a *Adapter) ToCanonical(content []byte, kind canonical.Kind) (*format.Result, error) {
	switch kind {
	case canonical.KindAgent:
		return a.agentToCanonical(content)
	case canonical.KindPermission:
		return a.permissionToCanonical(content)
	case canonical.KindSlashCommand:
		return a.commandToCanonical(content)
	}
	return nil, fmt.Errorf("%w: %s cannot parse %s", format.ErrUnsupportedKind, FormatName, kind)
}

// FromCanonical implements format.Adapter.
func (a *Adapter) FromCanonical(rec canonical.Record, opts format.Options) (*format.Result, []byte, error) {
	switch r := rec.(type) {
	case *canonical.Agent:
		return a.agentFromCanonical(r)
	case *canonical.PermissionSet:
		return a.permissionFromCanonical(r)
	case *canonical.SlashCommand:
		return a.commandFromCanonical(r)
	}
	return nil, nil, fmt.Errorf("%w: %s cannot serialize %s", format.ErrUnsupportedKind, FormatName, rec.RecordKind())
}

// baseOf returns the final path element without touching the filesystem.
func baseOf(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}

// foreignMetaWarnings lists metadata keys written by other formats that
// this format has no representation for. The values are not read; only
// the key names are reported, keeping the cross-format read discipline.
func foreignMetaWarnings(meta canonical.Metadata, ownPrefix string) []string {
	keys := make([]string, 0, len(meta))
	for key := range meta {
		if !strings.HasPrefix(key, ownPrefix) {
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
