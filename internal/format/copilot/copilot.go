// Package copilot implements the format adapter for GitHub Copilot
// configuration files.
//
// On-disk shapes:
//
//   - Agents: <name>.agent.md with YAML frontmatter (name, description,
//     tools as a list, model display name, target, argument-hint, handoffs,
//     mcp-servers) followed by the instruction body.
//   - Permissions: <name>.perm.json in the VS Code settings shape, with a
//     per-pattern auto-approve toggle for terminal commands and split
//     request/response approvals for network domains.
//   - Slash commands: <name>.prompt.md with YAML frontmatter (description,
//     argument-hint) followed by the prompt body.
//
// Copilot's permission model is a toggle: true means auto-approve, false
// means prompt. It cannot refuse outright, so canonical deny rules degrade
// to false (ask) on the way in, always with a recorded warning, and are
// never reconstructed on the way back out.
package copilot

import (
	"fmt"
	"strings"

	"github.com/agentsync/agsync/internal/canonical"
	"github.com/agentsync/agsync/internal/format"
)

// FormatName is the registry name for this adapter.
const FormatName = "copilot"

// Metadata keys written and read by this adapter.
const (
	metaArgumentHint = "copilot.argumentHint"
	metaTarget       = "copilot.target"
	metaHandoffs     = "copilot.handoffs"
	metaMCPServers   = "copilot.mcpServers"
	metaModel        = "copilot.model"
	metaRequest      = canonical.MetaCopilotRequest
	metaResponse     = canonical.MetaCopilotResponse
)

// Adapter converts GitHub Copilot files to and from the canonical model.
type Adapter struct{}

// New creates the Copilot adapter.
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
	switch kind {
	case canonical.KindPermission:
		return ".perm.json"
	case canonical.KindSlashCommand:
		return ".prompt.md"
	}
	return ".agent.md"
}

// CanHandle implements format.Adapter.
func (a *Adapter) CanHandle(path string) bool {
	name := baseOf(path)
	return strings.HasSuffix(name, ".agent.md") ||
		strings.HasSuffix(name, ".prompt.md") ||
		strings.HasSuffix(name, ".perm.json")
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
		return a.agentFromCanonical(r, opts)
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
