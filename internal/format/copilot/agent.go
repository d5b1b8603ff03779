package copilot

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/agentsync/agsync/internal/canonical"
	"github.com/agentsync/agsync/internal/format"
	"github.com/agentsync/agsync/internal/frontmatter"
)

// Model display-name mappings between copilot and the canonical short names.
var (
	canonicalToCopilotModels = map[string]string{
		"sonnet": "Claude Sonnet 4",
		"opus":   "Claude Opus 4",
		"haiku":  "Claude Haiku 4",
	}
	copilotToCanonicalModels = map[string]string{
		"claude sonnet 4": "sonnet",
		"claude opus 4":   "opus",
		"claude haiku 4":  "haiku",
	}
)

// agentHeader is the YAML frontmatter of a Copilot agent file.
// Field order here is serialization order.
type agentHeader struct {
	Name         string    `yaml:"name,omitempty"`
	Description  string    `yaml:"description,omitempty"`
	ArgumentHint string    `yaml:"argument-hint,omitempty"`
	Tools        []string  `yaml:"tools,omitempty"`
	Model        string    `yaml:"model,omitempty"`
	Target       string    `yaml:"target,omitempty"`
	Handoffs     []Handoff `yaml:"handoffs,omitempty"`
	MCPServers   []string  `yaml:"mcp-servers,omitempty"`
}

// Handoff is a Copilot hand-off block entry. It has no canonical home and
// rides in record metadata between conversions.
type Handoff struct {
	Label  string `yaml:"label"`
	Agent  string `yaml:"agent"`
	Prompt string `yaml:"prompt"`
	Send   bool   `yaml:"send"`
}

func (a *Adapter) agentToCanonical(content []byte) (*format.Result, error) {
	header, body, err := frontmatter.Split(string(content))
	if err != nil {
		return nil, fmt.Errorf("%w: no YAML frontmatter in copilot agent file", format.ErrMalformed)
	}

	var h agentHeader
	if err := yaml.Unmarshal([]byte(header), &h); err != nil {
		return nil, fmt.Errorf("%w: invalid YAML frontmatter: %v", format.ErrMalformed, err)
	}

	agent := &canonical.Agent{
		Name:         h.Name,
		Description:  h.Description,
		Instructions: body,
		Tools:        h.Tools,
		Model:        normalizeModel(h.Model),
	}

	// Copilot-only fields ride in metadata so a round trip back to
	// copilot reproduces them exactly.
	if h.Model != "" {
		agent.Meta = agent.Meta.Set(metaModel, h.Model)
	}
	if h.ArgumentHint != "" {
		agent.Meta = agent.Meta.Set(metaArgumentHint, h.ArgumentHint)
	}
	if h.Target != "" {
		agent.Meta = agent.Meta.Set(metaTarget, h.Target)
	}
	if len(h.Handoffs) > 0 {
		agent.Meta = agent.Meta.Set(metaHandoffs, h.Handoffs)
	}
	if len(h.MCPServers) > 0 {
		agent.Meta = agent.Meta.Set(metaMCPServers, h.MCPServers)
	}

	return &format.Result{Record: agent}, nil
}

func (a *Adapter) agentFromCanonical(agent *canonical.Agent, opts format.Options) (*format.Result, []byte, error) {
	res := &format.Result{}

	h := agentHeader{
		Name:        agent.Name,
		Description: agent.Description,
		Tools:       agent.Tools,
		Model:       denormalizeModel(agent),
		Target:      "vscode",
	}
	if v, ok := agent.Meta.Get(metaTarget).(string); ok {
		h.Target = v
	}
	if v, ok := agent.Meta.Get(metaArgumentHint).(string); ok {
		h.ArgumentHint = v
	} else if opts.AddArgumentHint {
		h.ArgumentHint = agent.Description
	}
	if v, ok := agent.Meta.Get(metaHandoffs).([]Handoff); ok {
		h.Handoffs = v
	} else if opts.AddHandoffs {
		h.Handoffs = []Handoff{{
			Label:  "Next Step",
			Agent:  "agent",
			Prompt: "Continue with the next step",
			Send:   false,
		}}
	}
	if v, ok := agent.Meta.Get(metaMCPServers).([]string); ok {
		h.MCPServers = v
	}

	res.Warnings = foreignMetaWarnings(agent.Meta)

	header, err := yaml.Marshal(&h)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to serialize copilot frontmatter: %w", err)
	}
	out := frontmatter.Join(string(header), agent.Instructions)
	return res, []byte(out), nil
}

// normalizeModel maps a copilot display name to the canonical short name.
// Unknown names pass through lowercased.
func normalizeModel(model string) string {
	model = strings.TrimSpace(model)
	if model == "" {
		return ""
	}
	if short, ok := copilotToCanonicalModels[strings.ToLower(model)]; ok {
		return short
	}
	return strings.ToLower(model)
}

// denormalizeModel maps the canonical short name back to the copilot
// display name, preferring the verbatim spelling preserved in metadata.
func denormalizeModel(agent *canonical.Agent) string {
	if v, ok := agent.Meta.Get(metaModel).(string); ok {
		return v
	}
	if display, ok := canonicalToCopilotModels[agent.Model]; ok {
		return display
	}
	return agent.Model
}

// foreignMetaWarnings lists metadata keys written by other formats that
// copilot has no representation for. Only key names are reported; the
// values stay unread per the cross-format metadata discipline.
func foreignMetaWarnings(meta canonical.Metadata) []string {
	keys := make([]string, 0, len(meta))
	for key := range meta {
		if !strings.HasPrefix(key, "copilot.") {
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
