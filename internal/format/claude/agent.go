package claude

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/agentsync/agsync/internal/canonical"
	"github.com/agentsync/agsync/internal/format"
	"github.com/agentsync/agsync/internal/frontmatter"
)

// agentHeader is the YAML frontmatter of a Claude agent file.
// Field order here is serialization order.
type agentHeader struct {
	Name           string `yaml:"name"`
	Description    string `yaml:"description"`
	Tools          any    `yaml:"tools,omitempty"` // comma-separated string, historically also a list
	Model          string `yaml:"model,omitempty"`
	PermissionMode string `yaml:"permissionMode,omitempty"`
	Skills         any    `yaml:"skills,omitempty"`
}

func (a *Adapter) agentToCanonical(content []byte) (*format.Result, error) {
	header, body, err := frontmatter.Split(string(content))
	if err != nil {
		return nil, fmt.Errorf("%w: no YAML frontmatter in claude agent file", format.ErrMalformed)
	}

	var h agentHeader
	if err := yaml.Unmarshal([]byte(header), &h); err != nil {
		return nil, fmt.Errorf("%w: invalid YAML frontmatter: %v", format.ErrMalformed, err)
	}

	agent := &canonical.Agent{
		Name:         h.Name,
		Description:  h.Description,
		Instructions: body,
		Tools:        parseTools(h.Tools),
		Model:        normalizeModel(h.Model),
	}

	// "inherit" means no model is pinned; remember the spelling so a
	// round trip back to claude reproduces it.
	if strings.EqualFold(h.Model, "inherit") {
		agent.Model = ""
		agent.Meta = agent.Meta.Set(metaModel, "inherit")
	}
	if h.PermissionMode != "" {
		agent.Meta = agent.Meta.Set(metaPermissionMode, h.PermissionMode)
	}
	if h.Skills != nil {
		agent.Meta = agent.Meta.Set(metaSkills, h.Skills)
	}

	return &format.Result{Record: agent}, nil
}

func (a *Adapter) agentFromCanonical(agent *canonical.Agent) (*format.Result, []byte, error) {
	h := agentHeader{
		Name:        agent.Name,
		Description: agent.Description,
	}
	if len(agent.Tools) > 0 {
		h.Tools = strings.Join(agent.Tools, ", ")
	}
	if agent.Model != "" {
		h.Model = agent.Model
	} else if v, ok := agent.Meta.Get(metaModel).(string); ok {
		h.Model = v
	}
	if v, ok := agent.Meta.Get(metaPermissionMode).(string); ok {
		h.PermissionMode = v
	}
	if v := agent.Meta.Get(metaSkills); v != nil {
		h.Skills = v
	}

	header, err := yaml.Marshal(&h)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to serialize claude frontmatter: %w", err)
	}

	res := &format.Result{Warnings: foreignMetaWarnings(agent.Meta, "claude.")}
	out := frontmatter.Join(string(header), agent.Instructions)
	return res, []byte(out), nil
}

// parseTools accepts the comma-separated string form ("Read, Grep, Bash")
// as well as the list form some older files use.
func parseTools(v any) []string {
	switch t := v.(type) {
	case string:
		var tools []string
		for _, part := range strings.Split(t, ",") {
			if part = strings.TrimSpace(part); part != "" {
				tools = append(tools, part)
			}
		}
		return tools
	case []any:
		var tools []string
		for _, item := range t {
			if s, ok := item.(string); ok && s != "" {
				tools = append(tools, s)
			}
		}
		return tools
	}
	return nil
}

// normalizeModel lowercases the model name. Claude's short names are
// already the canonical form.
func normalizeModel(model string) string {
	return strings.ToLower(strings.TrimSpace(model))
}
