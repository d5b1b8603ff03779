package claude

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/agentsync/agsync/internal/canonical"
	"github.com/agentsync/agsync/internal/format"
	"github.com/agentsync/agsync/internal/frontmatter"
)

// commandHeader is the YAML frontmatter of a Claude slash-command file.
// The command name comes from the file's base name, not the frontmatter.
type commandHeader struct {
	Description  string `yaml:"description,omitempty"`
	ArgumentHint string `yaml:"argument-hint,omitempty"`
}

func (a *Adapter) commandToCanonical(content []byte) (*format.Result, error) {
	header, body, err := frontmatter.Split(string(content))
	if err != nil {
		return nil, fmt.Errorf("%w: no YAML frontmatter in claude command file", format.ErrMalformed)
	}

	var h commandHeader
	if err := yaml.Unmarshal([]byte(header), &h); err != nil {
		return nil, fmt.Errorf("%w: invalid YAML frontmatter: %v", format.ErrMalformed, err)
	}

	cmd := &canonical.SlashCommand{
		Description:  h.Description,
		Prompt:       body,
		ArgumentHint: h.ArgumentHint,
	}
	return &format.Result{Record: cmd}, nil
}

func (a *Adapter) commandFromCanonical(cmd *canonical.SlashCommand) (*format.Result, []byte, error) {
	h := commandHeader{
		Description:  cmd.Description,
		ArgumentHint: cmd.ArgumentHint,
	}

	var header string
	if h != (commandHeader{}) {
		b, err := yaml.Marshal(&h)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to serialize claude frontmatter: %w", err)
		}
		header = string(b)
	}

	res := &format.Result{Warnings: foreignMetaWarnings(cmd.Meta, "claude.")}
	out := frontmatter.Join(header, cmd.Prompt)
	return res, []byte(out), nil
}
