package canonical

import "fmt"

// SlashCommand is the canonical representation of a slash-command prompt.
type SlashCommand struct {
	// Name is the command name without the leading slash.
	Name string

	// Description is a short human-readable summary.
	Description string

	// Prompt is the prompt body text.
	Prompt string

	// ArgumentHint describes expected arguments, empty if none.
	ArgumentHint string

	// Meta holds format-specific fields with no canonical home.
	Meta Metadata
}

// RecordKind implements Record.
func (c *SlashCommand) RecordKind() Kind { return KindSlashCommand }

// Validate implements Record.
func (c *SlashCommand) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("slash command name is required")
	}
	return nil
}
