// Package format defines the adapter contract shared by every supported
// configuration format, plus the registry that resolves format names and
// file paths to adapters.
//
// The design keeps the converter count linear in the number of formats:
// each format implements one adapter that converts to and from the
// canonical model, instead of N² pairwise converters.
//
// # Usage
//
//	reg := format.NewRegistry()
//	reg.Register(claude.New())
//
//	a, err := reg.Resolve("claude")
//	if err != nil {
//	    return err
//	}
//
//	res, err := a.ToCanonical(content, canonical.KindAgent)
//	if err != nil {
//	    return err
//	}
//
// # Implementations
//
//   - internal/format/claude: Claude Code (.md agents, settings.json perms)
//   - internal/format/copilot: GitHub Copilot (.agent.md, toggle perms)
//   - internal/format/codex: Codex (TOML agent profiles, markdown prompts)
package format

import (
	"path/filepath"
	"strings"

	"github.com/agentsync/agsync/internal/canonical"
)

// Options configures FromCanonical output. Each adapter honors only the
// options it understands and ignores the rest.
type Options struct {
	// AddArgumentHint derives an argument-hint field from the record's
	// description when the record carries none (copilot agents only).
	AddArgumentHint bool

	// AddHandoffs appends a placeholder hand-off block (copilot agents only).
	AddHandoffs bool
}

// Result is the outcome of a conversion in either direction.
//
// Warnings record lossy findings: dropped fields, degraded deny rules,
// collapsed split approvals. They are informational and never block the
// conversion; callers surface them but must not treat them as errors.
type Result struct {
	// Record is the canonical record produced by ToCanonical.
	// Nil for FromCanonical results.
	Record canonical.Record

	// Warnings describes information lost or degraded by the conversion.
	Warnings []string
}

// Adapter converts one concrete format to and from the canonical model.
//
// Implementations must be stateless with respect to conversions: a failed
// ToCanonical must not leave partial state behind, and FromCanonical must
// be deterministic - the same record and options always serialize to
// identical bytes. Determinism is what makes repeated syncs idempotent.
type Adapter interface {
	// Name returns the unique format name used on the CLI (e.g. "claude").
	Name() string

	// Supports reports whether this format can represent the record kind.
	Supports(kind canonical.Kind) bool

	// Extension returns the file suffix this format uses for the kind,
	// including the leading dot (e.g. ".agent.md", ".perm.json").
	// The suffix is what discovery strips to obtain the base name.
	Extension(kind canonical.Kind) string

	// CanHandle reports whether the file at path belongs to this format,
	// judged by name and suffix only. Used by the registry for detection.
	CanHandle(path string) bool

	// ToCanonical parses raw content into a canonical record.
	// Returns an error wrapping ErrMalformed when required structural
	// markers are absent or unparsable.
	ToCanonical(content []byte, kind canonical.Kind) (*Result, error)

	// FromCanonical serializes a canonical record into this format.
	// The Result carries any degradation warnings.
	FromCanonical(rec canonical.Record, opts Options) (*Result, []byte, error)
}

// BaseName strips the adapter's extension for the kind from the file name,
// yielding the format-independent identifier used to match file pairs.
//
// Returns ok=false when the file name does not carry the expected suffix.
func BaseName(path string, a Adapter, kind canonical.Kind) (string, bool) {
	name := filepath.Base(path)
	ext := a.Extension(kind)
	if ext == "" || !strings.HasSuffix(name, ext) || len(name) == len(ext) {
		return "", false
	}
	return strings.TrimSuffix(name, ext), true
}

// FileName joins a base name with the adapter's extension for the kind.
func FileName(base string, a Adapter, kind canonical.Kind) string {
	return base + a.Extension(kind)
}
