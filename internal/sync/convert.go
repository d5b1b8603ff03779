package sync

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentsync/agsync/internal/canonical"
	"github.com/agentsync/agsync/internal/format"
)

// ConvertRequest describes a one-shot, ledger-free conversion of a
// single file between two formats.
type ConvertRequest struct {
	// Path is the input file.
	Path string

	// From is the source format registry name. Empty means detect from
	// the file name.
	From string

	// To is the target format registry name.
	To string

	// Kind selects the artifact kind.
	Kind canonical.Kind

	// Output is the destination path. Empty means do not write a file;
	// the converted bytes are returned for the caller to print.
	Output string

	// Options carries per-conversion options to the target adapter.
	Options format.Options
}

// ConvertResult carries the converted bytes, where they were written
// (empty when destined for stdout), and what the conversion dropped.
type ConvertResult struct {
	OutputPath string
	Data       []byte
	Warnings   []string
}

// ConvertFile converts one file between formats without consulting or
// updating any ledger. It backs the one-shot convert command.
func ConvertFile(reg *format.Registry, req ConvertRequest) (*ConvertResult, error) {
	var from format.Adapter
	var err error
	if req.From == "" {
		from, err = reg.Detect(req.Path)
	} else {
		from, err = reg.Resolve(req.From)
	}
	if err != nil {
		return nil, err
	}

	to, err := reg.Resolve(req.To)
	if err != nil {
		return nil, err
	}
	for _, a := range []format.Adapter{from, to} {
		if !a.Supports(req.Kind) {
			return nil, fmt.Errorf("%w: format %s does not support %s", format.ErrUnsupportedKind, a.Name(), req.Kind)
		}
	}

	content, err := os.ReadFile(req.Path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", req.Path, err)
	}

	parsed, err := from.ToCanonical(content, req.Kind)
	if err != nil {
		return nil, err
	}

	base, ok := format.BaseName(filepath.Base(req.Path), from, req.Kind)
	if !ok {
		base = strings.TrimSuffix(filepath.Base(req.Path), filepath.Ext(req.Path))
	}
	fillName(parsed.Record, base)
	if err := parsed.Record.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s record in %s: %w", req.Kind, req.Path, err)
	}

	emitted, data, err := to.FromCanonical(parsed.Record, req.Options)
	if err != nil {
		return nil, err
	}

	res := &ConvertResult{Data: data}
	res.Warnings = append(res.Warnings, parsed.Warnings...)
	res.Warnings = append(res.Warnings, emitted.Warnings...)

	if req.Output != "" {
		if err := os.WriteFile(req.Output, data, 0o644); err != nil {
			return nil, fmt.Errorf("cannot write %s: %w", req.Output, err)
		}
		res.OutputPath = req.Output
	}
	return res, nil
}
