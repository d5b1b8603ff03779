package sync

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/agentsync/agsync/internal/canonical"
	"github.com/agentsync/agsync/internal/format"
	"github.com/agentsync/agsync/internal/state"
)

// Options configures a sync run between one source and one target
// directory.
type Options struct {
	SourceDir string
	TargetDir string

	// SourceFormat and TargetFormat are registry names.
	SourceFormat string
	TargetFormat string

	// Kind selects which artifact kind this run syncs.
	Kind canonical.Kind

	// Direction restricts change flow. Defaults to DirectionBoth.
	Direction Direction

	// DryRun classifies and converts but never writes files, never
	// deletes files, and never touches the ledger.
	DryRun bool

	// Force resolves conflicts without prompting: the newer side wins,
	// ties go to the source. Overrides Resolver.
	Force bool

	// Convert carries per-conversion options through to the target
	// adapter (argument hints, handoff stubs).
	Convert format.Options

	// Resolver decides conflicts. Nil means skip every conflict.
	Resolver Resolver

	// Logger receives per-file progress lines. Nil disables logging.
	Logger *log.Logger

	// Now is the clock used for ledger timestamps. Nil means time.Now.
	Now func() time.Time
}

// Stats counts what a run did, for the end-of-run summary.
type Stats struct {
	ToTarget  int // files created or updated in the target directory
	ToSource  int // files created or updated in the source directory
	Deleted   int // files removed to mirror a deletion
	Conflicts int // base names where both sides changed
	Skipped   int // base names left untouched
	Errors    int // base names that failed with an I/O or encode error
}

// Outcome records what happened to one base name during a run.
type Outcome struct {
	Base     string
	Action   Action
	Reason   string
	Warnings []string
	Err      error
}

// Report is the full result of a run.
type Report struct {
	Stats    Stats
	Outcomes []Outcome
}

// Engine orchestrates one directory pair: it discovers files on both
// sides, classifies each base name against the ledger, resolves
// conflicts, executes conversions and deletions, and records results.
type Engine struct {
	opts   Options
	store  *state.Store
	source format.Adapter
	target format.Adapter
	logger *log.Logger
	now    func() time.Time
}

// New validates the options, resolves both adapters, and returns an
// engine ready to run.
func New(reg *format.Registry, store *state.Store, opts Options) (*Engine, error) {
	for _, dir := range []string{opts.SourceDir, opts.TargetDir} {
		info, err := os.Stat(dir)
		if err != nil {
			return nil, fmt.Errorf("cannot access directory %s: %w", dir, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%s is not a directory", dir)
		}
	}

	if opts.Kind == "" {
		opts.Kind = canonical.KindAgent
	}
	if opts.Direction == "" {
		opts.Direction = DirectionBoth
	}

	source, err := reg.Resolve(opts.SourceFormat)
	if err != nil {
		return nil, err
	}
	target, err := reg.Resolve(opts.TargetFormat)
	if err != nil {
		return nil, err
	}
	for _, a := range []format.Adapter{source, target} {
		if !a.Supports(opts.Kind) {
			return nil, fmt.Errorf("%w: format %s does not support %s", format.ErrUnsupportedKind, a.Name(), opts.Kind)
		}
	}

	if opts.Force {
		opts.Resolver = ForcedResolver{}
	}

	e := &Engine{
		opts:   opts,
		store:  store,
		source: source,
		target: target,
		logger: opts.Logger,
		now:    opts.Now,
	}
	if e.now == nil {
		e.now = time.Now
	}
	return e, nil
}

// fileInfo is one discovered file on either side of the pair.
type fileInfo struct {
	path  string
	mtime time.Time
}

// Run executes the sync and returns a report. A non-nil report is
// returned even alongside an error so partial progress is visible.
func (e *Engine) Run(ctx context.Context) (*Report, error) {
	report := &Report{}
	pairKey := state.PairKey(e.opts.SourceDir, e.opts.TargetDir)

	sourceFiles, err := e.discover(e.opts.SourceDir, e.source)
	if err != nil {
		return report, err
	}
	targetFiles, err := e.discover(e.opts.TargetDir, e.target)
	if err != nil {
		return report, err
	}

	// The working set is every base name seen on either side, plus every
	// name the ledger still tracks: a name deleted on both sides only
	// shows up through its stale entry.
	seen := make(map[string]bool)
	var bases []string
	for base := range sourceFiles {
		if !seen[base] {
			seen[base] = true
			bases = append(bases, base)
		}
	}
	for base := range targetFiles {
		if !seen[base] {
			seen[base] = true
			bases = append(bases, base)
		}
	}
	for _, base := range e.store.Bases(pairKey) {
		if !seen[base] {
			seen[base] = true
			bases = append(bases, base)
		}
	}
	sort.Strings(bases)

	for _, base := range bases {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		src, srcOK := sourceFiles[base]
		dst, dstOK := targetFiles[base]

		in := ClassifyInput{
			SourceExists: srcOK,
			TargetExists: dstOK,
		}
		if srcOK {
			in.SourceMtime = src.mtime.UnixNano()
		}
		if dstOK {
			in.TargetMtime = dst.mtime.UnixNano()
		}
		if entry, ok := e.store.Entry(pairKey, base); ok {
			in.Entry = &entry
		}

		action, reason := Classify(in)
		action, suppressed := applyDirection(action, e.opts.Direction)
		if suppressed {
			reason += " (suppressed by direction)"
		}

		if action == ActionConflict {
			report.Stats.Conflicts++
			resolved, rreason, err := e.resolveConflict(base, src, dst)
			if err != nil {
				report.Stats.Errors++
				report.Outcomes = append(report.Outcomes, Outcome{Base: base, Action: action, Reason: reason, Err: err})
				return report, err
			}
			action = resolved
			if rreason != "" {
				reason = rreason
			}
			// A resolution that would flow against the configured
			// direction degrades to a skip rather than violating it.
			if action, suppressed = applyDirection(action, e.opts.Direction); suppressed {
				reason = "conflict resolution suppressed by direction"
			}
		}

		outcome := e.execute(pairKey, base, action, reason, src, dst)
		report.Outcomes = append(report.Outcomes, outcome)
		e.count(&report.Stats, outcome)
		e.logOutcome(outcome)
	}

	if !e.opts.DryRun {
		if err := e.store.Save(); err != nil {
			return report, err
		}
	}
	return report, nil
}

// discover lists the files in dir carrying the adapter's extension for
// the configured kind, keyed by base name.
//
// Matching is by extension alone. The directory's format is explicitly
// configured, so the name-based detection predicate (Adapter.CanHandle,
// which serves Registry.Detect) plays no part here: it is narrower than
// Extension for some formats and would miss files this run itself wrote.
func (e *Engine) discover(dir string, a format.Adapter) (map[string]fileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot read directory %s: %w", dir, err)
	}

	files := make(map[string]fileInfo)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		base, ok := format.BaseName(entry.Name(), a, e.opts.Kind)
		if !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("cannot stat %s: %w", filepath.Join(dir, entry.Name()), err)
		}
		files[base] = fileInfo{
			path:  filepath.Join(dir, entry.Name()),
			mtime: info.ModTime(),
		}
	}
	return files, nil
}

// resolveConflict consults the configured resolver and maps its choice
// onto a propagate action. No resolver means skip.
func (e *Engine) resolveConflict(base string, src, dst fileInfo) (Action, string, error) {
	if e.opts.Resolver == nil {
		return ActionNone, "conflict skipped: no resolution policy", nil
	}

	choice, err := e.opts.Resolver.Resolve(Conflict{
		Base:        base,
		SourcePath:  src.path,
		TargetPath:  dst.path,
		SourceMtime: src.mtime,
		TargetMtime: dst.mtime,
	})
	if err != nil {
		return ActionNone, "", err
	}

	action := choiceAction(choice)
	if action == ActionNone {
		return ActionNone, "conflict skipped", nil
	}
	return action, "conflict resolved: " + string(action), nil
}

// execute performs the classified action for one base name. File and
// encode errors are contained per base: the outcome carries the error
// and the ledger entry is left untouched so the next run retries.
func (e *Engine) execute(pairKey, base string, action Action, reason string, src, dst fileInfo) Outcome {
	out := Outcome{Base: base, Action: action, Reason: reason}

	switch action {
	case ActionNone:
		return out

	case ActionCreateTarget, ActionPropagateToTarget:
		e.convert(pairKey, base, action, &out,
			e.source, e.target, src.path, dst.path, e.opts.TargetDir)

	case ActionCreateSource, ActionPropagateToSource:
		e.convert(pairKey, base, action, &out,
			e.target, e.source, dst.path, src.path, e.opts.SourceDir)

	case ActionDeleteTarget:
		e.remove(pairKey, base, dst.path, &out)

	case ActionDeleteSource:
		e.remove(pairKey, base, src.path, &out)

	case ActionDropEntry:
		if !e.opts.DryRun {
			e.store.Remove(pairKey, base)
		}
	}
	return out
}

// convert reads the file on the from side, round-trips it through the
// canonical model, and writes the result on the to side. On success the
// ledger entry is refreshed with the post-write mtimes of both files.
func (e *Engine) convert(pairKey, base string, action Action, out *Outcome,
	from, to format.Adapter, fromPath, toPath, toDir string) {

	content, err := os.ReadFile(fromPath)
	if err != nil {
		out.Err = fmt.Errorf("cannot read %s: %w", fromPath, err)
		return
	}

	parsed, err := from.ToCanonical(content, e.opts.Kind)
	if err != nil {
		if format.IsSkippable(err) {
			out.Action = ActionNone
			out.Reason = "skipped: " + err.Error()
			out.Warnings = append(out.Warnings, fmt.Sprintf("%s: %v", base, err))
			return
		}
		out.Err = err
		return
	}
	out.Warnings = append(out.Warnings, prefixWarnings(base, parsed.Warnings)...)

	fillName(parsed.Record, base)
	if err := parsed.Record.Validate(); err != nil {
		out.Action = ActionNone
		out.Reason = "skipped: invalid record"
		out.Warnings = append(out.Warnings, fmt.Sprintf("%s: %v", base, err))
		return
	}

	emitted, data, err := to.FromCanonical(parsed.Record, e.opts.Convert)
	if err != nil {
		out.Err = err
		return
	}
	out.Warnings = append(out.Warnings, prefixWarnings(base, emitted.Warnings)...)

	if toPath == "" {
		toPath = filepath.Join(toDir, format.FileName(base, to, e.opts.Kind))
	}
	if e.opts.DryRun {
		return
	}

	if err := os.WriteFile(toPath, data, 0o644); err != nil {
		out.Err = fmt.Errorf("cannot write %s: %w", toPath, err)
		return
	}

	entry, err := e.ledgerEntry(base, action)
	if err != nil {
		out.Err = err
		return
	}
	e.store.Put(pairKey, base, entry)
}

// remove mirrors a deletion onto path and drops the ledger entry.
func (e *Engine) remove(pairKey, base, path string, out *Outcome) {
	if e.opts.DryRun {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		out.Err = fmt.Errorf("cannot remove %s: %w", path, err)
		return
	}
	e.store.Remove(pairKey, base)
}

// ledgerEntry re-stats both sides of a base name after a write so the
// stored mtimes reflect what is actually on disk.
func (e *Engine) ledgerEntry(base string, action Action) (state.Entry, error) {
	entry := state.Entry{
		LastAction:   string(action),
		LastSyncTime: e.now(),
	}

	srcPath := filepath.Join(e.opts.SourceDir, format.FileName(base, e.source, e.opts.Kind))
	if info, err := os.Stat(srcPath); err == nil {
		entry.SourceMtime = info.ModTime().UnixNano()
	} else if !os.IsNotExist(err) {
		return entry, fmt.Errorf("cannot stat %s: %w", srcPath, err)
	}

	dstPath := filepath.Join(e.opts.TargetDir, format.FileName(base, e.target, e.opts.Kind))
	if info, err := os.Stat(dstPath); err == nil {
		entry.TargetMtime = info.ModTime().UnixNano()
	} else if !os.IsNotExist(err) {
		return entry, fmt.Errorf("cannot stat %s: %w", dstPath, err)
	}
	return entry, nil
}

// count folds one outcome into the run statistics.
func (e *Engine) count(stats *Stats, out Outcome) {
	if out.Err != nil {
		stats.Errors++
		return
	}
	switch out.Action {
	case ActionCreateTarget, ActionPropagateToTarget:
		stats.ToTarget++
	case ActionCreateSource, ActionPropagateToSource:
		stats.ToSource++
	case ActionDeleteTarget, ActionDeleteSource:
		stats.Deleted++
	case ActionNone:
		stats.Skipped++
	}
}

func (e *Engine) logOutcome(out Outcome) {
	if e.logger == nil {
		return
	}
	switch {
	case out.Err != nil:
		e.logger.Printf("error: %s: %v", out.Base, out.Err)
	case out.Action == ActionNone:
		e.logger.Printf("skip: %s: %s", out.Base, out.Reason)
	default:
		e.logger.Printf("%s: %s: %s", out.Action, out.Base, out.Reason)
	}
	for _, w := range out.Warnings {
		e.logger.Printf("warning: %s", w)
	}
}

// fillName backfills a record name from the file base name for formats
// that carry the name only in the file name.
func fillName(rec canonical.Record, base string) {
	switch r := rec.(type) {
	case *canonical.Agent:
		if r.Name == "" {
			r.Name = base
		}
	case *canonical.SlashCommand:
		if r.Name == "" {
			r.Name = base
		}
	}
}

// prefixWarnings qualifies adapter warnings with the base name they
// belong to so a run-level summary stays readable.
func prefixWarnings(base string, warnings []string) []string {
	if len(warnings) == 0 {
		return nil
	}
	prefixed := make([]string, 0, len(warnings))
	for _, w := range warnings {
		prefixed = append(prefixed, base+": "+w)
	}
	return prefixed
}
