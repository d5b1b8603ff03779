package sync

import (
	"fmt"

	"github.com/agentsync/agsync/internal/state"
)

// Direction restricts which way changes may flow during a run.
type Direction string

const (
	// DirectionBoth propagates changes in whichever direction they occurred.
	DirectionBoth Direction = "both"

	// DirectionSourceToTarget only writes into the target directory.
	DirectionSourceToTarget Direction = "source-to-target"

	// DirectionTargetToSource only writes into the source directory.
	DirectionTargetToSource Direction = "target-to-source"
)

// ParseDirection converts a CLI direction value to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case DirectionBoth, DirectionSourceToTarget, DirectionTargetToSource:
		return Direction(s), nil
	}
	return "", fmt.Errorf("unknown direction: %q (want source-to-target, target-to-source, or both)", s)
}

// Action is the sync action required for one base name.
// The string values are the action codes persisted in the ledger.
type Action string

const (
	// ActionNone means the pair is already in sync.
	ActionNone Action = "none"

	// ActionCreateTarget converts the source file into a new target file.
	ActionCreateTarget Action = "create-target"

	// ActionCreateSource converts the target file into a new source file.
	ActionCreateSource Action = "create-source"

	// ActionPropagateToTarget re-converts a modified source over the target.
	ActionPropagateToTarget Action = "propagate-to-target"

	// ActionPropagateToSource re-converts a modified target over the source.
	ActionPropagateToSource Action = "propagate-to-source"

	// ActionDeleteTarget mirrors a source deletion onto the target.
	ActionDeleteTarget Action = "delete-target"

	// ActionDeleteSource mirrors a target deletion onto the source.
	ActionDeleteSource Action = "delete-source"

	// ActionDropEntry removes a ledger entry whose file is gone on both
	// sides. No file I/O is performed.
	ActionDropEntry Action = "drop-entry"

	// ActionConflict means both sides changed since the last recorded
	// sync and a resolution policy must decide.
	ActionConflict Action = "conflict"
)

// ClassifyInput is the complete filesystem-and-ledger state for one base
// name. Mtimes are Unix nanoseconds; zero means the side does not exist.
type ClassifyInput struct {
	SourceExists bool
	TargetExists bool
	SourceMtime  int64
	TargetMtime  int64

	// Entry is the stored ledger entry, nil if never synced.
	Entry *state.Entry
}

// Classify decides the required action for one base name.
//
// It is a pure function of the input: no filesystem access, no ledger
// mutation. The returned reason is a short human-readable explanation
// for verbose output.
//
// An absent ledger entry means "never synced" and is treated identically
// to "both sides are new".
func Classify(in ClassifyInput) (Action, string) {
	switch {
	case in.Entry == nil:
		switch {
		case in.SourceExists && !in.TargetExists:
			return ActionCreateTarget, "new source file"
		case !in.SourceExists && in.TargetExists:
			return ActionCreateSource, "new target file"
		case in.SourceExists && in.TargetExists:
			return ActionConflict, "both sides new, never synced"
		default:
			return ActionNone, "nothing to sync"
		}

	case !in.SourceExists && !in.TargetExists:
		return ActionDropEntry, "deleted on both sides"

	case !in.SourceExists:
		return ActionDeleteTarget, "source deleted"

	case !in.TargetExists:
		return ActionDeleteSource, "target deleted"
	}

	sourceChanged := in.SourceMtime > in.Entry.SourceMtime
	targetChanged := in.TargetMtime > in.Entry.TargetMtime

	switch {
	case sourceChanged && targetChanged:
		return ActionConflict, "both sides modified since last sync"
	case sourceChanged:
		return ActionPropagateToTarget, "source modified"
	case targetChanged:
		return ActionPropagateToSource, "target modified"
	}
	return ActionNone, "no changes since last sync"
}

// applyDirection filters a classified action through the configured
// direction. Suppressed actions become ActionNone: a one-directional run
// never writes into, or deletes from, the configured source of truth.
func applyDirection(action Action, dir Direction) (Action, bool) {
	if dir == DirectionBoth {
		return action, false
	}

	switch dir {
	case DirectionSourceToTarget:
		switch action {
		case ActionCreateSource, ActionPropagateToSource, ActionDeleteSource:
			return ActionNone, true
		}
	case DirectionTargetToSource:
		switch action {
		case ActionCreateTarget, ActionPropagateToTarget, ActionDeleteTarget:
			return ActionNone, true
		}
	}
	return action, false
}
