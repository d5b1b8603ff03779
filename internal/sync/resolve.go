package sync

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// Choice is a conflict resolution decision.
type Choice int

const (
	// ChoiceSkip leaves both files and the ledger entry untouched.
	ChoiceSkip Choice = iota

	// ChoiceSource propagates the source version over the target.
	ChoiceSource

	// ChoiceTarget propagates the target version over the source.
	ChoiceTarget
)

// Conflict describes a base name that changed on both sides since the
// last recorded sync.
type Conflict struct {
	Base        string
	SourcePath  string
	TargetPath  string
	SourceMtime time.Time
	TargetMtime time.Time
}

// Resolver decides which side of a conflict wins.
//
// The orchestrator calls this abstractly so a test harness can supply a
// scripted, non-interactive implementation.
type Resolver interface {
	// Resolve returns the winning side, or ChoiceSkip to leave the pair
	// untouched. An error aborts the whole run.
	Resolve(c Conflict) (Choice, error)
}

// ForcedResolver deterministically picks the side with the strictly
// greater modification time. Exact ties go to the source side.
type ForcedResolver struct{}

// Resolve implements Resolver.
func (ForcedResolver) Resolve(c Conflict) (Choice, error) {
	if c.TargetMtime.After(c.SourceMtime) {
		return ChoiceTarget, nil
	}
	// Source newer, or exact tie: source wins.
	return ChoiceSource, nil
}

// InteractiveResolver prompts the user to pick a side, showing both
// candidates with their modification times. Declining records the pair
// as skipped.
//
// When stdin is not a terminal the resolver skips without prompting, so
// piped or scripted invocations never hang.
type InteractiveResolver struct{}

// Resolve implements Resolver.
func (InteractiveResolver) Resolve(c Conflict) (Choice, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return ChoiceSkip, nil
	}

	choice := ChoiceSkip
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[Choice]().
			Title(fmt.Sprintf("Conflict: both sides of %q were modified", c.Base)).
			Description(fmt.Sprintf("source: %s (modified %s)\ntarget: %s (modified %s)",
				c.SourcePath, c.SourceMtime.Format(time.RFC3339),
				c.TargetPath, c.TargetMtime.Format(time.RFC3339))).
			Options(
				huh.NewOption("Use source version (source → target)", ChoiceSource),
				huh.NewOption("Use target version (target → source)", ChoiceTarget),
				huh.NewOption("Skip this file", ChoiceSkip),
			).
			Value(&choice),
	))

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ChoiceSkip, nil
		}
		return ChoiceSkip, fmt.Errorf("conflict prompt failed: %w", err)
	}
	return choice, nil
}

// choiceAction maps a resolution choice onto the propagate action.
func choiceAction(choice Choice) Action {
	switch choice {
	case ChoiceSource:
		return ActionPropagateToTarget
	case ChoiceTarget:
		return ActionPropagateToSource
	}
	return ActionNone
}
