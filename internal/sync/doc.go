// Package sync orchestrates one run of the synchronizer over a
// directory pair.
//
// A run moves through fixed phases:
//
//	discover          list files each adapter claims on both sides
//	classify          pure decision per base name against the ledger
//	filter            suppress actions that violate the direction
//	resolve           ask the Resolver when both sides changed
//	execute           convert, write, delete; contain per-file errors
//	record            refresh ledger entries, flush once at the end
//
//	source dir ──┐                       ┌── target dir
//	             ├─> Classify ─> Action ─┤
//	  ledger  ───┘                       └── ledger update
//
// Classification is a pure function of filesystem state and the stored
// ledger entry, so every decision is unit-testable without touching
// disk. Execution is the only phase with side effects, and a dry run
// stops just short of it: files are still read and converted so that
// conversion warnings surface, but nothing is written, deleted, or
// recorded.
package sync
