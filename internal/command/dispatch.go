package command

import (
	"log"

	apperrors "github.com/louisbranch/signalyard/internal/errors"
)

// Test runs the dry-run phase only: cost and validity, no mutation.
func (r *Registry[E]) Test(env E, id ID, tile TileIndex, p Payload) CommandCost {
	def, ok := r.Def(id)
	if !ok {
		return NewError(apperrors.CodeGenericFailure)
	}
	return def.Exec(env, 0, tile, p)
}

// Do runs the two-phase test/execute protocol for one command: a dry run
// first, then the real application when the dry run succeeds.
//
// When the executed cost exceeds the estimate the handler broke its
// contract; the violation is logged and reported as a failure so the caller
// can drop the peer instead of silently diverging.
func (r *Registry[E]) Do(env E, id ID, tile TileIndex, p Payload) CommandCost {
	def, ok := r.Def(id)
	if !ok {
		return NewError(apperrors.CodeGenericFailure)
	}

	if def.Flags&FlagNoEstimate != 0 {
		return def.Exec(env, Execute, tile, p)
	}

	estimate := def.Exec(env, 0, tile, p)
	if estimate.Failed() {
		return estimate
	}

	result := def.Exec(env, Execute, tile, p)
	if result.Succeeded() && result.Cost() > estimate.Cost() {
		log.Printf("command %s: executed cost %d exceeds estimate %d (payload: %s)",
			id, result.Cost(), estimate.Cost(), Summary(p))
		return NewError(apperrors.CodeDesync)
	}
	return result
}
