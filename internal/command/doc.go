// Package command implements the payload and dispatch protocol for
// game-state mutation requests.
//
// A command is identified by a dense ID, carries a typed payload, and is
// dispatched through a fixed registry built once at startup. Payloads
// serialize to a compact binary frame for network transmission and journal
// logging; the registry decodes frames back into typed payloads and runs the
// two-phase test/execute protocol against a caller-supplied environment.
//
// Dispatch is synchronous and deterministic: a command is fully validated,
// costed, and applied before the next one is considered, so every peer
// replaying the same frame stream reaches the same state.
package command
