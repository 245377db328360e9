// Package request contains the Request aggregate, the central state machine
// of the dispatch engine.
//
// A request is born SEARCHING and walks forward through ACCEPTED and
// IN_PROGRESS to COMPLETED, or ends early in CANCELLED or TIMEOUT. All
// transitions are encoded on Status and invoked through aggregate methods,
// so no caller can put a request into an impossible state. Terminal statuses
// are final: every transition method fails on them with a ConflictError that
// reports the current status.
package request
