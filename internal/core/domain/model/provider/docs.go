// Package provider contains the Provider aggregate: a mechanic who declares
// skills, toggles availability and is assigned to at most one request at a
// time. Matchability is the conjunction of verified, available, located and
// unassigned; EnsureCanAccept names the first precondition that fails.
package provider
