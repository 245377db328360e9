// Package requester contains the Requester aggregate: a vehicle owner who
// may hold at most one open service request at a time.
package requester
