// Package counters declares the repository contract for per-market document
// number allocation.
package counters

import "context"

// Repository allocates consecutive document numbers per market type.
type Repository interface {
	// Next returns the next document number for marketType. The
	// read-increment-write sequence locks the counter row, so it must run
	// inside an enclosing dbx.WithTx; two concurrent allocations for one
	// market type never observe the same value.
	Next(ctx context.Context, marketType string) (int64, error)
}
