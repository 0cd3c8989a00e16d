// Package keyedpool is an intentional stub.
//
// SPEC_FULL.md §1 leaves a keyed variant of the pool (one idle sub-queue
// per key, admission control applied per key as well as overall)
// unimplemented in this module. The upstream this module is modeled on carries the same
// unimplemented stub rather than a full keyed pool, and DESIGN.md records
// the decision to leave it that way here too instead of inventing a keyed
// admission-control protocol the specification never describes.
package keyedpool

import "errors"

// ErrNotImplemented names the missing keyed pool. This package defines no
// keyed pool type or function, so nothing in it returns this error.
var ErrNotImplemented = errors.New("keyedpool: keyed object pool is not implemented")
