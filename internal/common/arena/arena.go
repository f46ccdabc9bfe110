// Package arena provides ownership tracking for the variable-length parts of records: strings, arrays of strings
// and arrays of scalars.
//
// Records returned by the daemon transport and by the event log decoder live in buffers that are reused on the
// next call. Anything the caller wants to keep past that point must be deep copied through an Allocator and later
// released through the same Allocator. Copy and release are accounted in blocks:
//
//   - one block per non-empty string field
//   - one block per non-null array backing store
//   - one block per non-empty string held inside an array
//
// Empty strings and nil arrays are "null" and never allocate. Release nulls the field it frees, so releasing
// the same record twice frees nothing the second time.
package arena

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"

	"github.com/openlava/openlava-go/internal/common/lsberrors"
)

// Allocator accounts for owned blocks.
type Allocator interface {
	// Alloc reserves n blocks. It returns an *lsberrors.ErrResourceExhausted if the reservation cannot be satisfied.
	Alloc(n int) error
	// Free returns n blocks previously obtained from Alloc.
	Free(n int)
}

type heap struct{}

func (heap) Alloc(int) error { return nil }

func (heap) Free(int) {}

// Heap is an unlimited allocator that does no accounting. It is the default for records nobody instruments.
var Heap Allocator = heap{}

// Arena is an instrumented Allocator with an optional budget.
// It is safe for concurrent use.
type Arena struct {
	mu     sync.Mutex
	limit  int
	allocs int
	frees  int
}

// New returns an Arena without a budget.
func New() *Arena {
	return &Arena{}
}

// NewWithLimit returns an Arena that refuses to hold more than limit outstanding blocks.
func NewWithLimit(limit int) *Arena {
	return &Arena{limit: limit}
}

func (a *Arena) Alloc(n int) error {
	if n <= 0 {
		return nil
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	outstanding := a.allocs - a.frees
	if a.limit > 0 && outstanding+n > a.limit {
		return errors.WithStack(&lsberrors.ErrResourceExhausted{
			Requested: n,
			Available: a.limit - outstanding,
		})
	}
	a.allocs += n
	return nil
}

// Free panics if more blocks are freed than were ever allocated, since that can only be a double release.
func (a *Arena) Free(n int) {
	if n <= 0 {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.frees+n > a.allocs {
		panic(fmt.Sprintf("arena: releasing %d blocks with only %d outstanding", n, a.allocs-a.frees))
	}
	a.frees += n
}

// Allocs returns the total number of blocks ever allocated.
func (a *Arena) Allocs() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.allocs
}

// Frees returns the total number of blocks ever freed.
func (a *Arena) Frees() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.frees
}

// Outstanding returns the number of blocks currently held.
func (a *Arena) Outstanding() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.allocs - a.frees
}
