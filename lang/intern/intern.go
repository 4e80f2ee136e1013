// Package intern implements wisp's string intern pool: every ObjString ever
// produced by the scanner's string/identifier literals or by runtime string
// operations (concatenation, etc.) is deduplicated through here, so that
// reference equality on *value.ObjString coincides with byte equality.
package intern

import (
	"github.com/arzelion/wisp/lang/htable"
	"github.com/arzelion/wisp/lang/value"
)

// Pool deduplicates every string ever seen by content. It is a weak map with
// respect to the garbage collector: lang/gc calls SweepUnmarked between its
// mark and sweep phases to drop entries whose ObjString turned out to be
// unreachable, so the pool itself never keeps a string alive.
type Pool struct {
	table *htable.Table[*value.ObjString]
}

// New returns an empty intern pool.
func New() *Pool {
	return &Pool{table: htable.New[*value.ObjString](0)}
}

// Intern returns the canonical *value.ObjString for the given bytes,
// allocating and registering a new one (via newObj, supplied by the VM/GC so
// that the new string is linked onto the allocation list and accounted for
// in bytes_allocated) only if this exact byte sequence has never been seen
// before.
func (p *Pool) Intern(chars string, newObj func(*value.ObjString)) *value.ObjString {
	if s, ok := p.table.Get(chars); ok {
		return s
	}
	s := value.NewString(chars)
	if newObj != nil {
		newObj(s)
	}
	p.table.Set(chars, s)
	return s
}

// Len reports how many distinct strings are currently interned.
func (p *Pool) Len() int { return p.table.Len() }

// SweepUnmarked removes every entry whose value is not currently marked.
// The GC calls this after the mark phase and before sweep, so that an
// ObjString with no other reachable reference is dropped from the pool at
// the same moment it is collected, rather than lingering as a phantom
// reference to freed memory.
func (p *Pool) SweepUnmarked() {
	p.table.DeleteWhere(func(_ string, s *value.ObjString) bool {
		return !s.IsMarked()
	})
}
