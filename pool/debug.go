package pool

import (
	"fmt"
	"io"
)

// DebugDump writes a textual, log-friendly snapshot of the pool to w: a
// summary line followed by one line per idle Slot of the form
// "Object: <r>, State: <state-name>". Output is not machine-parsed (see
// SPEC_FULL.md §6).
func (p *Pool) DebugDump(w io.Writer) {
	fmt.Fprintf(w, "active=%d idle=%d closed=%t\n", p.GetNumActive(), p.GetNumIdle(), p.IsClosed())
	for _, v := range p.allObjects.Values() {
		s := v.(*Slot)
		if s.State() == StateAllocated {
			continue
		}
		fmt.Fprintf(w, "Object: %v, State: %s\n", s.Object, s.State())
	}
}
