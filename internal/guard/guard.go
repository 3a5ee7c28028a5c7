// Package guard provides a rollback action that runs on every exit path
// of a multi-step operation unless the operation marks itself complete.
package guard

// Guard holds a rollback func. It is not safe for concurrent use.
type Guard struct {
	rollback func()
	done     bool
}

// New arms a guard around rollback. Pair it with a deferred Close:
//
//	g := guard.New(undo)
//	defer g.Close()
//	...
//	g.Complete()
func New(rollback func()) *Guard {
	return &Guard{rollback: rollback}
}

// Complete disarms the guard. Close becomes a no-op.
func (g *Guard) Complete() {
	g.done = true
}

// Completed reports whether Complete has been called.
func (g *Guard) Completed() bool {
	return g.done
}

// Close runs the rollback unless the guard was completed. It runs at most once.
func (g *Guard) Close() {
	if g.done {
		return
	}
	g.done = true
	if g.rollback != nil {
		g.rollback()
	}
}
