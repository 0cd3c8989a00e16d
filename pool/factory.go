package pool

// Factory is the external collaborator responsible for constructing and
// maintaining the lifecycle of pooled resources (SPEC_FULL.md §4.5 / §6).
// The pool never calls a Factory method while holding a per-Slot lock.
type Factory interface {
	// MakeObject constructs a new resource. Called under the pool's
	// create-admission control; a non-nil error aborts admission and
	// rolls back the reservation (SPEC_FULL.md §4.3 "Create admission").
	MakeObject() (interface{}, error)

	// DestroyObject releases a resource for good. Failures are always
	// swallowed (logged at most) by the pool.
	DestroyObject(obj interface{}) error

	// ValidateObject reports whether a resource is still usable. A
	// returned error is treated the same as reporting false: the pool
	// has no contract for propagating it to the caller. Implementations
	// that want an unconditionally fatal signal should panic, which the
	// pool does not recover from (see SPEC_FULL.md §7, "Fatal").
	ValidateObject(obj interface{}) (bool, error)

	// ActivateObject prepares a resource for use after idle storage.
	ActivateObject(obj interface{}) error

	// PassivateObject prepares a resource for idle storage ("suspend").
	PassivateObject(obj interface{}) error
}

// Logger is the minimal structured-logging surface the pool core uses for
// the swallowed-exception policy in SPEC_FULL.md §4.8. Its method set is a
// subset of logrus.FieldLogger, so *logrus.Logger and *logrus.Entry satisfy
// it without this package importing logrus.
type Logger interface {
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

type noopLogger struct{}

func (noopLogger) Warnf(string, ...interface{})  {}
func (noopLogger) Errorf(string, ...interface{}) {}

func loggerOrNoop(l Logger) Logger {
	if l == nil {
		return noopLogger{}
	}
	return l
}
