package clone

import "log/slog"

// Policy controls how strict a clone is. The zero value, also returned by
// [DefaultPolicy], is the strict mode: functions and accessors are
// rejected, property attributes and extensibility are reproduced and symbol
// keys are copied.
type Policy struct {
	// AllowFunctions lets functions through by reference instead of failing
	// with [ErrFunction].
	AllowFunctions bool

	// AllowAccessors copies getter/setter descriptors as they are (the
	// functions are shared) instead of failing with [ErrAccessor].
	AllowAccessors bool

	// IgnoreAttributes creates every copied property as a plain writable,
	// enumerable, configurable data property. Properties the shell already
	// owns and cannot reconfigure (an array's length) keep their attributes
	// and only receive the value.
	IgnoreAttributes bool

	// IgnoreExtensibility leaves every clone extensible.
	IgnoreExtensibility bool

	// IgnoreSymbols skips symbol-keyed own properties.
	IgnoreSymbols bool

	// Logger receives debug records about lossy steps, such as weak
	// collections cloned empty. Nil discards them.
	Logger *slog.Logger
}

// DefaultPolicy returns the strict [Policy].
func DefaultPolicy() Policy { return Policy{} }

func pick(policy []Policy) Policy {
	if len(policy) > 0 {
		return policy[0]
	}
	return DefaultPolicy()
}

func (p Policy) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.New(slog.DiscardHandler)
}
