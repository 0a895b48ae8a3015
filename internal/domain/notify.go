package domain

// Notifier surfaces transient user-visible notices. Failures are
// non-fatal: a notice is shown and the current operation aborts.
type Notifier interface {
	Notify(text string, isError bool)
}

// NotifyFunc adapts a function to the Notifier interface.
type NotifyFunc func(text string, isError bool)

func (f NotifyFunc) Notify(text string, isError bool) { f(text, isError) }
