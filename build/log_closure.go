package build

// logClosure defers a possibly-expensive log argument (e.g. spew.Sdump of
// a transaction or wire message) until btclog actually decides to format
// it at the active level. Grounded on lnd's own log_closure.go, used
// throughout lnwallet/channel.go to avoid a spew.Sdump call on every
// message when only Trace/Debug level would print it.
type logClosure func() string

// String satisfies fmt.Stringer, invoked lazily by btclog's formatter.
func (c logClosure) String() string {
	return c()
}

// NewLogClosure wraps fn as a fmt.Stringer, deferring its evaluation.
func NewLogClosure(fn func() string) logClosure {
	return logClosure(fn)
}
