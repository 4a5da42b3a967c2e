package cache

// ScopedKeyer wraps a Keyer with a prefix. The CLI scopes keys by build
// version so results computed by an older binary are never reused.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "v1.2.0:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// IdentifyKey generates a prefixed key for identification results.
func (k *ScopedKeyer) IdentifyKey(modelHash string, opts IdentifyKeyOpts) string {
	return k.prefix + k.inner.IdentifyKey(modelHash, opts)
}

// DiagramKey generates a prefixed key for rendered diagrams.
func (k *ScopedKeyer) DiagramKey(modelHash string, opts DiagramKeyOpts) string {
	return k.prefix + k.inner.DiagramKey(modelHash, opts)
}
