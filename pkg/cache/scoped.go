package cache

// ScopedKeyer wraps a Keyer with a prefix, giving separate cache namespaces
// to, for example, different API tenants or test runs sharing one redis
// instance.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to every generated
// key. A nil inner keyer defaults to [NewDefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// OrderKey generates a prefixed key for a resolved order.
func (k *ScopedKeyer) OrderKey(universeHash, focus string, opts OrderKeyOpts) string {
	return k.prefix + k.inner.OrderKey(universeHash, focus, opts)
}

// UniverseKey generates a prefixed key for a universe document.
func (k *ScopedKeyer) UniverseKey(name string) string {
	return k.prefix + k.inner.UniverseKey(name)
}

var _ Keyer = (*ScopedKeyer)(nil)
