package cache

// ScopedKeyer prefixes every key of an inner Keyer, so several deployments
// can share one Redis without reading each other's entries:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "netvalue:prod:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or the default keyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) GraphKey(contentHash string) string {
	return k.prefix + k.inner.GraphKey(contentHash)
}

func (k *ScopedKeyer) ValueKey(graphHash string, opts ValueKeyOpts) string {
	return k.prefix + k.inner.ValueKey(graphHash, opts)
}

func (k *ScopedKeyer) LabelKey(graphHash string, opts LabelKeyOpts) string {
	return k.prefix + k.inner.LabelKey(graphHash, opts)
}
