package cache

// prefixKeyer namespaces every key produced by another Keyer, letting the
// CLI and the server share a backend.
type prefixKeyer struct {
	Keyer
	prefix string
}

// NewScopedKeyer returns a Keyer that prepends prefix to every key built by
// inner, or by the default keyer when inner is nil.
//
//	k := NewScopedKeyer(NewDefaultKeyer(), "srv:")
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return prefixKeyer{Keyer: inner, prefix: prefix}
}

func (k prefixKeyer) GraphKey(sourceHash string) string {
	return k.prefix + k.Keyer.GraphKey(sourceHash)
}

func (k prefixKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.Keyer.LayoutKey(graphHash, opts)
}

func (k prefixKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.Keyer.ArtifactKey(layoutHash, opts)
}

func (k prefixKeyer) ExtractKey(textHash string) string {
	return k.prefix + k.Keyer.ExtractKey(textHash)
}
