package cabsl

// Defs returns the lazily-loaded, process-lifetime constant block for the
// option owning ctx. load runs at most once per OptionContext, on the
// first call to Defs for it, and every subsequent call — whether from the
// same cycle or a cycle years later — returns the cached value (or the
// cached error) without re-running load. T is ordinarily a small struct
// tagged for internal/defsfile.
func Defs[T any](ctx *OptionContext, load func() (T, error)) (*T, error) {
	box := ctx.defsBox()
	box.once.Do(func() {
		v, err := load()
		if err != nil {
			box.err = err
			return
		}
		box.val = &v
	})
	if box.err != nil {
		return nil, box.err
	}
	return box.val.(*T), nil
}
