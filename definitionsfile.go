package cabsl

import "github.com/cabsl-go/cabsl/internal/defsfile"

// LoadDefsFile reads dir/<name>.cfg and decodes it into T, for use as the
// load function passed to Defs. It is a thin adapter over internal/defsfile
// so option authors never need to import an internal package directly.
func LoadDefsFile[T any](dir, name string) (T, error) {
	return defsfile.Load[T](dir, name)
}
