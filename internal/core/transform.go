package core

// Transform mutates a mock and returns it. Installers return transforms so that
// callers can compose a fully configured mock from a list of setups.
type Transform func(*Mock) *Mock

// Compose returns a transform applying transforms left to right.
// nil transforms are skipped.
func Compose(transforms ...Transform) Transform {
	return func(mock *Mock) *Mock {
		for _, transform := range transforms {
			if transform == nil {
				continue
			}

			mock = transform(mock)
		}

		return mock
	}
}
