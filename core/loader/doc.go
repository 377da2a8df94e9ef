// Package loader provides the feature loading system.
//
// Each feature implements the Feature interface and registers its routes
// when loaded:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The Manager holds the registry: Register adds a feature, LoadAll loads the
// enabled ones in registration order.
package loader
