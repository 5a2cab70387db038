package middleware

import "github.com/aretw0/treeoracle/pkg/ports"

// Middleware allows wrapping a SampleStore to add behavior.
type Middleware func(ports.SampleStore) ports.SampleStore

// Chain wraps store with mws. The first middleware is outermost.
func Chain(store ports.SampleStore, mws ...Middleware) ports.SampleStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}
