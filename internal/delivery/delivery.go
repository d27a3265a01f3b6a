// Package delivery defines the interface every transport server implements.
package delivery

import "context"

// Delivery is a transport endpoint managed by the application lifecycle.
type Delivery interface {
	// Serve blocks, accepting requests until the server is shut down.
	Serve(ctx context.Context) error
}
