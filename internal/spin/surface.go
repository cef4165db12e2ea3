package spin

import "context"

// Surface is the rendering surface that animates the wheel. The controller
// must locate it before debiting anything: a spin nobody can watch must not
// be charged.
type Surface interface {
	Locate(ctx context.Context, userID string) error
}

// SurfaceFunc adapts a function to the Surface interface.
type SurfaceFunc func(ctx context.Context, userID string) error

// Locate implements [Surface].
func (f SurfaceFunc) Locate(ctx context.Context, userID string) error {
	return f(ctx, userID)
}

// AlwaysReady is the surface used by the HTTP wiring: the requesting client
// is itself the surface, so it is present by construction.
func AlwaysReady() Surface {
	return SurfaceFunc(func(ctx context.Context, userID string) error {
		return nil
	})
}
