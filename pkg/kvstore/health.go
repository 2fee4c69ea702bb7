package kvstore

import "context"

// HealthChecker is implemented by stores backed by a remote service.
type HealthChecker interface {
	Healthcheck(ctx context.Context) error
}

// Healthcheck probes s when it is a HealthChecker. Local stores are always
// healthy.
func Healthcheck(ctx context.Context, s Store) error {
	if hc, ok := s.(HealthChecker); ok {
		return hc.Healthcheck(ctx)
	}
	return nil
}
