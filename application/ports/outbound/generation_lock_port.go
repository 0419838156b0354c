package outbound

import "context"

// GenerationLockPort guards against duplicate concurrent media generation
// for the same story artifact. Acquire returns false when another request
// already holds the key; Release is best-effort, the TTL bounds a leaked
// lock.
type GenerationLockPort interface {
	Acquire(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string)
}
