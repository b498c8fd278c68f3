// Package providers contains the thin clients for external AI vendors and
// the credential-rotation strategy shared by all of them.
package providers

import (
	"context"
	"math/rand"
)

// KeyPool spreads provider calls across a set of API keys. Each call walks
// the pool in a freshly shuffled order, trying each key at most once and
// stopping at the first success, the first non-retryable error, or pool
// exhaustion.
type KeyPool struct {
	keys []string
}

func NewKeyPool(keys []string) *KeyPool {
	owned := make([]string, len(keys))
	copy(owned, keys)
	return &KeyPool{keys: owned}
}

func (p *KeyPool) Size() int {
	return len(p.keys)
}

// Do runs fn once per key until it succeeds. retryable decides whether a
// failure is worth the next key; a nil predicate retries nothing. The int
// result is the number of attempts made.
func (p *KeyPool) Do(ctx context.Context, fn func(ctx context.Context, key string) error, retryable func(error) bool) (int, error) {
	if len(p.keys) == 0 {
		return 0, ErrNoKeys
	}

	order := rand.Perm(len(p.keys))
	attempts := make([]Attempt, 0, len(p.keys))

	for _, i := range order {
		if err := ctx.Err(); err != nil {
			return len(attempts), err
		}

		key := p.keys[i]
		err := fn(ctx, key)
		if err == nil {
			return len(attempts) + 1, nil
		}

		attempts = append(attempts, Attempt{Key: maskKey(key), Err: err})
		if retryable == nil || !retryable(err) {
			return len(attempts), err
		}
	}

	return len(attempts), &ExhaustedError{Attempts: attempts}
}
