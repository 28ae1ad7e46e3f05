// Package ratelimits persists the request timestamps behind the sliding-window limiter.
package ratelimits

import (
	"context"
	"time"
)

type Repository interface {
	PurgeBefore(ctx context.Context, cutoff time.Time) error
	Count(ctx context.Context, key string) (int64, error)
	Insert(ctx context.Context, key string, at time.Time) error
}
