package mock

import (
	"context"

	"github.com/garagekb/garagekb"
)

var _ garagekb.SourceAdapter = (*SourceAdapter)(nil)

// SourceAdapter is a mock implementation of garagekb.SourceAdapter.
type SourceAdapter struct {
	ProfileFn func() garagekb.SourceProfile
	FetchFn   func(ctx context.Context) ([]garagekb.RawItem, error)
}

func (a *SourceAdapter) Profile() garagekb.SourceProfile {
	return a.ProfileFn()
}

func (a *SourceAdapter) Fetch(ctx context.Context) ([]garagekb.RawItem, error) {
	return a.FetchFn(ctx)
}

var _ garagekb.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of garagekb.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}

var _ garagekb.Normalizer = (*Normalizer)(nil)

// Normalizer is a mock implementation of garagekb.Normalizer.
type Normalizer struct {
	NormalizeFn func(raw string) string
}

func (n *Normalizer) Normalize(raw string) string {
	return n.NormalizeFn(raw)
}
