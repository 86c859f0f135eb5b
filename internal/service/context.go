package service

import (
	"context"

	"service-calendar/internal/model"
)

type principalKey struct{}

// WithPrincipal attaches the acting user to ctx so backend calls made on
// their behalf can be authorized and logged.
func WithPrincipal(ctx context.Context, principal model.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, principal)
}

func PrincipalFrom(ctx context.Context) (model.Principal, bool) {
	principal, ok := ctx.Value(principalKey{}).(model.Principal)
	return principal, ok
}
