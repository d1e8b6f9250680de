package http

import (
	"context"

	"fifo/internal/core/domain/model/audit"

	"github.com/labstack/echo/v4"
)

// Headers set by the authenticating reverse proxy in front of the service.
const (
	UserHeader        = "X-Forwarded-User"
	DisplayNameHeader = "X-Forwarded-Preferred-Username"
)

type actorKey struct{}

// WithActor stores the caller on ctx.
func WithActor(ctx context.Context, actor audit.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ContextIdentityResolver reads the caller stored by the identity middleware.
type ContextIdentityResolver struct{}

func (ContextIdentityResolver) CurrentActor(ctx context.Context) (audit.Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(audit.Actor)
	if !ok || actor.IsZero() {
		return audit.Actor{}, false
	}
	return actor, true
}

// IdentityMiddleware attaches the proxy-authenticated caller to the request
// context. Requests without the user header proceed anonymously.
func IdentityMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, err := audit.NewActor(c.Request().Header.Get(UserHeader), c.Request().Header.Get(DisplayNameHeader))
			if err == nil {
				req := c.Request()
				c.SetRequest(req.WithContext(WithActor(req.Context(), actor)))
			}
			return next(c)
		}
	}
}
