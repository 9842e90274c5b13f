package authfunc

import (
	"context"
	"net/http"

	"VidTube.com/cmd/api/handlers"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/jwt"
	"github.com/cloudwego/hertz/pkg/app"
)

func Auth() []app.HandlerFunc {
	return append(make([]app.HandlerFunc, 0),
		TokenAuthFunc(),
	)
}

// TokenAuthFunc requires a valid bearer token and stores its viewer id on
// the request.
func TokenAuthFunc() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		if jwt.JwtMiddleware == nil {
			handlers.SendResponse(c, errno.ServiceErr.WithMessage("authentication is not configured"), nil)
			c.Abort()
			return
		}
		jwt.JwtMiddleware.MiddlewareFunc()(ctx, c)
	}
}

// Unauthorized answers token failures with the error envelope.
func Unauthorized(ctx context.Context, c *app.RequestContext, code int, message string) {
	if code != http.StatusForbidden {
		code = http.StatusUnauthorized
	}
	handlers.SendResponse(c, errno.NewErrNo(int64(code), message), nil)
}
