package jwt

import (
	"context"
	"time"

	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/hertz-contrib/jwt"
)

// IdentityKey is the claim, and the request key, carrying the viewer id.
const IdentityKey = "viewer_id"

var JwtMiddleware *jwt.HertzJWTMiddleware

// UnauthorizedFunc writes the response for a missing or bad token.
type UnauthorizedFunc func(ctx context.Context, c *app.RequestContext, code int, message string)

// Init builds the global middleware.
func Init(key string, timeout time.Duration, unauthorized UnauthorizedFunc) error {
	mw, err := New(key, timeout, unauthorized)
	if err != nil {
		return err
	}
	JwtMiddleware = mw
	return nil
}

// New verifies HS256 bearer tokens signed with key. Tokens are issued
// elsewhere; this service only reads the viewer id claim.
func New(key string, timeout time.Duration, unauthorized UnauthorizedFunc) (*jwt.HertzJWTMiddleware, error) {
	return jwt.New(&jwt.HertzJWTMiddleware{
		Realm:         "vidtube",
		Key:           []byte(key),
		Timeout:       timeout,
		IdentityKey:   IdentityKey,
		TokenLookup:   "header: Authorization, query: token, cookie: jwt",
		TokenHeadName: "Bearer",
		TimeFunc:      time.Now,
		PayloadFunc: func(data interface{}) jwt.MapClaims {
			if id, ok := data.(string); ok {
				return jwt.MapClaims{IdentityKey: id}
			}
			return jwt.MapClaims{}
		},
		IdentityHandler: func(ctx context.Context, c *app.RequestContext) interface{} {
			claims := jwt.ExtractClaims(ctx, c)
			id, _ := claims[IdentityKey].(string)
			if id == "" {
				return nil
			}
			return id
		},
		Authorizator: func(data interface{}, ctx context.Context, c *app.RequestContext) bool {
			id, ok := data.(string)
			if !ok {
				return false
			}
			_, err := utils.NormalizeID(id)
			return err == nil
		},
		Unauthorized: unauthorized,
	})
}

// GenerateToken signs a token for viewerID.
func GenerateToken(mw *jwt.HertzJWTMiddleware, viewerID string) (string, time.Time, error) {
	id, err := utils.NormalizeID(viewerID)
	if err != nil {
		return "", time.Time{}, err
	}
	return mw.TokenGenerator(id)
}

// ConvertJWTPayloadToString returns the normalized viewer id the middleware
// stored on the request.
func ConvertJWTPayloadToString(ctx context.Context, c *app.RequestContext) (string, error) {
	v, ok := c.Get(IdentityKey)
	if !ok {
		return "", errno.AuthorizationFailedErr
	}
	id, ok := v.(string)
	if !ok {
		return "", errno.AuthorizationFailedErr
	}
	return utils.NormalizeID(id)
}
