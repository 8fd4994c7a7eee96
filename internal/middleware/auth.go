package middleware

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	inErrors "github.com/RedArtelerist/OnlineBookStore/internal/errors"
	inHttp "github.com/RedArtelerist/OnlineBookStore/internal/http"
	"github.com/RedArtelerist/OnlineBookStore/internal/log"
	"github.com/RedArtelerist/OnlineBookStore/internal/token"
)

// Auth verifies the bearer token and attaches the parsed claims to the
// request context.
func Auth(secretKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := zerolog.Ctx(r.Context()).
				With().
				Str(log.KeyTag, "middleware Auth").
				Logger()
			c := logger.WithContext(r.Context())

			authorization := r.Header.Get("Authorization")
			if authorization == "" {
				logger.Error().Err(inErrors.ErrEmptyAuth).Msg(inErrors.ErrEmptyAuth.Error())
				inHttp.WriteErrorResponse(c, w, inErrors.ErrEmptyAuth)
				return
			}

			tokenString, ok := strings.CutPrefix(authorization, "Bearer ")
			if !ok {
				logger.Error().Err(inErrors.ErrTokenInvalid).Msg(inErrors.ErrTokenInvalid.Error())
				inHttp.WriteErrorResponse(c, w, inErrors.ErrTokenInvalid)
				return
			}

			claims, err := token.VerifyToken(c, tokenString, secretKey)
			if err != nil {
				logger.Error().Err(err).Msg(err.Error())
				inHttp.WriteErrorResponse(c, w, inErrors.ErrTokenInvalid)
				return
			}

			c = token.AttachClaims(c, claims)
			next.ServeHTTP(w, r.WithContext(c))
		})
	}
}
