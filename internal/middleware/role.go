package middleware

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/RedArtelerist/OnlineBookStore/internal/constants"
	inErrors "github.com/RedArtelerist/OnlineBookStore/internal/errors"
	inHttp "github.com/RedArtelerist/OnlineBookStore/internal/http"
	"github.com/RedArtelerist/OnlineBookStore/internal/log"
	"github.com/RedArtelerist/OnlineBookStore/internal/token"
)

// RequireAdmin gates administrative routes. Must run after Auth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c := r.Context()
		logger := zerolog.Ctx(c).
			With().
			Str(log.KeyTag, "middleware RequireAdmin").
			Logger()

		claims, err := token.ClaimsFromContext(c)
		if err != nil {
			logger.Error().Err(err).Msg(err.Error())
			inHttp.WriteErrorResponse(c, w, err)
			return
		}
		if !claims.HasRole(constants.RoleAdmin) {
			logger.Error().Err(inErrors.ErrForbidden).Msg(inErrors.ErrForbidden.Error())
			inHttp.WriteErrorResponse(c, w, inErrors.ErrForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}
