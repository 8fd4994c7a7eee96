package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	inErrors "github.com/RedArtelerist/OnlineBookStore/internal/errors"
	"github.com/RedArtelerist/OnlineBookStore/internal/otel"
)

func WriteJsonResponse(
	c context.Context,
	w http.ResponseWriter,
	header map[string]string,
	body map[string]interface{},
) {
	c, span := otel.Tracer.Start(c, "WriteJsonResponse")
	defer span.End()

	logger := zerolog.Ctx(c).With().Str("tag", "WriteJsonResponse").Logger()

	w.Header().Add(KeyHeaderContentType, ValueHeaderApplicationJson)
	for k, v := range header {
		w.Header().Add(k, v)
	}

	if v, ok := body["statusCode"]; ok {
		w.WriteHeader(v.(int))
	}

	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
}

// StatusCodeFromError maps domain failures to HTTP statuses: missing or
// foreign-owned entities map to 404, business-rule and validation failures
// to 400, auth failures to 401/403, anything else to 500.
func StatusCodeFromError(err error) int {
	switch {
	case inErrors.IsNotFound(err):
		return http.StatusNotFound
	case inErrors.IsInvalidOperation(err):
		return http.StatusBadRequest
	case errors.Is(err, inErrors.ErrEmptyAuth),
		errors.Is(err, inErrors.ErrTokenInvalid),
		errors.Is(err, inErrors.ErrPasswordMismatch):
		return http.StatusUnauthorized
	case errors.Is(err, inErrors.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func WriteErrorResponse(c context.Context, w http.ResponseWriter, err error) {
	WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "failed",
		"statusCode": StatusCodeFromError(err),
		"message":    err.Error(),
		"timestamp":  time.Now().Format(time.RFC3339),
	})
}
