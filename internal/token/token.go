package token

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/RedArtelerist/OnlineBookStore/internal/constants"
	inErrors "github.com/RedArtelerist/OnlineBookStore/internal/errors"
	"github.com/RedArtelerist/OnlineBookStore/internal/log"
	"github.com/RedArtelerist/OnlineBookStore/internal/otel"
)

type Claims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

func (c Claims) HasRole(role string) bool {
	return slices.Contains(c.Roles, role)
}

func NewToken(userId uuid.UUID, roles []string, secretKey string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(
		jwt.SigningMethodHS256,
		Claims{
			Roles: roles,
			RegisteredClaims: jwt.RegisteredClaims{
				Audience:  jwt.ClaimStrings{constants.AudienceUser},
				Issuer:    constants.AppBookstore,
				Subject:   userId.String(),
				ExpiresAt: jwt.NewNumericDate(now.Add(30 * time.Minute)),
				IssuedAt:  jwt.NewNumericDate(now),
			},
		},
	)
	return token.SignedString([]byte(secretKey))
}

func VerifyToken(c context.Context, tokenString string, secretKey string) (*Claims, error) {
	c, span := otel.Tracer.Start(c, "VerifyToken")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "VerifyToken").
		Logger()

	claims := &Claims{}
	jwtToken, err := jwt.ParseWithClaims(tokenString,
		claims,
		func(t *jwt.Token) (interface{}, error) {
			return []byte(secretKey), nil
		},
		jwt.WithAudience(constants.AudienceUser),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithIssuer(constants.AppBookstore),
	)
	if err != nil {
		err = fmt.Errorf("failed parsing claims with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, inErrors.ErrTokenInvalid
	}
	if !jwtToken.Valid {
		err = fmt.Errorf("failed validating token with error=%w", inErrors.ErrTokenInvalid)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, inErrors.ErrTokenInvalid
	}

	return claims, nil
}

type claimsKey struct{}

func AttachClaims(c context.Context, claims *Claims) context.Context {
	return context.WithValue(c, claimsKey{}, claims)
}

func ClaimsFromContext(c context.Context) (*Claims, error) {
	claims, ok := c.Value(claimsKey{}).(*Claims)
	if !ok {
		return nil, inErrors.ErrEmptyAuth
	}
	return claims, nil
}

func UserIdFromContext(c context.Context) (uuid.UUID, error) {
	claims, err := ClaimsFromContext(c)
	if err != nil {
		return uuid.Nil, err
	}
	if claims.Subject == "" {
		return uuid.Nil, inErrors.ErrEmptySubject
	}
	userId, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed parsing subject=%s with error=%w", claims.Subject, err)
	}
	return userId, nil
}
