package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/RedArtelerist/OnlineBookStore/internal/config"
	"github.com/RedArtelerist/OnlineBookStore/internal/constants"
	inErrors "github.com/RedArtelerist/OnlineBookStore/internal/errors"
	"github.com/RedArtelerist/OnlineBookStore/internal/log"
	"github.com/RedArtelerist/OnlineBookStore/internal/otel"
	"github.com/RedArtelerist/OnlineBookStore/internal/repository"
	"github.com/RedArtelerist/OnlineBookStore/internal/token"
	"github.com/RedArtelerist/OnlineBookStore/user/pkg/request"
	"github.com/RedArtelerist/OnlineBookStore/user/pkg/response"
)

type UserService struct {
	pool    *pgxpool.Pool
	queries *repository.Queries
	config  config.Application
}

func NewUserService(
	pool *pgxpool.Pool,
	queries *repository.Queries,
	config config.Application,
) *UserService {
	return &UserService{pool: pool, queries: queries, config: config}
}

func (u *UserService) Register(
	c context.Context,
	param request.Register,
) (response.User, error) {
	c, span := otel.Tracer.Start(c, "UserService Register")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService Register").
		Str(log.KeyEmail, param.Email).
		Logger()

	logger.Info().
		Str(log.KeyProcess, "hashing password").
		Msg("hashing password")
	hashed, err := bcrypt.GenerateFromPassword([]byte(param.Password), bcrypt.DefaultCost)
	if err != nil {
		err = fmt.Errorf("failed hashing password with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.User{}, err
	}
	logger.Info().
		Str(log.KeyProcess, "hashing password").
		Msg("hashed password")

	logger = logger.With().Str(log.KeyProcess, "initializing transaction").Logger()
	logger.Info().Msg("initializing transaction")
	tx, err := u.pool.BeginTx(c, pgx.TxOptions{})
	if err != nil {
		err = fmt.Errorf("failed initializing transaction with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.User{}, err
	}
	logger.Info().Msg("initialized transaction")
	defer func(lg zerolog.Logger) {
		l := lg.With().Str(log.KeyProcess, "rolling back transaction").Logger()
		if err := tx.Rollback(c); err != nil {
			if errors.Is(err, pgx.ErrTxClosed) {
				return
			}
			err = fmt.Errorf("failed rolling back transaction with error=%w", err)
			inErrors.HandleError(err, span)
			l.Error().Err(err).Msg(err.Error())
			return
		}
		l.Info().Msg("rolled back transaction")
	}(logger)

	logger = logger.With().Str(log.KeyProcess, "inserting user to database").Logger()
	logger.Info().Msg("inserting user to database")
	user, err := u.queries.WithTx(tx).InsertUser(c, repository.InsertUserParams{
		Email:           param.Email,
		Password:        string(hashed),
		FirstName:       param.FirstName,
		LastName:        param.LastName,
		ShippingAddress: pgtype.Text{String: param.ShippingAddress, Valid: param.ShippingAddress != ""},
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			inErrors.HandleError(inErrors.ErrEmailTaken, span)
			logger.Error().Err(inErrors.ErrEmailTaken).Msg(inErrors.ErrEmailTaken.Error())
			return response.User{}, inErrors.ErrEmailTaken
		}
		err = fmt.Errorf("failed inserting user to database with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.User{}, err
	}
	logger = logger.With().Str(log.KeyUserID, user.ID.String()).Logger()
	logger.Info().Msg("inserted user to database")

	logger = logger.With().Str(log.KeyProcess, "assigning user role").Logger()
	logger.Info().Msg("assigning user role")
	err = u.queries.WithTx(tx).InsertUserRole(c, repository.InsertUserRoleParams{
		UserID: user.ID,
		Role:   constants.RoleUser,
	})
	if err != nil {
		err = fmt.Errorf("failed assigning user role with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.User{}, err
	}
	logger.Info().Msg("assigned user role")

	logger = logger.With().Str(log.KeyProcess, "committing transaction").Logger()
	logger.Info().Msg("committing transaction")
	err = tx.Commit(c)
	if err != nil {
		err = fmt.Errorf("failed committing transaction with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.User{}, err
	}
	logger.Info().Msg("committed transaction")

	return user.Response([]string{constants.RoleUser}), nil
}

func (u *UserService) Login(
	c context.Context,
	param request.Login,
) (string, error) {
	c, span := otel.Tracer.Start(c, "UserService Login")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService Login").
		Str(log.KeyEmail, param.Email).
		Logger()

	logger.Info().
		Str(log.KeyProcess, "finding user").
		Msg("finding user by email")
	user, err := u.queries.FindUserByEmail(c, param.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.Error().
				Err(inErrors.ErrPasswordMismatch).
				Str(log.KeyProcess, "finding user").
				Msgf("user with email=%s not found", param.Email)
			return "", inErrors.ErrPasswordMismatch
		}
		err = fmt.Errorf("failed finding user by email with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return "", err
	}
	logger.Info().
		Str(log.KeyProcess, "finding user").
		Msg("found user by email")

	logger.Info().
		Str(log.KeyProcess, "verifying password").
		Msg("verifying hashed password with password")
	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(param.Password))
	if err != nil {
		logger.Error().
			Err(inErrors.ErrPasswordMismatch).
			Str(log.KeyProcess, "verifying password").
			Msg("hashed password and password mismatch")
		return "", inErrors.ErrPasswordMismatch
	}
	logger.Info().
		Str(log.KeyProcess, "verifying password").
		Msg("verified hashed password with password")

	logger.Info().
		Str(log.KeyProcess, "finding user roles").
		Msg("finding user roles")
	roles, err := u.queries.FindUserRoles(c, user.ID)
	if err != nil {
		err = fmt.Errorf("failed finding user roles with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return "", err
	}
	logger.Info().
		Str(log.KeyProcess, "finding user roles").
		Strs("roles", roles).
		Msg("found user roles")

	logger.Info().
		Str(log.KeyProcess, "signing token").
		Msg("signing token")
	signedToken, err := token.NewToken(user.ID, roles, u.config.SecretKey)
	if err != nil {
		err = fmt.Errorf("failed signing token with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return "", err
	}
	logger.Info().
		Str(log.KeyProcess, "signing token").
		Msg("signed token")

	return signedToken, nil
}

func (u *UserService) FindUserById(
	c context.Context,
	id uuid.UUID,
) (response.User, error) {
	c, span := otel.Tracer.Start(c, "UserService FindUserById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService FindUserById").
		Str(log.KeyUserID, id.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding user by id").Logger()
	logger.Info().Msg("finding user by id")
	user, err := u.queries.FindUserById(c, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = inErrors.NewNotFound("user with id=%s not found", id.String())
			inErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.User{}, err
		}
		err = fmt.Errorf("failed finding user by id with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.User{}, err
	}
	logger.Info().Msg("found user by id")

	logger = logger.With().Str(log.KeyProcess, "finding user roles").Logger()
	logger.Info().Msg("finding user roles")
	roles, err := u.queries.FindUserRoles(c, user.ID)
	if err != nil {
		err = fmt.Errorf("failed finding user roles with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.User{}, err
	}
	logger.Info().Msg("found user roles")

	return user.Response(roles), nil
}
