package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"todolist/config"
	"todolist/infras/database"
	"todolist/infras/jwt"
	"todolist/infras/otel"
	"todolist/internal/domains/auth/model/dto"
	userModel "todolist/internal/domains/user/model"
	userRepo "todolist/internal/domains/user/repository"
	"todolist/shared"
	"todolist/shared/cache"
	"todolist/shared/constant"
	"todolist/shared/failure"
	"todolist/shared/identity"
	"todolist/shared/password"
	"todolist/shared/timezone"

	"github.com/rs/zerolog/log"
)

// SessionKeyPrefix namespaces the server-side session registry in redis.
const SessionKeyPrefix = "session"

type Auth interface {
	Register(ctx context.Context, req dto.SignupRequest) (dto.Session, error)
	Login(ctx context.Context, req dto.LoginRequest) (dto.Session, error)
	Logout(ctx context.Context, sessionID string) error
	Authenticate(ctx context.Context, token string) (identity.Identity, error)
}

type serviceImpl struct {
	userRepo   userRepo.User
	cfg        *config.Config
	otel       otel.Otel
	jwtService jwt.JWT
	cache      cache.RedisCache
}

func New(userRepo userRepo.User, cfg *config.Config, otel otel.Otel, jwt jwt.JWT, cache cache.RedisCache) Auth {
	return &serviceImpl{
		userRepo:   userRepo,
		cfg:        cfg,
		otel:       otel,
		jwtService: jwt,
		cache:      cache,
	}
}

func sessionKey(sessionID string) string {
	return shared.BuildCacheKey(SessionKeyPrefix, sessionID)
}

func (s *serviceImpl) Register(ctx context.Context, req dto.SignupRequest) (res dto.Session, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Register")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.Password1 != req.Password2 {
		return res, failure.BadRequestFromString(dto.MessagePasswordMismatch)
	}

	exists, err := s.userRepo.Exist(ctx, userRepo.ByUsername(req.Username))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return res, fmt.Errorf("failed to check if user exists: %w", err)
	}

	if exists {
		return res, failure.BadRequestFromString(dto.MessageUsernameTaken)
	}

	hashedPassword, err := password.Hash(req.Password1)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	user := req.ToUserModel(hashedPassword)

	if err = s.userRepo.Insert(ctx, user); err != nil {
		// lost a race with a concurrent signup for the same username
		if database.IsUniqueViolation(err) {
			return res, failure.BadRequestFromString(dto.MessageUsernameTaken)
		}

		log.Error().Err(err).Msg("failed to create user")

		return res, fmt.Errorf("failed to create user: %w", err)
	}

	log.Info().Str("user_id", user.ID).Msg("user registered")

	return s.startSession(ctx, user)
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.Session, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.userRepo.Get(ctx, userRepo.ByUsername(req.Username))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == "" {
		log.Warn().Str("username", req.Username).Msg("login attempt with unknown username")

		return res, failure.Unauthorized(dto.MessageInvalidCredentials)
	}

	if err = password.Verify(req.Password, user.Password); err != nil {
		if !errors.Is(err, password.ErrInvalidPassword) {
			log.Error().Err(err).Str("user_id", user.ID).Msg("failed to verify password")
		}

		log.Warn().Str("username", req.Username).Msg("login attempt with wrong password")

		return res, failure.Unauthorized(dto.MessageInvalidCredentials)
	}

	if !user.Active {
		log.Warn().Str("user_id", user.ID).Msg("login attempt on inactive account")

		return res, failure.Unauthorized(dto.MessageInvalidCredentials)
	}

	lastLogin := dto.UpdateLastLoginRequest{LastLogin: timezone.Now()}
	updatedFields := shared.TransformFields(lastLogin)

	if err = s.userRepo.Update(ctx, updatedFields, userRepo.ByID(user.ID)); err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("failed to update last login")

		return res, fmt.Errorf("failed to update last login: %w", err)
	}

	return s.startSession(ctx, user)
}

func (s *serviceImpl) startSession(ctx context.Context, user userModel.User) (res dto.Session, err error) {
	token, err := s.jwtService.GenerateSessionToken(user.ID, user.Username)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate session token")

		return res, fmt.Errorf("failed to generate session token: %w", err)
	}

	ttl := int(s.jwtService.TTL().Seconds())
	if err = s.cache.Save(ctx, sessionKey(token.SessionID), user.ID, ttl); err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("failed to store session")

		return res, fmt.Errorf("failed to store session: %w", err)
	}

	res.FromToken(token, user)

	return res, nil
}

func (s *serviceImpl) Logout(ctx context.Context, sessionID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Logout")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if sessionID == "" {
		return nil
	}

	if err = s.cache.Delete(ctx, sessionKey(sessionID)); err != nil {
		log.Error().Err(err).Msg("failed to revoke session")

		return fmt.Errorf("failed to revoke session: %w", err)
	}

	return nil
}

// Authenticate resolves a session token into the identity it belongs to. The
// token must verify, still be registered and belong to an active user.
func (s *serviceImpl) Authenticate(ctx context.Context, token string) (res identity.Identity, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Authenticate")
	defer scope.End()

	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return res, failure.Unauthorized(err.Error())
	}

	var userID string
	if err = s.cache.Get(ctx, sessionKey(claims.ID), &userID); err != nil {
		if errors.Is(err, cache.Nil) {
			return res, failure.Unauthorized(dto.MessageSessionExpired)
		}

		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to load session")

		return res, fmt.Errorf("failed to load session: %w", err)
	}

	if userID != claims.UserID {
		return res, failure.Unauthorized(dto.MessageSessionExpired)
	}

	user, err := s.userRepo.Get(ctx, userRepo.ByID(userID), userModel.FieldID, userModel.FieldUsername, userModel.FieldActive)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get session user")

		return res, fmt.Errorf("failed to get session user: %w", err)
	}

	if user.ID == "" || !user.Active {
		return res, failure.Unauthorized(dto.MessageSessionExpired)
	}

	return identity.Identity{
		UserID:    user.ID,
		Username:  user.Username,
		SessionID: claims.ID,
	}, nil
}
