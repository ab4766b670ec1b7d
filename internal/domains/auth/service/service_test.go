package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
	"todolist/config"
	"todolist/infras/jwt"
	jwtMocks "todolist/infras/jwt/mocks"
	"todolist/infras/otel/mocks"
	"todolist/internal/domains/auth/model/dto"
	"todolist/internal/domains/auth/service"
	userMocks "todolist/internal/domains/user/mocks"
	userModel "todolist/internal/domains/user/model"
	"todolist/shared/cache"
	cacheMocks "todolist/shared/cache/mocks"
	"todolist/shared/failure"
	"todolist/shared/identity"
	gModel "todolist/shared/model"
	"todolist/shared/password"
	"todolist/shared/timezone"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	userRepo *userMocks.MockUser
	jwt      *jwtMocks.MockJWT
	cache    *cacheMocks.MockRedisCache
	svc      service.Auth
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		userRepo: userMocks.NewMockUser(ctrl),
		jwt:      jwtMocks.NewMockJWT(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
	}
	f.svc = service.New(f.userRepo, &config.Config{}, mocks.NewOtel(), f.jwt, f.cache)

	return f
}

func (f fixture) expectSession(user userModel.User) {
	f.jwt.EXPECT().
		GenerateSessionToken(user.ID, user.Username).
		Return(&jwt.Token{Value: "signed-token", SessionID: "sid-1", ExpiresAt: time.Now().Add(time.Hour)}, nil)
	f.jwt.EXPECT().TTL().Return(time.Hour)
	f.cache.EXPECT().
		Save(gomock.Any(), service.SessionKeyPrefix+":sid-1", user.ID, 3600).
		Return(nil)
}

func activeUser(t *testing.T) userModel.User {
	t.Helper()

	hash, err := password.Hash("password")
	require.NoError(t, err)

	return userModel.User{
		ID:       "user-id-123",
		Username: "alice",
		Password: hash,
		Active:   true,
		Metadata: gModel.NewMetadata(timezone.Now()),
	}
}

func assertCode(t *testing.T, err error, code int, message string) {
	t.Helper()

	var fail *failure.Failure
	require.ErrorAs(t, err, &fail)
	assert.Equal(t, code, fail.Code)
	assert.Equal(t, message, fail.Message)
}

func TestAuthService_Register(t *testing.T) {
	req := dto.SignupRequest{Username: "alice", Password1: "password", Password2: "password"}

	t.Run("successful registration", func(t *testing.T) {
		f := newFixture(t)

		var inserted userModel.User

		f.userRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.userRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, user userModel.User) error {
				inserted = user

				return nil
			})
		f.jwt.EXPECT().
			GenerateSessionToken(gomock.Any(), "alice").
			Return(&jwt.Token{Value: "signed-token", SessionID: "sid-1"}, nil)
		f.jwt.EXPECT().TTL().Return(time.Hour)
		f.cache.EXPECT().Save(gomock.Any(), "session:sid-1", gomock.Any(), 3600).Return(nil)

		session, err := f.svc.Register(context.Background(), req)
		require.NoError(t, err)

		assert.Equal(t, "signed-token", session.Token)
		assert.Equal(t, inserted.ID, session.UserID)
		assert.Equal(t, "alice", session.Username)
		assert.NotEqual(t, "password", inserted.Password)
		assert.NoError(t, password.Verify("password", inserted.Password))
	})

	t.Run("passwords did not match", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Register(context.Background(), dto.SignupRequest{Username: "alice", Password1: "a", Password2: "b"})
		assertCode(t, err, 400, dto.MessagePasswordMismatch)
	})

	t.Run("username already taken", func(t *testing.T) {
		f := newFixture(t)

		f.userRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		_, err := f.svc.Register(context.Background(), req)
		assertCode(t, err, 400, dto.MessageUsernameTaken)
	})

	t.Run("unique violation on insert", func(t *testing.T) {
		f := newFixture(t)

		f.userRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.userRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(fmt.Errorf("failed to insert user: %w", &pq.Error{Code: "23505"}))

		_, err := f.svc.Register(context.Background(), req)
		assertCode(t, err, 400, dto.MessageUsernameTaken)
	})

	t.Run("exist check error", func(t *testing.T) {
		f := newFixture(t)

		f.userRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, errors.New("database error"))

		_, err := f.svc.Register(context.Background(), req)
		require.Error(t, err)
		assert.Equal(t, 500, failure.GetCode(err))
	})
}

func TestAuthService_Login(t *testing.T) {
	validUser := activeUser(t)

	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "successful login",
			req:  dto.LoginRequest{Username: "alice", Password: "password"},
			setupMock: func(f fixture) {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser, nil)
				f.userRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
						assert.Contains(t, fields, userModel.FieldLastLogin)

						return nil
					})
				f.expectSession(validUser)
			},
		},
		{
			name: "unknown username",
			req:  dto.LoginRequest{Username: "nobody", Password: "password"},
			setupMock: func(f fixture) {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantCode: 401,
		},
		{
			name: "wrong password",
			req:  dto.LoginRequest{Username: "alice", Password: "wrongpassword"},
			setupMock: func(f fixture) {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser, nil)
			},
			wantCode: 401,
		},
		{
			name: "inactive user",
			req:  dto.LoginRequest{Username: "alice", Password: "password"},
			setupMock: func(f fixture) {
				inactive := validUser
				inactive.Active = false

				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(inactive, nil)
			},
			wantCode: 401,
		},
		{
			name: "database error",
			req:  dto.LoginRequest{Username: "alice", Password: "password"},
			setupMock: func(f fixture) {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, errors.New("database error"))
			},
			wantCode: 500,
		},
		{
			name: "token generation error",
			req:  dto.LoginRequest{Username: "alice", Password: "password"},
			setupMock: func(f fixture) {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser, nil)
				f.userRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.jwt.EXPECT().
					GenerateSessionToken(validUser.ID, validUser.Username).
					Return(nil, errors.New("token generation failed"))
			},
			wantCode: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			session, err := f.svc.Login(context.Background(), tt.req)

			if tt.wantCode == 0 {
				require.NoError(t, err)
				assert.Equal(t, "signed-token", session.Token)
				assert.Equal(t, "sid-1", session.SessionID)
				assert.Equal(t, validUser.ID, session.UserID)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))

			if tt.wantCode == 401 {
				assert.Equal(t, dto.MessageInvalidCredentials, err.Error())
			}
		})
	}
}

func TestAuthService_Logout(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Delete(gomock.Any(), "session:sid-1").Return(nil)
	require.NoError(t, f.svc.Logout(context.Background(), "sid-1"))

	require.NoError(t, f.svc.Logout(context.Background(), ""), "anonymous logout is a no-op")

	f.cache.EXPECT().Delete(gomock.Any(), "session:sid-2").Return(errors.New("redis down"))
	assert.Error(t, f.svc.Logout(context.Background(), "sid-2"))
}

func TestAuthService_Authenticate(t *testing.T) {
	claims := &jwt.Claims{UserID: "user-id-123", Username: "alice"}
	claims.ID = "sid-1"

	storeSession := func(userID string) func(context.Context, string, any) error {
		return func(_ context.Context, _ string, value any) error {
			*value.(*string) = userID

			return nil
		}
	}

	t.Run("valid session", func(t *testing.T) {
		f := newFixture(t)

		f.jwt.EXPECT().ValidateToken("token").Return(claims, nil)
		f.cache.EXPECT().Get(gomock.Any(), "session:sid-1", gomock.Any()).DoAndReturn(storeSession("user-id-123"))
		f.userRepo.EXPECT().
			Get(gomock.Any(), gomock.Any(), userModel.FieldID, userModel.FieldUsername, userModel.FieldActive).
			Return(userModel.User{ID: "user-id-123", Username: "alice", Active: true}, nil)

		id, err := f.svc.Authenticate(context.Background(), "token")
		require.NoError(t, err)
		assert.Equal(t, identity.Identity{UserID: "user-id-123", Username: "alice", SessionID: "sid-1"}, id)
	})

	t.Run("invalid token", func(t *testing.T) {
		f := newFixture(t)

		f.jwt.EXPECT().ValidateToken("bad").Return(nil, jwt.ErrInvalidToken)

		_, err := f.svc.Authenticate(context.Background(), "bad")
		assert.Equal(t, 401, failure.GetCode(err))
	})

	t.Run("revoked session", func(t *testing.T) {
		f := newFixture(t)

		f.jwt.EXPECT().ValidateToken("token").Return(claims, nil)
		f.cache.EXPECT().
			Get(gomock.Any(), "session:sid-1", gomock.Any()).
			Return(fmt.Errorf("failed to get cache value: %w", cache.Nil))

		_, err := f.svc.Authenticate(context.Background(), "token")
		assertCode(t, err, 401, dto.MessageSessionExpired)
	})

	t.Run("session owned by another user", func(t *testing.T) {
		f := newFixture(t)

		f.jwt.EXPECT().ValidateToken("token").Return(claims, nil)
		f.cache.EXPECT().Get(gomock.Any(), "session:sid-1", gomock.Any()).DoAndReturn(storeSession("someone-else"))

		_, err := f.svc.Authenticate(context.Background(), "token")
		assert.Equal(t, 401, failure.GetCode(err))
	})

	t.Run("deactivated user", func(t *testing.T) {
		f := newFixture(t)

		f.jwt.EXPECT().ValidateToken("token").Return(claims, nil)
		f.cache.EXPECT().Get(gomock.Any(), "session:sid-1", gomock.Any()).DoAndReturn(storeSession("user-id-123"))
		f.userRepo.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(userModel.User{ID: "user-id-123", Active: false}, nil)

		_, err := f.svc.Authenticate(context.Background(), "token")
		assert.Equal(t, 401, failure.GetCode(err))
	})

	t.Run("cache error", func(t *testing.T) {
		f := newFixture(t)

		f.jwt.EXPECT().ValidateToken("token").Return(claims, nil)
		f.cache.EXPECT().Get(gomock.Any(), "session:sid-1", gomock.Any()).Return(errors.New("redis down"))

		_, err := f.svc.Authenticate(context.Background(), "token")
		require.Error(t, err)
		assert.Equal(t, 500, failure.GetCode(err))
	})
}
