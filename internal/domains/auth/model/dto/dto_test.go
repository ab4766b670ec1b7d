package dto_test

import (
	"strings"
	"testing"
	"time"
	"todolist/infras/jwt"
	"todolist/internal/domains/auth/model/dto"
	userModel "todolist/internal/domains/user/model"
	"todolist/shared/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupRequest_ToUserModel(t *testing.T) {
	req := dto.SignupRequest{Username: "alice", Password1: "secret", Password2: "secret"}

	user := req.ToUserModel("hashed")

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "hashed", user.Password)
	assert.True(t, user.Active)
	assert.Nil(t, user.LastLogin)
	assert.False(t, user.CreatedAt.IsZero())
	assert.Equal(t, user.CreatedAt, user.ModifiedAt)
}

func TestSignupRequest_Validation(t *testing.T) {
	valid := dto.SignupRequest{Username: "alice", Password1: "a", Password2: "a"}
	require.NoError(t, validator.ValidateStruct(&valid))

	missing := dto.SignupRequest{Password1: "a", Password2: "a"}
	err := validator.ValidateStruct(&missing)
	require.Error(t, err)
	assert.Equal(t, "username is required", err.Error())

	long := dto.SignupRequest{Username: strings.Repeat("x", 151), Password1: "a", Password2: "a"}
	err = validator.ValidateStruct(&long)
	require.Error(t, err)
	assert.Equal(t, "username must be at most 150 characters", err.Error())
}

func TestSession_FromToken(t *testing.T) {
	expires := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	token := &jwt.Token{Value: "signed", SessionID: "sid", ExpiresAt: expires}

	var session dto.Session
	session.FromToken(token, userModel.User{ID: "user-1", Username: "alice"})

	assert.Equal(t, dto.Session{
		Token:     "signed",
		SessionID: "sid",
		UserID:    "user-1",
		Username:  "alice",
		ExpiresAt: expires,
	}, session)
}
