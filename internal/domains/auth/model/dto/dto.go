package dto

import (
	"time"
	"todolist/infras/jwt"
	userModel "todolist/internal/domains/user/model"
	gModel "todolist/shared/model"
	"todolist/shared/timezone"

	"github.com/google/uuid"
)

const (
	MessagePasswordMismatch   = "Passwords did not match"
	MessageUsernameTaken      = "That username has already been taken. Please choose a new username"
	MessageInvalidCredentials = "Username and password did not match"
	MessageSessionExpired     = "session expired"
)

type SignupRequest struct {
	Username  string `form:"username"  label:"username"  validate:"required,max=150" mod:"trim"`
	Password1 string `form:"password1" label:"password"  validate:"required"`
	Password2 string `form:"password2" label:"password confirmation" validate:"required"`
}

func (r *SignupRequest) ToUserModel(hashedPassword string) userModel.User {
	return userModel.User{
		ID:       uuid.NewString(),
		Username: r.Username,
		Password: hashedPassword,
		Active:   true,
		Metadata: gModel.NewMetadata(timezone.Now()),
	}
}

type LoginRequest struct {
	Username string `form:"username" label:"username" validate:"required" mod:"trim"`
	Password string `form:"password" label:"password" validate:"required"`
}

type UpdateLastLoginRequest struct {
	LastLogin time.Time `db:"last_login"`
}

// Session is an established login. Token goes into the session cookie.
type Session struct {
	Token     string
	SessionID string
	UserID    string
	Username  string
	ExpiresAt time.Time
}

func (s *Session) FromToken(token *jwt.Token, user userModel.User) {
	s.Token = token.Value
	s.SessionID = token.SessionID
	s.UserID = user.ID
	s.Username = user.Username
	s.ExpiresAt = token.ExpiresAt
}
