// Package dto содержит JSON представления запросов и ответов HTTP API.
package dto

import (
	"hdnotes/internal/auth/domain/entities"
)

// SendOTPRequest содержит данные для начала регистрации.
type SendOTPRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	DateOfBirth string `json:"dateOfBirth"`
	Password    string `json:"password"`
}

// SignupRequest содержит email и код подтверждения.
type SignupRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// SigninRequest содержит учетные данные для входа.
type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// User - публичное представление пользователя.
type User struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	DateOfBirth *string `json:"dateOfBirth"`
	IsVerified  bool    `json:"isVerified"`
}

// AuthResponse возвращается после регистрации и входа.
type AuthResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    User   `json:"user"`
}

// ProfileResponse возвращает профиль текущего пользователя.
type ProfileResponse struct {
	User User `json:"user"`
}

// MessageResponse - ответ, состоящий из одного сообщения.
type MessageResponse struct {
	Message string `json:"message"`
}

// NewUser строит публичное представление без секретов.
func NewUser(u *entities.User) User {
	out := User{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		IsVerified: u.IsVerified,
	}
	if dob := u.DateOfBirth(); dob != nil {
		s := dob.Format(entities.DateLayout)
		out.DateOfBirth = &s
	}
	return out
}
