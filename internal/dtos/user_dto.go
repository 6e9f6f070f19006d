package dtos

import "github.com/justsurfingit/ejobs/internal/models"

type RegisterRequest struct {
	Username  string `json:"username" binding:"required,max=150"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"first_name" binding:"max=150"`
	LastName  string `json:"last_name" binding:"max=150"`
	Email     string `json:"email" binding:"omitempty,email"`
	Avatar    string `json:"avatar" binding:"omitempty,url"`
	// Defaults to CANDIDATE when empty.
	Role string `json:"role" binding:"omitempty,oneof=EMPLOYER CANDIDATE"`
}

// UserResponse never carries the password.
type UserResponse struct {
	ID         uint   `json:"id"`
	Username   string `json:"username"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Avatar     string `json:"avatar"`
	Role       string `json:"role"`
	IsVerified bool   `json:"is_verified"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Username:   u.Username,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Email:      u.Email,
		Avatar:     u.Avatar,
		Role:       string(u.Role),
		IsVerified: u.IsVerified,
	}
}
