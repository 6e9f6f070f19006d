package services

import (
	"context"
	"fmt"

	"github.com/justsurfingit/ejobs/internal/apperr"
	"github.com/justsurfingit/ejobs/internal/dtos"
	"github.com/justsurfingit/ejobs/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Fields a user may change on their own account.
var editableUserFields = map[string]bool{
	"first_name": true,
	"last_name":  true,
	"email":      true,
}

type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

// Register creates an EMPLOYER or CANDIDATE account with a hashed password.
func (s *UserService) Register(ctx context.Context, req *dtos.RegisterRequest) (*models.User, error) {
	role := models.Role(req.Role)
	if role == "" {
		role = models.RoleCandidate
	}
	if role != models.RoleEmployer && role != models.RoleCandidate {
		return nil, apperr.BadRequest("invalid role").WithField("role", "must be EMPLOYER or CANDIDATE")
	}

	var n int64
	if err := s.DB.WithContext(ctx).Model(&models.User{}).Where("username = ?", req.Username).Count(&n).Error; err != nil {
		return nil, translate(err, "user")
	}
	if n > 0 {
		return nil, apperr.Conflict("a user with that username already exists")
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Username:  req.Username,
		Password:  hash,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Avatar:    req.Avatar,
		Role:      role,
		IsActive:  true,
	}
	if err := s.DB.WithContext(ctx).Create(user).Error; err != nil {
		return nil, translate(err, "user")
	}
	return user, nil
}

// EnsureAdmin creates the admin account when it does not exist yet. It never
// changes an existing account.
func (s *UserService) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	var n int64
	if err := s.DB.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Count(&n).Error; err != nil {
		return false, translate(err, "user")
	}
	if n > 0 {
		return false, nil
	}
	hash, err := HashPassword(password)
	if err != nil {
		return false, err
	}
	admin := &models.User{Username: username, Password: hash, Role: models.RoleAdmin, IsActive: true, IsVerified: true}
	if err := s.DB.WithContext(ctx).Create(admin).Error; err != nil {
		return false, translate(err, "user")
	}
	return true, nil
}

// GetActiveUser loads an active user by id.
func (s *UserService) GetActiveUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := s.DB.WithContext(ctx).Where("id = ? AND is_active = ?", id, true).First(&user).Error
	if err != nil {
		return nil, translate(err, "user")
	}
	return &user, nil
}

// UpdateCurrentUser applies a partial update. Only first_name, last_name and
// email may appear in fields.
func (s *UserService) UpdateCurrentUser(ctx context.Context, user *models.User, fields map[string]interface{}) (*models.User, error) {
	updates := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		if !editableUserFields[k] {
			return nil, apperr.BadRequest("Invalid fields")
		}
		str, ok := v.(string)
		if !ok {
			return nil, apperr.BadRequest("Invalid fields").WithField(k, "must be a string")
		}
		updates[k] = str
	}
	if len(updates) > 0 {
		if err := s.DB.WithContext(ctx).Model(user).Updates(updates).Error; err != nil {
			return nil, translate(err, "user")
		}
	}
	return s.GetActiveUser(ctx, user.ID)
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
