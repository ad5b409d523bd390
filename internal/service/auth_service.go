package service

import (
	"dealspot/internal/core/apperr"
	"dealspot/internal/core/auth"
	"dealspot/internal/domain"
	"dealspot/pkg/utils"
)

type userRepo interface {
	Create(u *domain.User) error
	FindByID(id string) (*domain.User, error)
	FindByEmail(email string) (*domain.User, error)
	FindByEmailOrUsername(email, username string) (*domain.User, error)
	List(offset, limit int) ([]domain.User, int64, error)
	Update(u *domain.User) error
}

type AuthService struct {
	users userRepo
	jwter *auth.JWTer
}

func NewAuthService(users userRepo, jwter *auth.JWTer) *AuthService {
	return &AuthService{users: users, jwter: jwter}
}

// Register 新用户默认 user 角色，返回用户和 JWT
func (s *AuthService) Register(username, email, password string) (*domain.User, string, error) {
	existing, err := s.users.FindByEmailOrUsername(email, username)
	if err != nil {
		return nil, "", apperr.Internal("register failed", err)
	}
	if existing != nil {
		if existing.Email == email {
			return nil, "", apperr.BadRequest("email already taken")
		}
		return nil, "", apperr.BadRequest("username already taken")
	}

	u := &domain.User{
		ID:           utils.NewID(),
		Username:     username,
		Email:        email,
		PasswordHash: utils.HashPassword(password),
		Role:         domain.RoleUser,
	}
	if err := s.users.Create(u); err != nil {
		return nil, "", apperr.Internal("register failed", err)
	}
	tok, err := s.jwter.Issue(u.ID, u.Role)
	if err != nil {
		return nil, "", apperr.Internal("issue token failed", err)
	}
	return u, tok, nil
}

// Login 邮箱不存在和密码错误返回同一个 401 提示
func (s *AuthService) Login(email, password string) (*domain.User, string, error) {
	u, err := s.users.FindByEmail(email)
	if err != nil {
		return nil, "", apperr.Internal("login failed", err)
	}
	if u == nil || !utils.CheckPassword(password, u.PasswordHash) {
		return nil, "", apperr.Unauthorized("invalid email or password")
	}
	tok, err := s.jwter.Issue(u.ID, u.Role)
	if err != nil {
		return nil, "", apperr.Internal("issue token failed", err)
	}
	return u, tok, nil
}

func (s *AuthService) Me(userID string) (*domain.User, error) {
	u, err := s.users.FindByID(userID)
	if err != nil {
		return nil, apperr.Internal("load user failed", err)
	}
	if u == nil {
		return nil, apperr.NotFound("user not found")
	}
	return u, nil
}
