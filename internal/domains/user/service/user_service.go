package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"catalog-backend/internal/domains/user"
	"catalog-backend/pkg/jwt"
)

const bcryptCost = 12

type userService struct {
	repo user.Repository
	jwt  *jwt.Manager
}

func NewUserService(repo user.Repository, jwtManager *jwt.Manager) user.Service {
	return &userService{repo: repo, jwt: jwtManager}
}

func (s *userService) Register(ctx context.Context, req *user.RegisterRequest) (*user.AuthResult, error) {
	if err := req.Validate(); err != nil {
		return nil, user.NewInvalidUserData(err)
	}

	phone := strings.TrimSpace(req.Phone)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.repo.GetByPhone(ctx, phone)
	if err != nil {
		return nil, user.NewRegisterError(err)
	}
	if existing != nil {
		return nil, user.NewUserAlreadyExists("phone")
	}

	existing, err = s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, user.NewRegisterError(err)
	}
	if existing != nil {
		return nil, user.NewUserAlreadyExists("email")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, user.NewRegisterError(err)
	}

	created, err := s.repo.Create(ctx, &user.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		Phone:    phone,
		Gender:   req.Gender,
		Password: string(hash),
	})
	if err != nil {
		if user.IsConflict(err) {
			return nil, err
		}
		return nil, user.NewRegisterError(err)
	}

	token, err := s.jwt.GenerateToken(created.ID.String(), created.Phone)
	if err != nil {
		return nil, user.NewRegisterError(err)
	}

	return &user.AuthResult{User: created, Token: token}, nil
}

func (s *userService) Login(ctx context.Context, req *user.LoginRequest) (*user.AuthResult, error) {
	if err := req.Validate(); err != nil {
		return nil, user.NewInvalidUserData(err)
	}

	u, err := s.repo.GetByPhone(ctx, strings.TrimSpace(req.Phone))
	if err != nil {
		return nil, user.NewLoginError(err)
	}
	if u == nil {
		return nil, user.NewInvalidCredentials()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)); err != nil {
		return nil, user.NewInvalidCredentials()
	}

	token, err := s.jwt.GenerateToken(u.ID.String(), u.Phone)
	if err != nil {
		return nil, user.NewLoginError(err)
	}

	return &user.AuthResult{User: u, Token: token}, nil
}

func (s *userService) CheckToken(ctx context.Context, token string) (*user.User, error) {
	claims, err := s.jwt.ValidateToken(token)
	if err != nil {
		return nil, user.NewInvalidToken()
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, user.NewInvalidToken()
	}

	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, user.NewLoginError(err)
	}
	if u == nil {
		return nil, user.NewInvalidToken()
	}
	return u, nil
}

func (s *userService) GetUser(ctx context.Context, id string) (*user.User, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, user.NewInvalidUserID(id)
	}

	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, user.NewListUsersError(err)
	}
	if u == nil {
		return nil, user.NewUserNotFound(id)
	}
	return u, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]*user.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, user.NewListUsersError(err)
	}
	return users, nil
}
