package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"societyhub-be/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TokenIssuer signs session tokens; utils.TokenManager implements it.
type TokenIssuer interface {
	Generate(userID primitive.ObjectID, role models.Role) (string, error)
}

type SignupInput struct {
	Name            string
	Email           string
	Password        string
	Role            models.Role
	ApartmentNumber string
}

type AuthService struct {
	users      UserStore
	tokens     TokenIssuer
	bcryptCost int
}

func NewAuthService(users UserStore, tokens TokenIssuer, bcryptCost int) *AuthService {
	return &AuthService{users: users, tokens: tokens, bcryptCost: bcryptCost}
}

// Signup registers a user and returns a session token for them.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (string, *models.User, error) {
	if len(in.Password) < 6 {
		return "", nil, models.ErrValidation("Password must be at least 6 characters")
	}
	user := &models.User{
		Name:            in.Name,
		Email:           in.Email,
		Password:        in.Password,
		Role:            in.Role,
		ApartmentNumber: in.ApartmentNumber,
	}
	if err := user.Normalize(); err != nil {
		return "", nil, err
	}

	exists, err := s.users.EmailExists(ctx, user.Email)
	if err != nil {
		return "", nil, err
	}
	if exists {
		return "", nil, models.ErrValidation("User already exists")
	}

	if err := user.HashPassword(s.bcryptCost); err != nil {
		return "", nil, err
	}
	now := time.Now()
	user.CreatedAt, user.UpdatedAt = now, now
	if err := s.users.Create(ctx, user); err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Generate(user.ID, user.Role)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Login checks the credentials and returns a fresh session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", nil, models.ErrValidation("Email and password are required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		var nf *models.NotFoundError
		if errors.As(err, &nf) {
			return "", nil, models.ErrUnauthorized("Invalid email or password")
		}
		return "", nil, err
	}
	if !user.ComparePassword(password) {
		return "", nil, models.ErrUnauthorized("Invalid email or password")
	}

	token, err := s.tokens.Generate(user.ID, user.Role)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) Me(ctx context.Context, actor models.Actor) (*models.User, error) {
	return s.users.FindByID(ctx, actor.UserID)
}

// Seed replaces the sample accounts with fresh ones.
func (s *AuthService) Seed(ctx context.Context, accounts []SignupInput) ([]*models.User, error) {
	emails := make([]string, 0, len(accounts))
	for _, a := range accounts {
		emails = append(emails, strings.ToLower(strings.TrimSpace(a.Email)))
	}
	if _, err := s.users.DeleteByEmails(ctx, emails); err != nil {
		return nil, err
	}

	created := make([]*models.User, 0, len(accounts))
	for _, a := range accounts {
		_, user, err := s.Signup(ctx, a)
		if err != nil {
			return created, err
		}
		created = append(created, user)
	}
	return created, nil
}
