package usecase

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"tamilsociety/internal/domain/entity"
	"tamilsociety/internal/domain/repository"
	"tamilsociety/internal/domain/service"
	"tamilsociety/pkg/errors"
	"tamilsociety/pkg/logger"
)

type AuthUseCase struct {
	userRepo repository.UserRepository
	tokens   service.TokenIssuer
	cost     int
	now      func() time.Time
}

func NewAuthUseCase(userRepo repository.UserRepository, tokens service.TokenIssuer) *AuthUseCase {
	return &AuthUseCase{
		userRepo: userRepo,
		tokens:   tokens,
		cost:     bcrypt.DefaultCost,
		now:      time.Now,
	}
}

type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Name     string `json:"name" validate:"required,max=120"`
	Phone    string `json:"phone" validate:"omitempty,max=32"`
}

type AuthResult struct {
	User      *entity.User `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
}

func (uc *AuthUseCase) issue(user *entity.User) (*AuthResult, error) {
	token, expiresAt, err := uc.tokens.Issue(user)
	if err != nil {
		return nil, errors.Internal("Failed to generate authentication token", err)
	}
	return &AuthResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

func (uc *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), uc.cost)
	if err != nil {
		return nil, errors.Internal("Failed to hash password", err)
	}

	user := &entity.User{
		Email:        strings.TrimSpace(input.Email),
		Name:         strings.TrimSpace(input.Name),
		Phone:        strings.TrimSpace(input.Phone),
		PasswordHash: string(hash),
		Role:         entity.RoleUser,
		Active:       true,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, "CONFLICT") {
			return nil, errors.Conflict("Email already in use", err)
		}
		return nil, err
	}

	return uc.issue(user)
}

// Login answers 401 for both unknown emails and wrong passwords.
func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return nil, errors.Unauthorized("Invalid credentials", nil)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Debug("Login failed for %s: %v", user.Email, err)
		return nil, errors.Unauthorized("Invalid credentials", nil)
	}
	if !user.Active {
		return nil, errors.Forbidden("Account is disabled", nil)
	}

	now := uc.now()
	user.LastLoginAt = &now
	if err := uc.userRepo.Update(ctx, user); err != nil {
		logger.Warn("Failed to record login for %s: %v", user.ID.Hex(), err)
	}

	return uc.issue(user)
}

func (uc *AuthUseCase) GetUserByID(ctx context.Context, id string) (*entity.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.Unauthorized("Invalid session", err)
	}
	return uc.userRepo.GetByID(ctx, oid)
}

// SeedAdmin creates the configured administrator when the email is unknown.
// An existing account is promoted to admin but its password is kept.
func (uc *AuthUseCase) SeedAdmin(ctx context.Context, email, password, name string) error {
	if email == "" || password == "" {
		return nil
	}

	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err == nil {
		if existing.Role == entity.RoleAdmin && existing.Active {
			return nil
		}
		existing.Role = entity.RoleAdmin
		existing.Active = true
		logger.Info("Promoting %s to admin", existing.Email)
		return uc.userRepo.Update(ctx, existing)
	}
	if !errors.Is(err, "NOT_FOUND") {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), uc.cost)
	if err != nil {
		return errors.Internal("Failed to hash password", err)
	}
	admin := &entity.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Role:         entity.RoleAdmin,
		Active:       true,
	}
	if err := uc.userRepo.Create(ctx, admin); err != nil {
		return err
	}

	logger.Info("Seeded admin account %s", admin.Email)
	return nil
}
