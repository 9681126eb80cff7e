package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/minimart/backend/internal/core/domain"
	"github.com/minimart/backend/internal/port"
)

// IdentityService handles registration and login against the user table and
// issues bearer tokens carrying the validated identity.
type IdentityService struct {
	store  port.OwnershipStore
	issuer port.TokenIssuer
	log    *zap.Logger

	// allowRoleSignup lets registration requests pick a role. Off by default;
	// only enabled for local bootstrap of the first admin.
	allowRoleSignup bool
}

func NewIdentityService(store port.OwnershipStore, issuer port.TokenIssuer, log *zap.Logger, allowRoleSignup bool) *IdentityService {
	return &IdentityService{
		store:           store,
		issuer:          issuer,
		log:             log,
		allowRoleSignup: allowRoleSignup,
	}
}

func (s *IdentityService) Register(ctx context.Context, username, email, password, role string) (domain.User, error) {
	if username == "" || password == "" {
		return domain.User{}, domain.ErrInvalidCredentials
	}

	r := domain.RoleUser
	if s.allowRoleSignup && role != "" {
		parsed, err := domain.ParseRole(role)
		if err != nil {
			return domain.User{}, fmt.Errorf("%w: %v", domain.ErrInvalidCredentials, err)
		}
		r = parsed
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         r,
	}

	id, err := s.store.CreateUser(ctx, user)
	if err != nil {
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}

	user.ID = id
	user.PasswordHash = ""
	s.log.Info("user registered", zap.String("username", username), zap.String("role", string(r)))
	return user, nil
}

// Login checks the password and returns a signed access token. Unknown users
// and wrong passwords are indistinguishable to the caller.
func (s *IdentityService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.store.FindUserByUsername(ctx, username)
	if err != nil {
		return "", fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return "", domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(domain.Identity{Username: user.Username, Role: user.Role})
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	return token, nil
}

func (s *IdentityService) GetUser(ctx context.Context, id int64) (domain.User, error) {
	found, err := s.store.FindUserByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("find user: %w", err)
	}
	if found == nil {
		return domain.User{}, domain.ErrUserNotFound
	}

	user := *found
	user.PasswordHash = ""
	return user, nil
}
