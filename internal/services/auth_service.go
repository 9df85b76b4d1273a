package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/isdelr/interview-vault-be/internal/models"
	"github.com/isdelr/interview-vault-be/internal/store"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// TokenIssuer produces a bearer credential for an authenticated user.
type TokenIssuer interface {
	Issue(user models.User) (string, error)
}

// AuthResult is returned by a successful registration or login.
type AuthResult struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// AuthServiceProvider defines the interface for auth services.
type AuthServiceProvider interface {
	Register(ctx context.Context, username, email, password, fullName string) (AuthResult, error)
	Login(ctx context.Context, username, password string) (AuthResult, error)
	GetUser(ctx context.Context, username string) (models.User, error)
}

// AuthService registers users and exchanges credentials for tokens.
type AuthService struct {
	users      store.UserStore
	roles      store.RoleStore
	issuer     TokenIssuer
	bcryptCost int
	now        func() time.Time

	// dummyHash is compared against when the user does not exist so that
	// unknown usernames cost the same as wrong passwords.
	dummyHash []byte
}

// NewAuthService creates a new AuthService.
func NewAuthService(users store.UserStore, roles store.RoleStore, issuer TokenIssuer, bcryptCost int) *AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	dummy, _ := bcrypt.GenerateFromPassword([]byte("interview-vault"), bcryptCost)
	return &AuthService{
		users:      users,
		roles:      roles,
		issuer:     issuer,
		bcryptCost: bcryptCost,
		now:        time.Now,
		dummyHash:  dummy,
	}
}

// Register creates a new user with the default role and returns a token for it.
func (s *AuthService) Register(ctx context.Context, username, email, password, fullName string) (AuthResult, error) {
	exists, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return AuthResult{}, err
	}
	if exists {
		return AuthResult{}, fmt.Errorf("%w: username already exists", ErrConflict)
	}

	exists, err = s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return AuthResult{}, err
	}
	if exists {
		return AuthResult{}, fmt.Errorf("%w: email already exists", ErrConflict)
	}

	if _, err := s.ensureRole(ctx, models.RoleUser); err != nil {
		return AuthResult{}, fmt.Errorf("failed to ensure default role: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return AuthResult{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now().UTC()
	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
		FullName:     fullName,
		Roles:        []models.RoleName{models.RoleUser},
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := s.users.Create(ctx, user); err != nil {
		// The existence checks above race with concurrent registrations;
		// the store's unique indexes are authoritative.
		if errors.Is(err, store.ErrDuplicate) {
			return AuthResult{}, fmt.Errorf("%w: username or email already exists", ErrConflict)
		}
		return AuthResult{}, err
	}
	log.Info().Str("username", username).Msg("Registered new user")

	stored, err := s.authenticate(ctx, username, password)
	if err != nil {
		return AuthResult{}, err
	}
	return s.issue(stored)
}

// Login verifies credentials and returns a token for the user.
func (s *AuthService) Login(ctx context.Context, username, password string) (AuthResult, error) {
	if _, err := s.authenticate(ctx, username, password); err != nil {
		return AuthResult{}, err
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return AuthResult{}, fmt.Errorf("%w: user %s", ErrNotFound, username)
		}
		return AuthResult{}, err
	}
	return s.issue(user)
}

// GetUser returns the profile of username.
func (s *AuthService) GetUser(ctx context.Context, username string) (models.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.User{}, fmt.Errorf("%w: user %s", ErrNotFound, username)
		}
		return models.User{}, err
	}
	user.PasswordHash = ""
	return user, nil
}

// authenticate checks username/password against the stored hash. Unknown
// users, wrong passwords and inactive accounts are indistinguishable.
func (s *AuthService) authenticate(ctx context.Context, username, password string) (models.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return models.User{}, err
		}
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		return models.User{}, ErrAuthentication
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, ErrAuthentication
	}
	if !user.IsActive {
		return models.User{}, ErrAuthentication
	}
	return user, nil
}

// ensureRole fetches the role record, creating it on a miss. A concurrent
// creator winning the race is resolved by reading its record.
func (s *AuthService) ensureRole(ctx context.Context, name models.RoleName) (models.Role, error) {
	role, err := s.roles.FindByName(ctx, name)
	if err == nil {
		return role, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return models.Role{}, err
	}

	role, err = s.roles.Create(ctx, models.Role{Name: name})
	if errors.Is(err, store.ErrDuplicate) {
		return s.roles.FindByName(ctx, name)
	}
	return role, err
}

func (s *AuthService) issue(user models.User) (AuthResult, error) {
	token, err := s.issuer.Issue(user)
	if err != nil {
		return AuthResult{}, fmt.Errorf("failed to issue token: %w", err)
	}
	return AuthResult{Token: token, Username: user.Username, Email: user.Email}, nil
}
