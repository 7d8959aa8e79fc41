package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/mcnijman/go-emailaddress"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/recipe-app/api/internal/models"
	"github.com/recipe-app/api/internal/repository"
	appErr "github.com/recipe-app/api/pkg/errors"
	"github.com/recipe-app/api/pkg/logger"
)

// AuthService is the identity store: account creation, credential checks and
// bearer tokens.
type AuthService interface {
	CreateUser(ctx context.Context, email, password string, extra UserExtra) (*models.User, error)
	CreateSuperuser(ctx context.Context, email, password string) (*models.User, error)
	// Authenticate never reveals whether the email exists.
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	IssueToken(u *models.User) (*Token, error)
	// ParseToken returns the user id carried by a valid, unexpired token.
	ParseToken(token string) (uuid.UUID, error)
	// ActiveUser loads the user a token was issued to, rejecting deleted or
	// deactivated accounts.
	ActiveUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, in ProfileUpdate) (*models.User, error)
}

// UserExtra carries the optional account fields. IsActive defaults to true.
type UserExtra struct {
	Name        string
	IsActive    *bool
	IsStaff     bool
	IsSuperuser bool
}

type ProfileUpdate struct {
	Name     *string
	Password *string
}

type Token struct {
	AccessToken string
	ExpiresIn   time.Duration
}

// ErrAuthFailed is returned for every credential mismatch.
var ErrAuthFailed = appErr.New(appErr.CodeInvalid, "unable to authenticate with provided credentials")

type authService struct {
	userRepo   repository.UserRepository
	hmacSecret []byte
	tokenTTL   time.Duration
	bcryptCost int

	// dummyHash is compared against when the account doesn't exist, so a miss
	// costs the same bcrypt work as a wrong password.
	dummyHash   []byte
	compareHash func(hash, password []byte) error
}

func NewAuthService(userRepo repository.UserRepository, secret []byte, tokenTTL time.Duration) AuthService {
	s := &authService{
		userRepo:    userRepo,
		hmacSecret:  secret,
		tokenTTL:    tokenTTL,
		compareHash: bcrypt.CompareHashAndPassword,
	}
	s.setCost(bcrypt.DefaultCost)
	return s
}

func (s *authService) setCost(cost int) {
	s.bcryptCost = cost
	h, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), cost)
	if err != nil {
		panic(fmt.Sprintf("bcrypt dummy hash: %v", err))
	}
	s.dummyHash = h
}

// rejectAfterDummyCompare burns one bcrypt comparison before failing.
func (s *authService) rejectAfterDummyCompare(password string) error {
	_ = s.compareHash(s.dummyHash, []byte(password))
	return ErrAuthFailed
}

var _ AuthService = (*authService)(nil)

// NormalizeEmail lowercases the domain part of an address and leaves the local
// part as given. It rejects addresses that don't parse.
func NormalizeEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", appErr.Invalid("email", "users must have an email address")
	}
	addr, err := emailaddress.Parse(email)
	if err != nil {
		return "", appErr.Invalid("email", "enter a valid email address")
	}
	return addr.LocalPart + "@" + strings.ToLower(addr.Domain), nil
}

func (s *authService) CreateUser(ctx context.Context, email, password string, extra UserExtra) (*models.User, error) {
	normalized, err := NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if password == "" {
		return nil, appErr.Invalid("password", "this field may not be blank")
	}

	ph, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "hash password failed")
	}

	active := true
	if extra.IsActive != nil {
		active = *extra.IsActive
	}
	user := &models.User{
		Email:        normalized,
		Name:         strings.TrimSpace(extra.Name),
		PasswordHash: string(ph),
		IsActive:     active,
		IsStaff:      extra.IsStaff,
		IsSuperuser:  extra.IsSuperuser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.L().Info("user created", zap.String("user_id", user.ID.String()))
	return user, nil
}

func (s *authService) CreateSuperuser(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.CreateUser(ctx, email, password, UserExtra{})
	if err != nil {
		return nil, err
	}
	user.IsStaff = true
	user.IsSuperuser = true
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	logger.L().Info("superuser created", zap.String("user_id", user.ID.String()))
	return user, nil
}

func (s *authService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	normalized, err := NormalizeEmail(email)
	if err != nil {
		return nil, s.rejectAfterDummyCompare(password)
	}

	var user models.User
	if err := s.userRepo.GetByEmail(ctx, normalized, &user); err != nil {
		if appErr.IsCode(err, appErr.CodeNotFound) {
			return nil, s.rejectAfterDummyCompare(password)
		}
		return nil, err
	}
	if err := s.compareHash([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrAuthFailed
	}
	if !user.IsActive {
		return nil, ErrAuthFailed
	}
	return &user, nil
}

func (s *authService) IssueToken(u *models.User) (*Token, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   u.ID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	})

	signed, err := token.SignedString(s.hmacSecret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &Token{AccessToken: signed, ExpiresIn: s.tokenTTL}, nil
}

func (s *authService) ParseToken(tokenStr string) (uuid.UUID, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		return s.hmacSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return uuid.Nil, appErr.Wrap(err, appErr.CodeUnauthenticated, "invalid token")
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, appErr.Wrap(err, appErr.CodeUnauthenticated, "invalid token subject")
	}
	return id, nil
}

func (s *authService) ActiveUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.userRepo.GetByID(ctx, id, &user); err != nil {
		if appErr.IsCode(err, appErr.CodeNotFound) {
			return nil, appErr.New(appErr.CodeUnauthenticated, "user not found")
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, appErr.New(appErr.CodeUnauthenticated, "user inactive")
	}
	return &user, nil
}

func (s *authService) UpdateProfile(ctx context.Context, id uuid.UUID, in ProfileUpdate) (*models.User, error) {
	var user models.User
	if err := s.userRepo.GetByID(ctx, id, &user); err != nil {
		return nil, err
	}
	if in.Name != nil {
		user.Name = strings.TrimSpace(*in.Name)
	}
	if in.Password != nil {
		if *in.Password == "" {
			return nil, appErr.Invalid("password", "this field may not be blank")
		}
		ph, err := bcrypt.GenerateFromPassword([]byte(*in.Password), s.bcryptCost)
		if err != nil {
			return nil, appErr.Wrap(err, appErr.CodeInternal, "hash password failed")
		}
		user.PasswordHash = string(ph)
	}
	if err := s.userRepo.Update(ctx, &user); err != nil {
		return nil, err
	}
	logger.L().Info("profile updated", zap.String("user_id", user.ID.String()))
	return &user, nil
}
