package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/placementflow/placementflow-backend/internal/config"
	"github.com/placementflow/placementflow-backend/internal/dtos"
	"github.com/placementflow/placementflow-backend/internal/logger"
	"github.com/placementflow/placementflow-backend/internal/models"
	"github.com/placementflow/placementflow-backend/internal/repos"
)

const (
	signupCoverLetterCredits = 3
	signupResolveAICredits   = 5
)

var ErrEmailTaken = errors.New("email already registered")

type AuthService interface {
	Register(ctx context.Context, req *dtos.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *dtos.LoginRequest) (string, *models.User, error)
	ParseToken(tokenString string) (uuid.UUID, error)
	AccessTTL() time.Duration
}

type authService struct {
	log     *logger.Logger
	db      *gorm.DB
	users   repos.UserRepo
	credits repos.UserCreditsRepo
	secret  []byte
	ttl     time.Duration
}

func NewAuthService(log *logger.Logger, cfg *config.Config, db *gorm.DB, users repos.UserRepo, credits repos.UserCreditsRepo) AuthService {
	return &authService{
		log:     log.With("service", "AuthService"),
		db:      db,
		users:   users,
		credits: credits,
		secret:  []byte(cfg.JWTSecretKey),
		ttl:     cfg.AccessTokenTTL,
	}
}

// Register creates the account and its starting credit balances in one
// transaction, so a user never exists without a credit row.
func (s *authService) Register(ctx context.Context, req *dtos.RegisterRequest) (*models.User, error) {
	exists, err := s.users.EmailExists(ctx, nil, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		ID:       uuid.New(),
		Email:    req.Email,
		Password: string(hashed),
		FullName: req.FullName,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.users.Create(ctx, tx, user); err != nil {
			return err
		}
		return s.credits.Create(ctx, tx, &models.UserCredits{
			ID:                 uuid.New(),
			UserID:             user.ID,
			CoverLetterCredits: signupCoverLetterCredits,
			ResolveAICredits:   signupResolveAICredits,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("Registered new user", "user_id", user.ID, "email", user.Email)
	return user, nil
}

func (s *authService) Login(ctx context.Context, req *dtos.LoginRequest) (string, *models.User, error) {
	user, err := s.users.GetByEmail(ctx, nil, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("fetch user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return token, user, nil
}

func (s *authService) ParseToken(tokenString string) (uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, ErrUnauthenticated
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return uuid.Nil, ErrUnauthenticated
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, ErrUnauthenticated
	}
	return userID, nil
}

func (s *authService) AccessTTL() time.Duration { return s.ttl }
