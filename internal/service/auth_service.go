package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/innovators-hub-api/internal/access"
	"github.com/noah-isme/innovators-hub-api/internal/models"
	"github.com/noah-isme/innovators-hub-api/internal/repository"
	appErrors "github.com/noah-isme/innovators-hub-api/pkg/errors"
)

type authUserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindProfile(ctx context.Context, id string) (*models.Profile, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	CreateWithProfile(ctx context.Context, user *models.User, profile *models.Profile) error
}

// AuthConfig defines configuration for authentication flows.
type AuthConfig struct {
	AccessTokenSecret string
	AccessTokenExpiry time.Duration
	Issuer            string
}

// AuthService provides sign-up, sign-in and session resolution.
type AuthService struct {
	repo      authUserRepository
	validator *validator.Validate
	logger    *zap.Logger
	config    AuthConfig
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(repo authUserRepository, validate *validator.Validate, logger *zap.Logger, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if config.AccessTokenExpiry <= 0 {
		config.AccessTokenExpiry = 24 * time.Hour
	}
	return &AuthService{repo: repo, validator: validate, logger: logger, config: config}
}

// SignUp creates the user and profile, then signs the user in.
func (s *AuthService) SignUp(ctx context.Context, req models.SignUpRequest) (*models.SessionResponse, error) {
	req.Email = strings.TrimSpace(req.Email)
	req.FullName = strings.TrimSpace(req.FullName)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.As(err, appErrors.ErrValidation, "invalid sign up payload")
	}

	exists, err := s.repo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, appErrors.As(err, appErrors.ErrInternal, "failed to check email")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.As(err, appErrors.ErrInternal, "failed to hash password")
	}

	user := &models.User{Email: req.Email, PasswordHash: string(hash)}
	profile := &models.Profile{FullName: req.FullName, Role: req.Role}
	if req.FacultyID != "" {
		facultyID := req.FacultyID
		profile.FacultyID = &facultyID
	}
	if studentID := strings.TrimSpace(req.StudentID); studentID != "" && req.Role == models.RoleStudent {
		profile.StudentID = &studentID
	}

	if err := s.repo.CreateWithProfile(ctx, user, profile); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, appErrors.As(err, appErrors.ErrConflict, "email already registered")
		case errors.Is(err, repository.ErrUnknownReference):
			return nil, appErrors.As(err, appErrors.ErrValidation, "unknown faculty")
		}
		return nil, appErrors.As(err, appErrors.ErrInternal, "failed to create account")
	}
	s.logger.Info("account created", zap.String("user_id", user.ID), zap.String("role", string(profile.Role)))

	return s.issue(user, profile)
}

// Login authenticates a user and returns an access token with the session.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.SessionResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.As(err, appErrors.ErrValidation, "invalid login payload")
	}

	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid email or password")
		}
		return nil, appErrors.As(err, appErrors.ErrInternal, "failed to fetch user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid email or password")
	}

	profile, err := s.repo.FindProfile(ctx, user.ID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.As(err, appErrors.ErrInternal, "failed to load profile")
	}

	return s.issue(user, profile)
}

// ResolveSession loads the profile behind validated claims. A store failure leaves the
// session unresolved so the gate reports it as pending rather than denying access.
func (s *AuthService) ResolveSession(ctx context.Context, claims *models.JWTClaims) *access.Session {
	if claims == nil {
		return &access.Session{Resolved: true}
	}
	profile, err := s.repo.FindProfile(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &access.Session{Resolved: true, UserID: claims.UserID}
		}
		s.logger.Warn("profile lookup failed", zap.String("user_id", claims.UserID), zap.Error(err))
		return &access.Session{Resolved: false, UserID: claims.UserID}
	}
	return &access.Session{Resolved: true, UserID: claims.UserID, Profile: profile}
}

// ValidateToken parses and validates an access token returning the claims.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.AccessTokenSecret), nil
	}, jwt.WithIssuer(s.config.Issuer))
	if err != nil {
		return nil, appErrors.As(err, appErrors.ErrUnauthorized, "invalid token")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}
	return claims, nil
}

func (s *AuthService) issue(user *models.User, profile *models.Profile) (*models.SessionResponse, error) {
	issuedAt := time.Now().UTC()
	claims := &models.JWTClaims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.config.AccessTokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}
	if profile != nil {
		claims.Role = profile.Role
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.AccessTokenSecret))
	if err != nil {
		return nil, appErrors.As(err, appErrors.ErrInternal, "failed to create access token")
	}

	return &models.SessionResponse{
		AccessToken: signed,
		ExpiresIn:   int64(s.config.AccessTokenExpiry.Seconds()),
		IssuedAt:    issuedAt,
		Session:     BuildSession(user.ID, user.Email, profile),
	}, nil
}

// BuildSession assembles the session payload, pointing users without a profile at the landing page.
func BuildSession(userID, email string, profile *models.Profile) models.Session {
	session := models.Session{UserID: userID, Email: email, Profile: profile, HomePath: access.HomePath}
	if profile != nil {
		session.HomePath = profile.Role.HomePath()
	}
	return session
}
