package services

import (
	"fmt"
	"log"
	"time"

	"surplussaver/internal/apperrors"
	"surplussaver/internal/config"
	"surplussaver/internal/models"
	"surplussaver/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// Token types carried in the "type" claim. An access-typed endpoint rejects
// refresh tokens and vice versa.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// TokenPair is the result of a successful login.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Claims is the authenticated identity extracted from a validated token.
// The role is read back from the user record, not the token, so revoked or
// re-roled accounts take effect immediately.
type Claims struct {
	UserID string
	Role   models.Role
}

// AuthService handles business logic for authentication and authorization.
type AuthService struct {
	userRepo   repositories.UserRepository
	jwtSecret  []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtSecret:  []byte(cfg.JWTSecret),
		accessTTL:  cfg.AccessTokenTTL,
		refreshTTL: cfg.RefreshTokenTTL,
	}
}

// RegisterUser registers a new user, hashes their password, and saves them
// to the database. Shop accounts start unapproved and cannot list bags until
// an admin approves them.
func (s *AuthService) RegisterUser(user *models.User) error {
	if !user.Role.Valid() {
		return fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, user.Role)
	}

	if existingUser, err := s.userRepo.GetByEmail(user.Email); err == nil && existingUser != nil {
		return fmt.Errorf("%w: email '%s' already registered", apperrors.ErrConflict, user.Email)
	}

	// Hash the password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashedPassword) // Store the hashed password
	user.Approved = user.Role == models.RoleAdmin

	if err := s.userRepo.Create(user); err != nil {
		return fmt.Errorf("failed to register user: %w", err)
	}
	return nil
}

// LoginUser authenticates a user and returns an access/refresh token pair.
func (s *AuthService) LoginUser(email, password string) (*TokenPair, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		// Do not reveal whether the email exists
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}

	accessToken, err := s.signToken(user.ID, TokenTypeAccess, s.accessTTL)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.signToken(user.ID, TokenTypeRefresh, s.refreshTTL)
	if err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// RefreshAccessToken exchanges a valid refresh token for a new access token.
func (s *AuthService) RefreshAccessToken(refreshToken string) (string, error) {
	claims, err := s.ValidateToken(refreshToken, TokenTypeRefresh)
	if err != nil {
		return "", err
	}
	return s.signToken(claims.UserID, TokenTypeAccess, s.accessTTL)
}

// ValidateToken parses and validates a JWT of the expected type, returning
// the caller's identity. The subject must still exist.
func (s *AuthService) ValidateToken(tokenString, wantType string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate the alg is what we expect:
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, fmt.Errorf("%w: invalid token", apperrors.ErrUnauthorized)
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: invalid token", apperrors.ErrUnauthorized)
	}

	if typ, _ := mapClaims["type"].(string); typ != wantType {
		return nil, fmt.Errorf("%w: invalid token type", apperrors.ErrUnauthorized)
	}

	userID, _ := mapClaims["sub"].(string)
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: user not found", apperrors.ErrUnauthorized)
	}

	return &Claims{UserID: user.ID, Role: user.Role}, nil
}

func (s *AuthService) signToken(userID, tokenType string, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  userID,
		"type": tokenType,
		"exp":  time.Now().Add(ttl).Unix(), // Token expiration time
		"iat":  time.Now().Unix(),          // Issued at time
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}
