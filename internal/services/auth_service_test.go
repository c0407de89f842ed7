package services_test

import (
	"log"
	"os"
	"testing"
	"time"

	"surplussaver/internal/apperrors"
	"surplussaver/internal/config"
	"surplussaver/internal/models"
	"surplussaver/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a testify mock of repositories.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetAll() ([]models.User, error) {
	args := m.Called()
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockUserRepository) CountByRole(role models.Role) (int64, error) {
	args := m.Called(role)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) CountPendingShops() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:       "test_jwt_secret",
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: 24 * time.Hour,
	}
}

// TestMain is used to setup test environment
func TestMain(m *testing.M) {
	log.SetOutput(os.Stdout)
	code := m.Run()
	os.Exit(code)
}

func TestAuthService_RegisterUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testConfig())

	// Successful registration of a shop: password hashed, approved stays false
	user := &models.User{
		Name:     "Corner Bakery",
		Email:    "bakery@example.com",
		Password: "password123",
		Role:     models.RoleShop,
	}
	mockRepo.On("GetByEmail", user.Email).Return(nil, apperrors.ErrNotFound).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	err := authService.RegisterUser(user)
	assert.NoError(t, err)
	assert.NotEqual(t, "password123", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))
	assert.False(t, user.Approved)
	mockRepo.AssertExpectations(t)

	// Duplicate email is a conflict
	mockRepo.On("GetByEmail", user.Email).Return(&models.User{ID: "1"}, nil).Once()
	err = authService.RegisterUser(&models.User{
		Name:     "Another",
		Email:    user.Email,
		Password: "password123",
		Role:     models.RoleCustomer,
	})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	mockRepo.AssertExpectations(t)

	// Unknown role is rejected before any repository access
	err = authService.RegisterUser(&models.User{
		Name:     "Bad Role",
		Email:    "bad@example.com",
		Password: "password123",
		Role:     "superuser",
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestAuthService_LoginUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testConfig())

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       "user-123",
		Name:     "Test Customer",
		Email:    "test@example.com",
		Password: string(hashedPassword),
		Role:     models.RoleCustomer,
	}

	// Successful login issues an access/refresh pair
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	tokens, err := authService.LoginUser(user.Email, "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	mockRepo.AssertExpectations(t)

	// Check the type claims on both tokens
	assert.Equal(t, "access", tokenType(t, tokens.AccessToken))
	assert.Equal(t, "refresh", tokenType(t, tokens.RefreshToken))

	// Wrong password
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	_, err = authService.LoginUser(user.Email, "wrongpassword")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	mockRepo.AssertExpectations(t)

	// Unknown email surfaces the same generic failure
	mockRepo.On("GetByEmail", "nobody@example.com").Return(nil, apperrors.ErrNotFound).Once()
	_, err = authService.LoginUser("nobody@example.com", "password123")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testConfig())

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       "user-123",
		Email:    "test@example.com",
		Password: string(hashedPassword),
		Role:     models.RoleShop,
	}

	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	tokens, err := authService.LoginUser(user.Email, "password123")
	assert.NoError(t, err)

	// Valid access token resolves to the user's current role
	mockRepo.On("GetByID", user.ID).Return(user, nil).Once()
	claims, err := authService.ValidateToken(tokens.AccessToken, services.TokenTypeAccess)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, models.RoleShop, claims.Role)
	mockRepo.AssertExpectations(t)

	// A refresh token presented where an access token is required is rejected
	_, err = authService.ValidateToken(tokens.RefreshToken, services.TokenTypeAccess)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	// Garbage token
	_, err = authService.ValidateToken("invalid.token.string", services.TokenTypeAccess)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	// Expired token
	expiredToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.ID,
		"type": services.TokenTypeAccess,
		"exp":  time.Now().Add(-time.Hour).Unix(),
	})
	expiredTokenString, _ := expiredToken.SignedString([]byte("test_jwt_secret"))
	_, err = authService.ValidateToken(expiredTokenString, services.TokenTypeAccess)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	// Token for a deleted user is rejected
	mockRepo.On("GetByID", user.ID).Return(nil, apperrors.ErrNotFound).Once()
	_, err = authService.ValidateToken(tokens.AccessToken, services.TokenTypeAccess)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_RefreshAccessToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testConfig())

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       "user-123",
		Email:    "test@example.com",
		Password: string(hashedPassword),
		Role:     models.RoleCustomer,
	}

	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	tokens, err := authService.LoginUser(user.Email, "password123")
	assert.NoError(t, err)

	// Refresh token yields a fresh access token
	mockRepo.On("GetByID", user.ID).Return(user, nil).Twice()
	accessToken, err := authService.RefreshAccessToken(tokens.RefreshToken)
	assert.NoError(t, err)
	assert.Equal(t, "access", tokenType(t, accessToken))

	claims, err := authService.ValidateToken(accessToken, services.TokenTypeAccess)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	mockRepo.AssertExpectations(t)

	// An access token cannot be used to refresh
	_, err = authService.RefreshAccessToken(tokens.AccessToken)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

// tokenType extracts the "type" claim from a signed token.
func tokenType(t *testing.T, tokenString string) string {
	t.Helper()
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte("test_jwt_secret"), nil
	})
	assert.NoError(t, err)
	claims, ok := parsed.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	typ, _ := claims["type"].(string)
	return typ
}
