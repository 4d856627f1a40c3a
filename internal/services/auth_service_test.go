package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test_jwt_secret"

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	if args.Error(0) == nil && user.ID == "" {
		user.ID = "generated-id"
	}
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

func (m *MockUserRepository) UpdateProfile(id string, update models.ProfileUpdate) (*models.User, error) {
	args := m.Called(id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func notFound(what string) error {
	return fmt.Errorf("user %s: %w", what, repositories.ErrNotFound)
}

func parseClaims(t *testing.T, token string) jwt.MapClaims {
	t.Helper()
	parsed, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	return claims
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, 7*24*time.Hour, nil, nil)

	// Test successful registration
	mockRepo.On("GetByEmail", "ayan@example.com").Return(nil, notFound("ayan@example.com")).Once()
	mockRepo.On("Create", mock.MatchedBy(func(u *models.User) bool {
		return u.Email == "ayan@example.com" &&
			u.Name == "Ayan" &&
			bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("password123")) == nil
	})).Return(nil).Once()

	user, token, err := authService.Register(ctx, "  Ayan@Example.com ", "password123", "Ayan")
	require.NoError(t, err)
	assert.Equal(t, "generated-id", user.ID)
	assert.NotEqual(t, "password123", user.Password)

	claims := parseClaims(t, token)
	assert.Equal(t, "generated-id", claims[services.ClaimUserID])
	assert.Equal(t, "ayan@example.com", claims[services.ClaimEmail])
	exp, iat := claims["exp"].(float64), claims["iat"].(float64)
	assert.Equal(t, float64(7*24*60*60), exp-iat)
	mockRepo.AssertExpectations(t)

	// Test email already registered
	mockRepo.On("GetByEmail", "ayan@example.com").Return(&models.User{ID: "1"}, nil).Once()
	_, _, err = authService.Register(ctx, "ayan@example.com", "password123", "")
	assert.ErrorIs(t, err, services.ErrUserExists)
	mockRepo.AssertExpectations(t)

	// Test repository failure during lookup
	mockRepo.On("GetByEmail", "down@example.com").Return(nil, errors.New("connection refused")).Once()
	_, _, err = authService.Register(ctx, "down@example.com", "password123", "")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, services.ErrUserExists)
	assert.Contains(t, err.Error(), "connection refused")
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, time.Hour, nil, nil)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := &models.User{
		ID:       "user-123",
		Email:    "ayan@example.com",
		Password: string(hashedPassword),
	}

	// Test successful login
	mockRepo.On("GetByEmail", "ayan@example.com").Return(stored, nil).Once()
	user, token, err := authService.Login(ctx, "ayan@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, stored, user)
	claims := parseClaims(t, token)
	assert.Equal(t, "user-123", claims[services.ClaimUserID])
	mockRepo.AssertExpectations(t)

	// Test invalid credentials (wrong password)
	mockRepo.On("GetByEmail", "ayan@example.com").Return(stored, nil).Once()
	_, _, err = authService.Login(ctx, "ayan@example.com", "wrongpassword")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)

	// Test invalid credentials (user not found)
	mockRepo.On("GetByEmail", "nobody@example.com").Return(nil, notFound("nobody@example.com")).Once()
	_, _, err = authService.Login(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, time.Hour, nil, nil)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	mockRepo.On("GetByEmail", "ayan@example.com").
		Return(&models.User{ID: "user-123", Email: "ayan@example.com", Password: string(hashedPassword)}, nil)

	_, token, err := authService.Login(ctx, "ayan@example.com", "pw")
	require.NoError(t, err)

	claims, err := authService.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims[services.ClaimUserID])
	assert.Equal(t, "ayan@example.com", claims[services.ClaimEmail])

	_, err = authService.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	otherService := services.NewAuthService(mockRepo, "another_secret", time.Hour, nil, nil)
	_, err = otherService.ValidateToken(token)
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		services.ClaimUserID: "user-123",
		"exp":                time.Now().Add(-time.Minute).Unix(),
	})
	expiredToken, err := expired.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	_, err = authService.ValidateToken(expiredToken)
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	noUser := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Minute).Unix(),
	})
	noUserToken, err := noUser.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	_, err = authService.ValidateToken(noUserToken)
	assert.ErrorIs(t, err, services.ErrInvalidToken)
}

func TestUserService_UpdateProfile(t *testing.T) {
	mockRepo := new(MockUserRepository)
	userService := services.NewUserService(mockRepo, nil)

	name := "Ayan"
	update := models.ProfileUpdate{Name: &name}
	updated := &models.User{ID: "user-123", Email: "ayan@example.com", Name: "Ayan"}

	mockRepo.On("UpdateProfile", "user-123", update).Return(updated, nil).Once()
	user, err := userService.UpdateProfile("user-123", update)
	require.NoError(t, err)
	assert.Equal(t, "Ayan", user.Name)
	mockRepo.AssertExpectations(t)

	// An empty update reads instead of writing.
	mockRepo.On("GetByID", "user-123").Return(updated, nil).Once()
	user, err = userService.UpdateProfile("user-123", models.ProfileUpdate{})
	require.NoError(t, err)
	assert.Equal(t, updated, user)
	mockRepo.AssertExpectations(t)

	mockRepo.On("UpdateProfile", "ghost", update).Return(nil, notFound("ghost")).Once()
	_, err = userService.UpdateProfile("ghost", update)
	assert.ErrorIs(t, err, services.ErrUserNotFound)
	mockRepo.AssertExpectations(t)

	mockRepo.On("GetByID", "ghost").Return(nil, notFound("ghost")).Once()
	_, err = userService.GetProfile("ghost")
	assert.ErrorIs(t, err, services.ErrUserNotFound)
	mockRepo.AssertExpectations(t)
}
