package services_test

import (
	"fmt"
	"io"
	"log"
	"os"
	"testing"

	"katalog/internal/models"
	"katalog/internal/repositories"
	"katalog/internal/services"
	"katalog/internal/validation"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
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

// TestMain is used to setup the test environment
func TestMain(m *testing.M) {
	// Suppress logging during tests for cleaner output
	log.SetOutput(io.Discard)
	code := m.Run()
	os.Exit(code)
}

func notFoundErr(what string) error {
	return fmt.Errorf("%s: %w", what, repositories.ErrNotFound)
}

func TestAuthService_RegisterUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret", nil)

	payload := validation.RegisterPayload{
		Name:     "Ann Lee",
		Email:    "ann@x.com",
		Password: "secret",
	}

	// Successful registration: password is hashed, token issued.
	mockRepo.On("GetByEmail", payload.Email).Return(nil, notFoundErr("user")).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	token, user, err := authService.RegisterUser(payload)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "Ann Lee", user.Name)
	assert.False(t, user.IsAdmin)
	assert.False(t, user.CreatedAt.IsZero())
	assert.NotEqual(t, "secret", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret")))
	mockRepo.AssertExpectations(t)

	// Duplicate email
	mockRepo.On("GetByEmail", payload.Email).Return(&models.User{ID: "1", Email: payload.Email}, nil).Once()
	_, _, err = authService.RegisterUser(payload)
	assert.ErrorIs(t, err, repositories.ErrDuplicateEmail)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_LoginUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	testJWTSecret := "test_jwt_secret"
	authService := services.NewAuthService(mockRepo, testJWTSecret, nil)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       "user-123",
		Name:     "Ann Lee",
		Email:    "ann@x.com",
		Password: string(hashedPassword),
		IsAdmin:  true,
	}

	// Successful login
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	token, err := authService.LoginUser("ann@x.com", "secret")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	// The issued token carries the user id and admin flag.
	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(testJWTSecret), nil
	})
	assert.NoError(t, err)
	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, user.ID, claims["user_id"])
	assert.Equal(t, true, claims["is_admin"])
	mockRepo.AssertExpectations(t)

	// Wrong password
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	_, errWrongPassword := authService.LoginUser("ann@x.com", "wrong")
	assert.ErrorIs(t, errWrongPassword, services.ErrInvalidCredentials)

	// Unknown email: same generic error, no account enumeration.
	mockRepo.On("GetByEmail", "nobody@x.com").Return(nil, notFoundErr("user")).Once()
	_, errUnknownEmail := authService.LoginUser("nobody@x.com", "secret")
	assert.ErrorIs(t, errUnknownEmail, services.ErrInvalidCredentials)
	assert.Equal(t, errWrongPassword.Error(), errUnknownEmail.Error())

	// A store failure is not an invalid-credentials case.
	mockRepo.On("GetByEmail", user.Email).Return(nil, fmt.Errorf("connection reset")).Once()
	_, errStore := authService.LoginUser("ann@x.com", "secret")
	assert.Error(t, errStore)
	assert.NotErrorIs(t, errStore, services.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret", nil)

	// Round trip through IssueToken
	tokenString, err := authService.IssueToken("user-123", true)
	assert.NoError(t, err)

	claims, err := authService.ValidateToken(tokenString)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.True(t, claims.IsAdmin)

	// Malformed token
	_, err = authService.ValidateToken("invalid.token.string")
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	// Token signed with a different secret
	other := services.NewAuthService(mockRepo, "other_secret", nil)
	foreign, err := other.IssueToken("user-123", false)
	assert.NoError(t, err)
	_, err = authService.ValidateToken(foreign)
	assert.ErrorIs(t, err, services.ErrInvalidToken)
}

func TestAuthService_GetUserByToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret", nil)

	tokenString, err := authService.IssueToken("user-123", false)
	assert.NoError(t, err)

	user := &models.User{ID: "user-123", Name: "Ann Lee", Email: "ann@x.com"}
	mockRepo.On("GetByID", "user-123").Return(user, nil).Once()

	info, err := authService.GetUserByToken(tokenString)
	assert.NoError(t, err)
	assert.Equal(t, &models.UserInfo{Name: "Ann Lee", Email: "ann@x.com"}, info)
	mockRepo.AssertExpectations(t)

	// User deleted after the token was issued
	mockRepo.On("GetByID", "user-123").Return(nil, notFoundErr("user")).Once()
	_, err = authService.GetUserByToken(tokenString)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_GetAllUsers(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret", nil)

	mockRepo.On("GetAll").Return([]models.User{
		{ID: "1", Name: "Ann Lee", Email: "ann@x.com", Password: "hash"},
		{ID: "2", Name: "Bob", Email: "bob@x.com", Password: "hash"},
	}, nil).Once()

	infos, err := authService.GetAllUsers()
	assert.NoError(t, err)
	assert.Equal(t, []models.UserInfo{
		{Name: "Ann Lee", Email: "ann@x.com"},
		{Name: "Bob", Email: "bob@x.com"},
	}, infos)
	mockRepo.AssertExpectations(t)
}
