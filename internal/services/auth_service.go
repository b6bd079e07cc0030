package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"katalog/internal/models"
	"katalog/internal/repositories"
	"katalog/internal/validation"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// EventPublisher sends catalog events to the message broker. Satisfied by
// *rabbitmq.Client; services treat a nil publisher as "eventing disabled".
type EventPublisher interface {
	Publish(eventType string, body []byte) error
}

// TokenClaims is the identity a verified token carries.
type TokenClaims struct {
	UserID  string
	IsAdmin bool
}

// AuthService handles registration, login and token issuing/verification.
type AuthService struct {
	userRepo  repositories.UserRepository
	jwtSecret []byte
	mqClient  EventPublisher
}

// NewAuthService creates a new AuthService. mqClient may be nil.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string, mqClient EventPublisher) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
		mqClient:  mqClient,
	}
}

// IssueToken produces a signed bearer token embedding the user id and admin
// flag. Tokens carry no expiry; a compromised token stays valid until the
// signing secret is rotated.
func (s *AuthService) IssueToken(userID string, isAdmin bool) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  userID,
		"is_admin": isAdmin,
		"iat":      time.Now().Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and verifies a token, returning the embedded claims.
func (s *AuthService) ValidateToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return nil, ErrInvalidToken
	}
	isAdmin, _ := claims["is_admin"].(bool)

	return &TokenClaims{UserID: userID, IsAdmin: isAdmin}, nil
}

// RegisterUser registers a new user: checks email uniqueness, hashes the
// password and issues a token for the fresh account. The check-then-insert
// pair is not atomic; stores with a unique email index narrow that window.
func (s *AuthService) RegisterUser(payload validation.RegisterPayload) (string, *models.User, error) {
	existing, err := s.userRepo.GetByEmail(payload.Email)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return "", nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return "", nil, fmt.Errorf("user with email %s: %w", payload.Email, repositories.ErrDuplicateEmail)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:      payload.Name,
		Email:     payload.Email,
		Password:  string(hashedPassword),
		IsAdmin:   false,
		CreatedAt: time.Now(),
	}

	if err := s.userRepo.Create(user); err != nil {
		return "", nil, fmt.Errorf("failed to register user: %w", err)
	}

	token, err := s.IssueToken(user.ID, user.IsAdmin)
	if err != nil {
		return "", nil, err
	}

	s.publishEvent("user.registered", map[string]interface{}{
		"userID": user.ID,
		"email":  user.Email,
	})

	return token, user, nil
}

// LoginUser authenticates a user and returns a token. An unknown email and a
// wrong password collapse to the same ErrInvalidCredentials; store failures
// stay server errors.
func (s *AuthService) LoginUser(email, password string) (string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.IssueToken(user.ID, user.IsAdmin)
}

// GetUserByToken verifies the token and returns the public projection of
// the user it identifies.
func (s *AuthService) GetUserByToken(tokenString string) (*models.UserInfo, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(claims.UserID)
	if err != nil {
		return nil, err
	}

	return &models.UserInfo{Name: user.Name, Email: user.Email}, nil
}

// GetAllUsers returns all users projected to name and email.
func (s *AuthService) GetAllUsers() ([]models.UserInfo, error) {
	users, err := s.userRepo.GetAll()
	if err != nil {
		return nil, err
	}

	infos := make([]models.UserInfo, 0, len(users))
	for _, u := range users {
		infos = append(infos, models.UserInfo{Name: u.Name, Email: u.Email})
	}
	return infos, nil
}

func (s *AuthService) publishEvent(eventType string, payload map[string]interface{}) {
	if s.mqClient == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", eventType, err)
		return
	}
	if err := s.mqClient.Publish(eventType, body); err != nil {
		log.Printf("Warning: Failed to publish %s event: %v", eventType, err)
	}
}
