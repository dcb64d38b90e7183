// Package services содержит логику регистрации, входа и проверки сессии.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/healthmate/internal/lib/jwt"
	"github.com/magabrotheeeer/healthmate/internal/lib/password"
	"github.com/magabrotheeeer/healthmate/internal/metrics"
	"github.com/magabrotheeeer/healthmate/internal/models"
	"github.com/magabrotheeeer/healthmate/internal/storage"
)

var (
	// ErrEmailTaken email уже зарегистрирован.
	ErrEmailTaken = errors.New("email already registered")
	// ErrUserNotFound пользователя с таким email нет.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials пароль не совпал.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthorized токен отсутствует, невалиден или истёк.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrWeakPassword пароль не проходит политику сложности.
	ErrWeakPassword = errors.New("password is not strong enough")
	// ErrPasswordTooLong пароль длиннее предела bcrypt.
	ErrPasswordTooLong = errors.New("password is too long")
	// ErrEmptyName имя или фамилия пустые после обрезки пробелов.
	ErrEmptyName = errors.New("firstname and lastname must not be empty")
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя.
	CreateUser(ctx context.Context, user models.User) error
	// GetUserByEmail возвращает пользователя по email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// GetUserByID возвращает пользователя по идентификатору.
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// SignupInput данные регистрации.
type SignupInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// AuthService отвечает за регистрацию, авторизацию и валидацию JWT.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
	hashCost int
	metrics  *metrics.Metrics
	log      *slog.Logger
	now      func() time.Time
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(log *slog.Logger, users UserRepository, jwtMaker jwt.Maker, hashCost int, m *metrics.Metrics) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
		hashCost: hashCost,
		metrics:  m,
		log:      log,
		now:      time.Now,
	}
}

// NormalizeEmail приводит email к виду, в котором он хранится.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup создаёт пользователя и сразу выпускает токен сессии.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*models.User, string, error) {
	const op = "services.auth.Signup"

	user, token, err := s.signup(ctx, in)
	s.metrics.RecordAuth("signup", err == nil)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("user signed up", slog.String("user_id", user.ID))
	return user, token, nil
}

func (s *AuthService) signup(ctx context.Context, in SignupInput) (*models.User, string, error) {
	firstName := strings.TrimSpace(in.FirstName)
	lastName := strings.TrimSpace(in.LastName)
	if firstName == "" || lastName == "" {
		return nil, "", ErrEmptyName
	}
	if !password.IsStrong(in.Password) {
		return nil, "", ErrWeakPassword
	}
	if !password.FitsBcrypt(in.Password) {
		return nil, "", ErrPasswordTooLong
	}

	hashed, err := password.GetHash(in.Password, s.hashCost)
	if err != nil {
		return nil, "", err
	}

	user := models.User{
		ID:           uuid.NewString(),
		FirstName:    firstName,
		LastName:     lastName,
		Email:        NormalizeEmail(in.Email),
		PasswordHash: hashed,
		CreatedAt:    s.now().UTC(),
	}
	if err = s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrEmailExists) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}

	token, err := s.jwtMaker.GenerateToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

// Login проверяет пароль пользователя и выпускает JWT.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (*models.User, string, error) {
	const op = "services.auth.Login"

	user, token, err := s.login(ctx, email, rawPassword)
	s.metrics.RecordAuth("login", err == nil)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	return user, token, nil
}

func (s *AuthService) login(ctx context.Context, email, rawPassword string) (*models.User, string, error) {
	user, err := s.users.GetUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, "", ErrUserNotFound
		}
		return nil, "", err
	}
	if err = password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwtMaker.GenerateToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// ValidateToken проверяет JWT и возвращает идентификатор пользователя.
func (s *AuthService) ValidateToken(_ context.Context, token string) (string, error) {
	const op = "services.auth.ValidateToken"
	if token == "" {
		return "", fmt.Errorf("%s: %w", op, ErrUnauthorized)
	}
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return "", fmt.Errorf("%s: %w: %w", op, ErrUnauthorized, err)
	}
	return claims.UserID, nil
}

// UserByID возвращает пользователя сессии. Удалённый пользователь
// считается неавторизованным.
func (s *AuthService) UserByID(ctx context.Context, userID string) (*models.User, error) {
	const op = "services.auth.UserByID"
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrUnauthorized)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// CurrentUser возвращает пользователя по токену сессии.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	userID, err := s.ValidateToken(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.UserByID(ctx, userID)
}
