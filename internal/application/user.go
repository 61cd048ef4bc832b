package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"holoscope/internal/domain/entity"
	"holoscope/internal/domain/port"
)

// AdminCredentials учётные данные администратора из конфигурации
type AdminCredentials struct {
	Username string
	Password string
}

type UserService struct {
	repo    port.UserRepository
	history port.LoginHistory
	admin   AdminCredentials
	now     func() time.Time
	log     *slog.Logger
}

// NewUserService создаёт сервис учётных записей и входа.
func NewUserService(repo port.UserRepository, history port.LoginHistory, admin AdminCredentials, logger *slog.Logger) *UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserService{
		repo:    repo,
		history: history,
		admin:   admin,
		now:     time.Now,
		log:     logger.With("component", "users"),
	}
}

// Authenticate проверяет пароль для выбранной роли и пишет вход в журнал.
func (s *UserService) Authenticate(ctx context.Context, role entity.Role, username, password string) (*entity.User, error) {
	var user *entity.User

	switch role {
	case entity.RoleAdmin:
		if s.admin.Username == "" || username != s.admin.Username || password != s.admin.Password {
			return nil, entity.ErrInvalidCredentials
		}
		user = &entity.User{Username: username, Password: password, Role: entity.RoleAdmin}
	case entity.RoleUser:
		u, err := s.repo.Get(ctx, username)
		if errors.Is(err, entity.ErrUserNotFound) {
			return nil, entity.ErrInvalidCredentials
		}
		if err != nil {
			return nil, err
		}
		if !u.CheckPassword(password) {
			return nil, entity.ErrInvalidCredentials
		}
		user = u
	default:
		return nil, entity.ErrInvalidCredentials
	}

	// вход уже состоялся, сбой журнала только логируем
	if err := s.history.Append(ctx, entity.LoginEvent{Username: user.Username, At: s.now()}); err != nil {
		s.log.Warn("Failed to record login", "user", user.Username, "error", err)
	}
	s.log.Info("User logged in", "user", user.Username, "role", user.Role)
	return user, nil
}

// Add регистрирует обычного пользователя
func (s *UserService) Add(ctx context.Context, username, password string) (*entity.User, error) {
	user, err := entity.NewUser(username, password)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Add(ctx, user); err != nil {
		return nil, err
	}
	s.log.Info("User added", "user", user.Username)
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, username string) error {
	if err := s.repo.Delete(ctx, username); err != nil {
		return err
	}
	s.log.Info("User deleted", "user", username)
	return nil
}

func (s *UserService) List(ctx context.Context) ([]*entity.User, error) {
	return s.repo.List(ctx)
}

// History возвращает журнал входов в порядке записи
func (s *UserService) History(ctx context.Context) ([]entity.LoginEvent, error) {
	return s.history.List(ctx)
}
