package port

import (
	"context"

	"holoscope/internal/domain/entity"
)

// UserRepository интерфейс хранилища пользователей
type UserRepository interface {
	// Get возвращает пользователя по имени или entity.ErrUserNotFound
	Get(ctx context.Context, username string) (*entity.User, error)

	// Add добавляет нового пользователя
	Add(ctx context.Context, user *entity.User) error

	// Delete удаляет пользователя по имени
	Delete(ctx context.Context, username string) error

	// List возвращает пользователей в порядке добавления
	List(ctx context.Context) ([]*entity.User, error)
}

// LoginHistory журнал входов
type LoginHistory interface {
	Append(ctx context.Context, event entity.LoginEvent) error
	List(ctx context.Context) ([]entity.LoginEvent, error)
}

// OrgRepository список организаций
type OrgRepository interface {
	Add(ctx context.Context, name string) error
	List(ctx context.Context) ([]string, error)
}
