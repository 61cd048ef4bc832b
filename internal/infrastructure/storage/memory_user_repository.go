package storage

import (
	"context"
	"sync"

	"holoscope/internal/domain/entity"
	"holoscope/internal/domain/port"
)

// MemoryUserRepository in-memory хранилище пользователей (для тестов и временных сессий)
type MemoryUserRepository struct {
	mu    sync.RWMutex
	order []string
	users map[string]*entity.User
}

// NewMemoryUserRepository создаёт новое in-memory хранилище
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		users: make(map[string]*entity.User),
	}
}

// Get возвращает пользователя по имени
func (r *MemoryUserRepository) Get(ctx context.Context, username string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, exists := r.users[username]
	if !exists {
		return nil, entity.ErrUserNotFound
	}
	return user, nil
}

// Add сохраняет нового пользователя
func (r *MemoryUserRepository) Add(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.Username]; exists {
		return entity.ErrUserExists
	}
	r.users[user.Username] = user
	r.order = append(r.order, user.Username)
	return nil
}

// Delete удаляет пользователя
func (r *MemoryUserRepository) Delete(ctx context.Context, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[username]; !exists {
		return entity.ErrUserNotFound
	}
	delete(r.users, username)
	for i, name := range r.order {
		if name == username {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// List возвращает пользователей в порядке добавления
func (r *MemoryUserRepository) List(ctx context.Context) ([]*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*entity.User, 0, len(r.order))
	for _, name := range r.order {
		users = append(users, r.users[name])
	}
	return users, nil
}

// Проверка реализации интерфейса
var _ port.UserRepository = (*MemoryUserRepository)(nil)
