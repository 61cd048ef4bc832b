package storage

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"holoscope/internal/domain/entity"
	"holoscope/internal/domain/port"
)

// FileUserRepository хранит пользователей в текстовом файле, по строке "имя,пароль"
type FileUserRepository struct {
	mu   sync.RWMutex
	path string
}

// NewFileUserRepository создаёт хранилище поверх файла; файл может отсутствовать
func NewFileUserRepository(path string) *FileUserRepository {
	return &FileUserRepository{path: path}
}

// Get возвращает пользователя по имени
func (r *FileUserRepository) Get(ctx context.Context, username string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users, err := r.load()
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, entity.ErrUserNotFound
}

// Add дописывает пользователя в конец файла
func (r *FileUserRepository) Add(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load()
	if err != nil {
		return err
	}
	for _, u := range users {
		if u.Username == user.Username {
			return entity.ErrUserExists
		}
	}

	line := fmt.Sprintf("%s,%s\n", user.Username, user.Password)
	if err := appendLine(r.path, line, 0o600); err != nil {
		return fmt.Errorf("append users file: %w", err)
	}
	return nil
}

// Delete переписывает файл без указанного пользователя
func (r *FileUserRepository) Delete(ctx context.Context, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load()
	if err != nil {
		return err
	}

	var b strings.Builder
	found := false
	for _, u := range users {
		if u.Username == username {
			found = true
			continue
		}
		fmt.Fprintf(&b, "%s,%s\n", u.Username, u.Password)
	}
	if !found {
		return entity.ErrUserNotFound
	}

	if err := os.WriteFile(r.path, []byte(b.String()), 0o600); err != nil {
		return fmt.Errorf("rewrite users file: %w", err)
	}
	return nil
}

// List возвращает пользователей в порядке файла
func (r *FileUserRepository) List(ctx context.Context) ([]*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.load()
}

func (r *FileUserRepository) load() ([]*entity.User, error) {
	f, err := os.Open(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open users file: %w", err)
	}
	defer f.Close()

	var users []*entity.User
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		// строки без запятой пропускаются
		name, password, ok := strings.Cut(strings.TrimSpace(sc.Text()), ",")
		if !ok || name == "" {
			continue
		}
		users = append(users, &entity.User{Username: name, Password: password, Role: entity.RoleUser})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read users file: %w", err)
	}
	return users, nil
}

var _ port.UserRepository = (*FileUserRepository)(nil)
