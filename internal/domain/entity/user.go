package entity

import (
	"errors"
	"strings"
	"time"
)

// Role роль пользователя при входе
type Role string

const (
	RoleAdmin Role = "admin" // Администратор
	RoleUser  Role = "user"  // Обычный пользователь
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidUser        = errors.New("invalid username or password")
)

// ParseRole разбирает роль из строки
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleUser:
		return RoleUser, nil
	}
	return "", errors.New("unknown role: " + s)
}

// User представляет учётную запись лаборатории
type User struct {
	Username string // Имя пользователя
	Password string // Пароль (хранится открытым текстом)
	Role     Role   // Роль
}

// NewUser создаёт обычного пользователя, проверяя поля
func NewUser(username, password string) (*User, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	if username == "" || password == "" {
		return nil, ErrInvalidUser
	}
	// запятая разделяет поля в файле пользователей
	if strings.Contains(username, ",") || strings.Contains(password, ",") {
		return nil, ErrInvalidUser
	}
	return &User{
		Username: username,
		Password: password,
		Role:     RoleUser,
	}, nil
}

// CheckPassword сравнивает пароль
func (u *User) CheckPassword(password string) bool {
	return u.Password == password
}

// LoginEvent запись журнала входов
type LoginEvent struct {
	Username string
	At       time.Time
}
