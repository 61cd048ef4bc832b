package entity

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidInput вырожденное изображение или испорченные файлы модели
	ErrInvalidInput = errors.New("invalid input")
	// ErrColorizationUnavailable модель не загружена или сборка без OpenCV
	ErrColorizationUnavailable = errors.New("colorization is unavailable")
	// ErrCameraUnavailable камера не найдена или сборка без OpenCV
	ErrCameraUnavailable = errors.New("camera is unavailable")
)

// FieldError описывает одно отсутствующее или неверное поле отчёта
type FieldError struct {
	Field  string
	Reason string
}

// ValidationError содержит все проблемы записи отчёта сразу
type ValidationError struct {
	Errors []FieldError
}

// Fields возвращает имена полей в порядке схемы
func (e *ValidationError) Fields() []string {
	names := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		names = append(names, fe.Field)
	}
	return names
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fmt.Sprintf("%s (%s)", fe.Field, fe.Reason))
	}
	return "report record is incomplete: " + strings.Join(parts, ", ")
}

// IOError ошибка чтения или записи файла отчёта
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
