package storage

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"holoscope/internal/domain/entity"
	"holoscope/internal/domain/port"
)

const historySeparator = " @ "

// FileLoginHistory журнал входов, строка вида "имя @ время"
type FileLoginHistory struct {
	path string
}

func NewFileLoginHistory(path string) *FileLoginHistory {
	return &FileLoginHistory{path: path}
}

// Append дописывает событие входа
func (h *FileLoginHistory) Append(ctx context.Context, event entity.LoginEvent) error {
	line := event.Username + historySeparator + event.At.Format(time.RFC3339) + "\n"
	if err := appendLine(h.path, line, 0o644); err != nil {
		return fmt.Errorf("append history file: %w", err)
	}
	return nil
}

// List читает журнал; нераспознанные строки пропускаются
func (h *FileLoginHistory) List(ctx context.Context) ([]entity.LoginEvent, error) {
	f, err := os.Open(h.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open history file: %w", err)
	}
	defer f.Close()

	var events []entity.LoginEvent
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		name, stamp, ok := strings.Cut(strings.TrimSpace(sc.Text()), historySeparator)
		if !ok {
			continue
		}
		at, err := parseHistoryTime(stamp)
		if err != nil {
			continue
		}
		events = append(events, entity.LoginEvent{Username: name, At: at})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read history file: %w", err)
	}
	return events, nil
}

// parseHistoryTime принимает RFC3339 и ISO-время без зоны из старых журналов
func parseHistoryTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02T15:04:05.999999", s, time.Local)
}

var _ port.LoginHistory = (*FileLoginHistory)(nil)
