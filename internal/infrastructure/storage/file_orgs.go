package storage

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"holoscope/internal/domain/port"
)

// FileOrgRepository список организаций, по одной на строку
type FileOrgRepository struct {
	path string
}

func NewFileOrgRepository(path string) *FileOrgRepository {
	return &FileOrgRepository{path: path}
}

func (r *FileOrgRepository) Add(ctx context.Context, name string) error {
	if err := appendLine(r.path, name+"\n", 0o644); err != nil {
		return fmt.Errorf("append orgs file: %w", err)
	}
	return nil
}

func (r *FileOrgRepository) List(ctx context.Context) ([]string, error) {
	f, err := os.Open(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open orgs file: %w", err)
	}
	defer f.Close()

	var orgs []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if name := strings.TrimSpace(sc.Text()); name != "" {
			orgs = append(orgs, name)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read orgs file: %w", err)
	}
	return orgs, nil
}

var _ port.OrgRepository = (*FileOrgRepository)(nil)
