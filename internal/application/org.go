package app

import (
	"context"
	"errors"
	"strings"

	"holoscope/internal/domain/port"
)

var ErrEmptyOrgName = errors.New("organization name is empty")

type OrgService struct {
	repo port.OrgRepository
}

func NewOrgService(repo port.OrgRepository) *OrgService {
	return &OrgService{repo: repo}
}

// Add сохраняет название организации без окружающих пробелов
func (s *OrgService) Add(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyOrgName
	}
	if err := s.repo.Add(ctx, name); err != nil {
		return "", err
	}
	return name, nil
}

func (s *OrgService) List(ctx context.Context) ([]string, error) {
	return s.repo.List(ctx)
}
