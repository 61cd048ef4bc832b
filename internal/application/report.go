package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"holoscope/internal/domain/entity"
	"holoscope/internal/domain/port"
)

// Форматы дат, которые форма подставляет по умолчанию
const (
	DateTimeLayout = "Mon Jan 2 15:04:05 2006"
	DateLayout     = "Mon Jan 2 2006"
)

var ErrDeliveryDisabled = errors.New("report delivery is not configured")

// ReportSettings параметры отчёта из конфигурации
type ReportSettings struct {
	SoftwareVersion string
	OutputDir       string // куда класть отчёт, если путь не задан
}

type ReportService struct {
	renderer port.ReportRenderer
	notifier port.ReportNotifier
	settings ReportSettings
	now      func() time.Time
	log      *slog.Logger
}

// NewReportService создаёт сервис отчётов. notifier может быть nil.
func NewReportService(renderer port.ReportRenderer, notifier port.ReportNotifier, settings ReportSettings, logger *slog.Logger) *ReportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportService{
		renderer: renderer,
		notifier: notifier,
		settings: settings,
		now:      time.Now,
		log:      logger.With("component", "report"),
	}
}

// Draft возвращает черновик с теми же значениями, что форма показывает при открытии.
func (s *ReportService) Draft(imagePath string) *entity.RecordBuilder {
	now := s.now()
	b := entity.NewRecordBuilder()

	b.SetField(entity.FieldPrintTime, now.Format(DateTimeLayout))
	b.SetField(entity.FieldImageCapturedDate, now.Format(DateTimeLayout))
	b.SetField(entity.FieldCreatedDate, now.Format(DateTimeLayout))
	b.SetField(entity.FieldReviewedDate, now.Format(DateLayout))
	b.SetField(entity.FieldAnalysedDate, now.Format(DateLayout))
	b.SetField(entity.FieldPageNumber, "1")
	b.SetField(entity.FieldTotalPages, "1")
	b.SetField(entity.FieldStatus, string(entity.StatusDraft))
	if s.settings.SoftwareVersion != "" {
		b.SetField(entity.FieldSoftwareVersion, s.settings.SoftwareVersion)
	}

	if imagePath != "" {
		b.SetImage(imagePath)
		b.SetField(entity.FieldImageName, filepath.Base(imagePath))
	}
	return b
}

// ApplyYAML читает плоский YAML-словарь «поле: значение» в черновик.
// Значения берутся как записаны, без приведения типов.
func ApplyYAML(b *entity.RecordBuilder, r io.Reader) error {
	var doc map[string]yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("parse record file: %w", err)
	}

	for key, node := range doc {
		if node.Kind != yaml.ScalarNode {
			return fmt.Errorf("record field %q: expected a scalar value", key)
		}
		b.SetField(key, node.Value)
	}
	return nil
}

// ApplyAssignments применяет пары вида поле=значение
func ApplyAssignments(b *entity.RecordBuilder, pairs []string) error {
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return fmt.Errorf("invalid field assignment %q, expected name=value", pair)
		}
		b.SetField(key, value)
	}
	return nil
}

// DefaultOutputName имя файла отчёта по имени снимка
func DefaultOutputName(imagePath string) string {
	if imagePath == "" {
		return "Report.pdf"
	}
	base := filepath.Base(imagePath)
	return "Report_" + strings.TrimSuffix(base, filepath.Ext(base)) + ".pdf"
}

// Generate проверяет запись и формирует PDF. Пустой outputPath означает
// Report_<снимок>.pdf в каталоге отчётов.
func (s *ReportService) Generate(ctx context.Context, b *entity.RecordBuilder, outputPath string) (*entity.RenderResult, error) {
	rec, err := b.Finalize()
	if err != nil {
		return nil, err
	}

	if outputPath == "" {
		outputPath = filepath.Join(s.settings.OutputDir, DefaultOutputName(rec.ImagePath))
	}

	res, err := s.renderer.Render(ctx, rec, rec.ImagePath, outputPath)
	if err != nil {
		return nil, err
	}
	s.log.Info("Report generated", "path", res.Path, "reportId", res.ReportID, "pages", res.Pages)
	return res, nil
}

// Deliver отправляет готовый отчёт получателю из конфигурации
func (s *ReportService) Deliver(ctx context.Context, res *entity.RenderResult) error {
	if s.notifier == nil {
		return ErrDeliveryDisabled
	}
	caption := fmt.Sprintf("Report %s (%d pages)", filepath.Base(res.Path), res.Pages)
	if err := s.notifier.Deliver(ctx, res.Path, caption); err != nil {
		return fmt.Errorf("deliver report: %w", err)
	}
	s.log.Info("Report delivered", "path", res.Path, "reportId", res.ReportID)
	return nil
}
