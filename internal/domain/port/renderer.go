package port

import (
	"context"

	"holoscope/internal/domain/entity"
)

// ReportRenderer интерфейс генератора PDF-отчёта
type ReportRenderer interface {
	// Render раскладывает запись и изображение по страницам A4 и сохраняет PDF
	Render(ctx context.Context, record entity.Record, imagePath, outputPath string) (*entity.RenderResult, error)
}

// ReportNotifier доставка готового отчёта
type ReportNotifier interface {
	Deliver(ctx context.Context, path, caption string) error
}
