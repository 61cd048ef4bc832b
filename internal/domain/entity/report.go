package entity

// RenderResult итог формирования PDF-отчёта.
type RenderResult struct {
	ReportID      string   // идентификатор отчёта (попадает в метаданные PDF)
	Path          string   // итоговый путь к файлу
	Pages         int      // число страниц
	ImageEmbedded bool     // изображение попало в документ
	Warnings      []string // некритичные проблемы (нет логотипа, битое изображение)
}
