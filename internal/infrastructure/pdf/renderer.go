// Package pdf раскладывает запись отчёта и снимок по страницам A4.
package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"holoscope/internal/domain/entity"
	"holoscope/internal/domain/port"
	"holoscope/internal/infrastructure/imageio"
)

// Геометрия страницы в пунктах
const (
	pageWidth  = 595.28
	pageHeight = 841.89
	margin     = 40.0

	logoHeight  = 50.0
	labelWidth  = 100.0
	lineStep    = 15.0
	blockGap    = 30.0
	footerInset = 20.0
	imageGap    = 20.0
)

// Extension расширение файла отчёта
const Extension = ".pdf"

// Config настройки оформления
type Config struct {
	LogoPath string // логотип в шапке первой страницы, может отсутствовать
	Footer   string // строка в подвале каждой страницы
	Creator  string // поле Creator в метаданных
	Compress bool   // сжатие потоков страниц
}

// Renderer генератор PDF-отчёта
type Renderer struct {
	cfg Config
	log *slog.Logger
	now func() time.Time
}

// NewRenderer создаёт генератор
func NewRenderer(cfg Config, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	// pdfcpu не должен создавать каталог конфигурации пользователя
	api.DisableConfigDir()
	return &Renderer{
		cfg: cfg,
		log: logger.With("component", "pdf"),
		now: time.Now,
	}
}

// EnsureExtension дописывает .pdf, если расширения нет
func EnsureExtension(path string) string {
	if strings.HasSuffix(strings.ToLower(path), Extension) {
		return path
	}
	return path + Extension
}

// Render формирует документ и атомарно сохраняет его по outputPath.
// Нечитаемое изображение не прерывает работу: документ сохраняется без него
// с предупреждением в результате.
func (r *Renderer) Render(ctx context.Context, record entity.Record, imagePath, outputPath string) (*entity.RenderResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	outputPath = EnsureExtension(outputPath)
	result := &entity.RenderResult{
		ReportID: uuid.NewString(),
		Path:     outputPath,
	}
	logCtx := r.log.With("reportId", result.ReportID, "output", outputPath)

	doc := r.newDocument(record, result.ReportID)
	l := &layout{doc: doc, tr: doc.UnicodeTranslatorFromDescriptor("")}

	doc.AddPage()
	l.y = margin
	r.drawLogo(l, result)
	drawMetadata(l, record)
	r.drawImage(l, imagePath, result)

	if doc.Err() {
		return nil, fmt.Errorf("layout report: %w", doc.Error())
	}

	pages, err := r.commit(doc, outputPath)
	if err != nil {
		logCtx.Error("Failed to write report", "error", err)
		return nil, err
	}
	result.Pages = pages

	for _, w := range result.Warnings {
		logCtx.Warn("Report rendered with warning", "warning", w)
	}
	logCtx.Info("Report saved", "pages", pages, "imageEmbedded", result.ImageEmbedded)
	return result, nil
}

func (r *Renderer) newDocument(record entity.Record, reportID string) *fpdf.Fpdf {
	doc := fpdf.New("P", "pt", "A4", "")
	doc.SetMargins(margin, margin, margin)
	doc.SetAutoPageBreak(false, 0)
	doc.SetCompression(r.cfg.Compress)
	doc.AliasNbPages("")
	doc.SetCreationDate(r.now())

	doc.SetTitle(record.InstitutionName, true)
	doc.SetAuthor(record.User, true)
	doc.SetSubject("Sample "+record.SampleName, true)
	doc.SetKeywords("report-id:"+reportID, true)
	if r.cfg.Creator != "" {
		doc.SetCreator(r.cfg.Creator, true)
	}

	tr := doc.UnicodeTranslatorFromDescriptor("")
	footer := tr(r.cfg.Footer)
	doc.SetFooterFunc(func() {
		if footer == "" {
			return
		}
		doc.SetFont("Helvetica", "I", 9)
		doc.SetTextColor(102, 102, 102)
		doc.Text((pageWidth-doc.GetStringWidth(footer))/2, pageHeight-footerInset, footer)
		doc.SetTextColor(0, 0, 0)
	})
	return doc
}

func (r *Renderer) drawLogo(l *layout, result *entity.RenderResult) {
	if r.cfg.LogoPath == "" {
		l.y += imageGap
		return
	}
	if _, err := os.Stat(r.cfg.LogoPath); err != nil {
		r.log.Debug("Logo not found, skipping", "path", r.cfg.LogoPath)
		l.y += imageGap
		return
	}

	img, err := registerImage(l.doc, r.cfg.LogoPath)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("could not load logo: %v", err))
		l.y += imageGap
		return
	}
	l.doc.ImageOptions(img.name, margin, l.y, 0, logoHeight, false, img.options, 0, "")
	l.y += logoHeight + 10
}

// drawImage выводит снимок и итоговую метку страницы. Метка рисуется
// и тогда, когда снимок добавить не удалось.
func (r *Renderer) drawImage(l *layout, imagePath string, result *entity.RenderResult) {
	if r.placeImage(l, imagePath, result) {
		result.ImageEmbedded = true
	} else {
		l.y += imageGap
	}

	l.doc.SetFont("Helvetica", "", 10)
	l.rightText(fmt.Sprintf("Page %d of {nb}", l.doc.PageNo()))
}

func (r *Renderer) placeImage(l *layout, imagePath string, result *entity.RenderResult) bool {
	if imagePath == "" {
		result.Warnings = append(result.Warnings, "no image attached to report")
		return false
	}

	img, err := registerImage(l.doc, imagePath)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("failed to add image: %v", err))
		return false
	}

	width, height := fitImage(img.info)
	top := l.y + imageGap
	if top+height > pageHeight-margin {
		l.doc.AddPage()
		top = margin
	}

	l.doc.ImageOptions(img.name, margin, top, width, height, false, img.options, 0, "")
	l.y = top + height + lineStep
	return true
}

// fitImage возвращает размер снимка: вся ширина области содержимого,
// высота по пропорциям, но не больше высоты чистой страницы.
func fitImage(info entity.ImageInfo) (width, height float64) {
	width = pageWidth - 2*margin
	height = info.HeightForWidth(width)

	maxHeight := pageHeight - 2*margin - lineStep
	if height > maxHeight {
		width = width * maxHeight / height
		height = maxHeight
	}
	return width, height
}

// commit пишет документ во временный файл рядом с целевым, проверяет его
// через pdfcpu и переименовывает. При ошибке файл не остаётся.
func (r *Renderer) commit(doc *fpdf.Fpdf, outputPath string) (int, error) {
	tmp, err := os.CreateTemp(filepath.Dir(outputPath), ".report-*.pdf")
	if err != nil {
		return 0, &entity.IOError{Op: "create", Path: outputPath, Err: err}
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if err := doc.Output(tmp); err != nil {
		_ = tmp.Close()
		return 0, &entity.IOError{Op: "write", Path: outputPath, Err: err}
	}
	if err := tmp.Chmod(imageio.FileMode); err != nil {
		_ = tmp.Close()
		return 0, &entity.IOError{Op: "chmod", Path: outputPath, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return 0, &entity.IOError{Op: "write", Path: outputPath, Err: err}
	}

	pages, err := Inspect(tmpName)
	if err != nil {
		return 0, err
	}

	if err := os.Rename(tmpName, outputPath); err != nil {
		return 0, &entity.IOError{Op: "rename", Path: outputPath, Err: err}
	}
	committed = true
	return pages, nil
}

// Inspect проверяет структуру PDF и возвращает число страниц.
func Inspect(path string) (int, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	if err := api.ValidateFile(path, conf); err != nil {
		return 0, fmt.Errorf("validate pdf: %w", err)
	}
	pages, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("count pdf pages: %w", err)
	}
	return pages, nil
}

type registeredImage struct {
	name    string
	info    entity.ImageInfo
	options fpdf.ImageOptions
}

// registerImage читает изображение, при необходимости перекодирует в PNG
// и регистрирует в документе. Ошибка fpdf сбрасывается, документ остаётся пригодным.
func registerImage(doc *fpdf.Fpdf, path string) (*registeredImage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	info, err := imageio.InspectReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if !imageio.Embeddable(info.Format) {
		if data, info, err = imageio.ToPNG(data); err != nil {
			return nil, err
		}
	}

	img := &registeredImage{
		name:    path,
		info:    info,
		options: fpdf.ImageOptions{ImageType: fpdfImageType(info.Format)},
	}
	doc.RegisterImageOptionsReader(img.name, img.options, bytes.NewReader(data))
	if !doc.Err() {
		return img, nil
	}

	// например, 16-битный PNG: пробуем 8-битную копию
	regErr := doc.Error()
	doc.ClearError()
	data, err = imageio.To8BitPNG(data)
	if err != nil {
		return nil, errors.Join(regErr, err)
	}
	img.name = path + "#8bit"
	img.options = fpdf.ImageOptions{ImageType: "PNG"}
	doc.RegisterImageOptionsReader(img.name, img.options, bytes.NewReader(data))
	if doc.Err() {
		err := doc.Error()
		doc.ClearError()
		return nil, err
	}
	return img, nil
}

func fpdfImageType(format string) string {
	switch format {
	case "jpeg":
		return "JPG"
	case "gif":
		return "GIF"
	}
	return "PNG"
}

var _ port.ReportRenderer = (*Renderer)(nil)
