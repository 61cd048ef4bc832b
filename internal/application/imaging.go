package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"holoscope/internal/domain/entity"
	"holoscope/internal/domain/port"
	"holoscope/internal/infrastructure/imageio"
)

// MaxCameraDevices сколько номеров устройств перебирать при поиске камер
const MaxCameraDevices = 5

const timestampLayout = "20060102_150405"

type ImagingService struct {
	workspace string
	colorizer port.Colorizer
	camera    port.Camera
	now       func() time.Time
	log       *slog.Logger
}

// NewImagingService создаёт сервис работы со снимками.
// colorizer может быть nil, если модель не загрузилась.
func NewImagingService(workspace string, colorizer port.Colorizer, camera port.Camera, logger *slog.Logger) *ImagingService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ImagingService{
		workspace: workspace,
		colorizer: colorizer,
		camera:    camera,
		now:       time.Now,
		log:       logger.With("component", "imaging"),
	}
}

// ColorizationAvailable сообщает, загружена ли модель раскрашивания
func (s *ImagingService) ColorizationAvailable() bool {
	return s.colorizer != nil
}

// Upload читает изображение, перекодирует в PNG и сохраняет в рабочий каталог
// как upload_<время>.png. Исходный файл не изменяется.
func (s *ImagingService) Upload(ctx context.Context, src string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	img, info, err := imageio.Load(src)
	if err != nil {
		return "", fmt.Errorf("load %s: %w", src, err)
	}
	out, err := imageio.EncodePNG(img)
	if err != nil {
		return "", err
	}

	path, err := s.save("upload", out)
	if err != nil {
		return "", err
	}
	s.log.Info("Image uploaded", "source", src, "saved", path, "width", info.Width, "height", info.Height)
	return path, nil
}

// Cameras перечисляет доступные устройства
func (s *ImagingService) Cameras(ctx context.Context) []int {
	if s.camera == nil {
		return nil
	}
	return s.camera.Probe(ctx, MaxCameraDevices)
}

// Capture снимает кадр и сохраняет его как capture_<время>.png.
func (s *ImagingService) Capture(ctx context.Context, device int) (string, error) {
	if s.camera == nil {
		return "", entity.ErrCameraUnavailable
	}
	frame, err := s.camera.Capture(ctx, device)
	if err != nil {
		return "", err
	}

	path, err := s.save("capture", frame)
	if err != nil {
		return "", err
	}
	s.log.Info("Frame captured", "device", device, "saved", path)
	return path, nil
}

// ColorizeFile раскрашивает снимок и пишет PNG. Пустой out означает
// <имя>_color.png рядом с исходным файлом.
func (s *ImagingService) ColorizeFile(ctx context.Context, in, out string) (string, error) {
	if s.colorizer == nil {
		return "", entity.ErrColorizationUnavailable
	}
	info, err := imageio.Inspect(in)
	if err != nil {
		return "", fmt.Errorf("inspect %s: %w", in, err)
	}
	data, err := os.ReadFile(in)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}

	started := s.now()
	colored, err := s.colorizer.Colorize(ctx, data)
	if err != nil {
		return "", fmt.Errorf("colorize %s: %w", in, err)
	}

	if out == "" {
		out = ColorizedName(in)
	}
	if err := imageio.WriteFile(out, colored); err != nil {
		return "", &entity.IOError{Op: "write", Path: out, Err: err}
	}
	s.log.Info("Image colorized", "source", in, "saved", out, "width", info.Width, "height", info.Height, "took", s.now().Sub(started))
	return out, nil
}

// ColorizedName путь результата раскрашивания по умолчанию
func ColorizedName(in string) string {
	base := strings.TrimSuffix(in, filepath.Ext(in))
	return base + "_color.png"
}

func (s *ImagingService) save(prefix string, data []byte) (string, error) {
	name := fmt.Sprintf("%s_%s.png", prefix, s.now().Format(timestampLayout))
	path := filepath.Join(s.workspace, name)
	if err := imageio.WriteFile(path, data); err != nil {
		return "", &entity.IOError{Op: "write", Path: path, Err: err}
	}
	return path, nil
}
