// Package imageio читает и записывает растровые файлы без OpenCV.
package imageio

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"holoscope/internal/domain/entity"
)

// Inspect читает только заголовок файла и возвращает размеры
func Inspect(path string) (entity.ImageInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return entity.ImageInfo{}, err
	}
	defer f.Close()

	return InspectReader(f)
}

// InspectReader то же, что Inspect, для потока
func InspectReader(r io.Reader) (entity.ImageInfo, error) {
	cfg, format, err := image.DecodeConfig(r)
	if err != nil {
		return entity.ImageInfo{}, fmt.Errorf("%w: decode image header: %v", entity.ErrInvalidInput, err)
	}
	info := entity.ImageInfo{Width: cfg.Width, Height: cfg.Height, Format: format}
	if info.Empty() {
		return info, fmt.Errorf("%w: zero-area image %dx%d", entity.ErrInvalidInput, info.Width, info.Height)
	}
	return info, nil
}

// Load декодирует файл целиком
func Load(path string) (image.Image, entity.ImageInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, entity.ImageInfo{}, err
	}
	return Decode(data)
}

// Decode декодирует изображение из памяти
func Decode(data []byte) (image.Image, entity.ImageInfo, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, entity.ImageInfo{}, fmt.Errorf("%w: %v", entity.ErrInvalidInput, err)
	}
	b := img.Bounds()
	info := entity.ImageInfo{Width: b.Dx(), Height: b.Dy(), Format: format}
	if info.Empty() {
		return nil, info, fmt.Errorf("%w: zero-area image", entity.ErrInvalidInput)
	}
	return img, info, nil
}

// EncodePNG кодирует изображение в PNG
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// ToPNG перекодирует любое поддерживаемое изображение в PNG
func ToPNG(data []byte) ([]byte, entity.ImageInfo, error) {
	img, info, err := Decode(data)
	if err != nil {
		return nil, info, err
	}
	out, err := EncodePNG(img)
	if err != nil {
		return nil, info, err
	}
	info.Format = "png"
	return out, info, nil
}

// To8BitPNG перерисовывает изображение в 8-битный NRGBA и кодирует в PNG
func To8BitPNG(data []byte) ([]byte, error) {
	img, _, err := Decode(data)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return EncodePNG(dst)
}

// FileMode права на записываемые снимки и отчёты
const FileMode os.FileMode = 0o644

// WriteFile записывает данные через временный файл в том же каталоге
func WriteFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".holoscope-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Chmod(FileMode); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// Embeddable сообщает, может ли PDF-генератор встроить формат напрямую
func Embeddable(format string) bool {
	switch format {
	case "png", "jpeg", "gif":
		return true
	}
	return false
}
