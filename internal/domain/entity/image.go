package entity

// ImageInfo размеры и формат растрового изображения
type ImageInfo struct {
	Width  int    // ширина в пикселях
	Height int    // высота в пикселях
	Format string // формат, определённый декодером (png, jpeg, ...)
}

// Empty сообщает о нулевой площади
func (i ImageInfo) Empty() bool {
	return i.Width <= 0 || i.Height <= 0
}

// HeightForWidth возвращает высоту при заданной ширине с сохранением пропорций
func (i ImageInfo) HeightForWidth(width float64) float64 {
	if i.Width <= 0 {
		return 0
	}
	return width * float64(i.Height) / float64(i.Width)
}
