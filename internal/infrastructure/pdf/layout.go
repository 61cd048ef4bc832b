package pdf

import (
	"fmt"

	"github.com/go-pdf/fpdf"

	"holoscope/internal/domain/entity"
)

// layout курсор по вертикали, отсчёт сверху страницы, y указывает базовую линию
type layout struct {
	doc *fpdf.Fpdf
	tr  func(string) string
	y   float64
}

type cell struct {
	label string
	value string
}

type block struct {
	heading string
	rows    [][2]*cell
}

// blocks порядок и состав разделов отчёта
func blocks(rec entity.Record) []block {
	return []block{
		{
			heading: "Sample Details:",
			rows: [][2]*cell{
				{{"Sample Name", rec.SampleName}, {"Solvent", rec.Solvent}},
				{{"Analysis", rec.Analysis}, {"Method", rec.Method}},
				{{"Slide Material", rec.SlideMaterial}, nil},
				{{"Batch Number", rec.BatchNo}, {"AR Number", rec.ARNo}},
				{{"Equipment Number", rec.EquipmentNo}, nil},
			},
		},
		{
			heading: "Authorization:",
			rows: [][2]*cell{
				{{"Reviewed By", rec.ReviewedBy}, {"Date", rec.ReviewedDate}},
				{{"Analysed By", rec.AnalysedBy}, {"Date", rec.AnalysedDate}},
				{{"Software Version", rec.SoftwareVersion}, {"Status", string(rec.Status)}},
			},
		},
		{
			heading: "Image Info:",
			rows: [][2]*cell{
				{{"Image Name", rec.ImageName}, nil},
				{{"Image Captured Date", rec.ImageCapturedDate}, {"Created Date", rec.CreatedDate}},
				{{"Magnification", rec.Magnification}, nil},
			},
		},
	}
}

// drawMetadata рисует заголовок, шапку и три раздела с разделителями
func drawMetadata(l *layout, rec entity.Record) {
	l.doc.SetFont("Helvetica", "B", 14)
	l.centerText(rec.InstitutionName)
	l.y += 20

	l.doc.SetFont("Helvetica", "", 10)
	l.row(&cell{"Department", rec.Department}, &cell{"User", rec.User})
	l.y += lineStep
	l.row(&cell{"Print Time", rec.PrintTime}, nil)
	l.rightText(fmt.Sprintf("Page %d of %d", rec.PageNumber, rec.TotalPages))
	l.y += lineStep
	l.rule()

	for _, b := range blocks(rec) {
		l.y += blockGap
		l.doc.SetFont("Helvetica", "B", 12)
		l.doc.Text(margin, l.y, l.tr(b.heading))
		l.y += lineStep

		l.doc.SetFont("Helvetica", "", 10)
		for _, r := range b.rows {
			l.row(r[0], r[1])
			l.y += lineStep
		}
		l.rule()
	}
}

// row две колонки «метка: значение», правая начинается с середины страницы
func (l *layout) row(left, right *cell) {
	columnWidth := pageWidth/2 - margin - labelWidth
	if left != nil {
		l.pair(margin, columnWidth, left)
	}
	if right != nil {
		l.pair(pageWidth/2, columnWidth, right)
	}
}

func (l *layout) pair(x, valueWidth float64, c *cell) {
	l.doc.Text(x, l.y, l.tr(c.label+":"))
	l.doc.Text(x+labelWidth, l.y, l.fit(l.tr(c.value), valueWidth))
}

// fit обрезает строку с многоточием, чтобы она не заходила на соседнюю колонку
func (l *layout) fit(s string, width float64) string {
	if l.doc.GetStringWidth(s) <= width {
		return s
	}
	const ellipsis = "..."
	r := []byte(s)
	for len(r) > 0 && l.doc.GetStringWidth(string(r)+ellipsis) > width {
		r = r[:len(r)-1]
	}
	return string(r) + ellipsis
}

func (l *layout) centerText(s string) {
	s = l.tr(s)
	l.doc.Text((pageWidth-l.doc.GetStringWidth(s))/2, l.y, s)
}

func (l *layout) rightText(s string) {
	s = l.tr(s)
	l.doc.Text(pageWidth-margin-l.doc.GetStringWidth(s), l.y, s)
}

func (l *layout) rule() {
	l.doc.Line(margin, l.y, pageWidth-margin, l.y)
}
