package app

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"holoscope/internal/domain/entity"
	"holoscope/internal/infrastructure/pdf"
)

type fakeRenderer struct {
	record  entity.Record
	image   string
	output  string
	calls   int
	failErr error
}

func (f *fakeRenderer) Render(ctx context.Context, record entity.Record, imagePath, outputPath string) (*entity.RenderResult, error) {
	f.calls++
	f.record, f.image, f.output = record, imagePath, outputPath
	if f.failErr != nil {
		return nil, f.failErr
	}
	return &entity.RenderResult{ReportID: "id-1", Path: outputPath, Pages: 1}, nil
}

type fakeNotifier struct {
	path, caption string
	err           error
}

func (f *fakeNotifier) Deliver(ctx context.Context, path, caption string) error {
	f.path, f.caption = path, caption
	return f.err
}

func newTestReports(r *fakeRenderer, n *fakeNotifier) *ReportService {
	svc := NewReportService(r, nil, ReportSettings{SoftwareVersion: "4.0", OutputDir: "reports"}, nil)
	if n != nil {
		svc.notifier = n
	}
	svc.now = func() time.Time { return time.Date(2026, 10, 18, 14, 5, 9, 0, time.UTC) }
	return svc
}

const recordYAML = `
college_name: Saglo Institute
department: Chemistry
user: alice
sample_name: S-1
solvent: Water
analysis: TLC
method: M-2
plate_material: Silica
batch_no: 0042
ar_no: AR-7
equipment_no: EQ-1
reviewed_by: Bob
analysed_by: Carol
field_name: 40x
`

func TestReportService_DraftDefaults(t *testing.T) {
	svc := newTestReports(&fakeRenderer{}, nil)
	b := svc.Draft(filepath.Join("work", "upload_1.png"))

	get := func(name string) string {
		v, _ := b.Field(name)
		return v
	}
	require.Equal(t, "Sun Oct 18 14:05:09 2026", get(entity.FieldPrintTime))
	require.Equal(t, "Sun Oct 18 2026", get(entity.FieldReviewedDate))
	require.Equal(t, "4.0", get(entity.FieldSoftwareVersion))
	require.Equal(t, "Draft", get(entity.FieldStatus))
	require.Equal(t, "1", get(entity.FieldPageNumber))
	require.Equal(t, "upload_1.png", get(entity.FieldImageName))
	require.Equal(t, filepath.Join("work", "upload_1.png"), b.Image())
}

func TestReportService_GenerateFromYAML(t *testing.T) {
	r := &fakeRenderer{}
	svc := newTestReports(r, nil)

	b := svc.Draft("slide.png")
	require.NoError(t, ApplyYAML(b, strings.NewReader(recordYAML)))
	require.NoError(t, ApplyAssignments(b, []string{"status=Final", "total_pages=3"}))

	res, err := svc.Generate(context.Background(), b, "")
	require.NoError(t, err)
	require.Equal(t, filepath.Join("reports", "Report_slide.pdf"), res.Path)
	require.Equal(t, "slide.png", r.image)
	require.Equal(t, "0042", r.record.BatchNo)
	require.Equal(t, "40x", r.record.Magnification)
	require.Equal(t, entity.StatusFinal, r.record.Status)
	require.Equal(t, 3, r.record.TotalPages)
}

func TestReportService_GenerateValidationFailsBeforeRender(t *testing.T) {
	r := &fakeRenderer{}
	svc := newTestReports(r, nil)

	b := svc.Draft("slide.png")
	require.NoError(t, ApplyYAML(b, strings.NewReader(recordYAML)))
	require.NoError(t, ApplyAssignments(b, []string{"department=", "status=Pending"}))

	_, err := svc.Generate(context.Background(), b, "out.pdf")
	var verr *entity.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, []string{entity.FieldDepartment, entity.FieldStatus}, verr.Fields())
	require.Zero(t, r.calls)
}

func TestReportService_GenerateRenderError(t *testing.T) {
	ioErr := &entity.IOError{Op: "create", Path: "x.pdf", Err: errors.New("denied")}
	svc := newTestReports(&fakeRenderer{failErr: ioErr}, nil)

	b := svc.Draft("slide.png")
	require.NoError(t, ApplyYAML(b, strings.NewReader(recordYAML)))

	_, err := svc.Generate(context.Background(), b, "x.pdf")
	var got *entity.IOError
	require.ErrorAs(t, err, &got)
}

func TestApplyYAML(t *testing.T) {
	b := entity.NewRecordBuilder()
	require.NoError(t, ApplyYAML(b, strings.NewReader("")))

	err := ApplyYAML(b, strings.NewReader("department: [a, b]\n"))
	require.Error(t, err)

	err = ApplyYAML(b, strings.NewReader("department: a: b\n"))
	require.Error(t, err)
}

func TestApplyAssignments(t *testing.T) {
	b := entity.NewRecordBuilder()
	require.NoError(t, ApplyAssignments(b, []string{"Sample Name=a=b"}))
	v, ok := b.Field(entity.FieldSampleName)
	require.True(t, ok)
	require.Equal(t, "a=b", v)

	require.Error(t, ApplyAssignments(b, []string{"novalue"}))
	require.Error(t, ApplyAssignments(b, []string{"=x"}))
}

func TestDefaultOutputName(t *testing.T) {
	require.Equal(t, "Report_capture_20261018_140509.pdf", DefaultOutputName("/tmp/capture_20261018_140509.png"))
	require.Equal(t, "Report.pdf", DefaultOutputName(""))
}

func TestReportService_Deliver(t *testing.T) {
	res := &entity.RenderResult{ReportID: "id", Path: filepath.Join("out", "r.pdf"), Pages: 2}

	svc := newTestReports(&fakeRenderer{}, nil)
	require.ErrorIs(t, svc.Deliver(context.Background(), res), ErrDeliveryDisabled)

	n := &fakeNotifier{}
	svc = newTestReports(&fakeRenderer{}, n)
	require.NoError(t, svc.Deliver(context.Background(), res))
	require.Equal(t, res.Path, n.path)
	require.Equal(t, "Report r.pdf (2 pages)", n.caption)

	n.err = errors.New("network down")
	require.ErrorIs(t, svc.Deliver(context.Background(), res), n.err)
}

func TestReportService_GenerateWithPDFRenderer(t *testing.T) {
	dir := t.TempDir()
	svc := NewReportService(pdf.NewRenderer(pdf.Config{Footer: "footer"}, nil), nil, ReportSettings{SoftwareVersion: "4.0", OutputDir: dir}, nil)

	b := svc.Draft("")
	require.NoError(t, ApplyYAML(b, strings.NewReader(recordYAML)))
	require.NoError(t, ApplyAssignments(b, []string{"image_name=none"}))

	res, err := svc.Generate(context.Background(), b, filepath.Join(dir, "report"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "report.pdf"), res.Path)
	require.Equal(t, 1, res.Pages)
	require.False(t, res.ImageEmbedded)

	pages, err := pdf.Inspect(res.Path)
	require.NoError(t, err)
	require.Equal(t, 1, pages)
}
