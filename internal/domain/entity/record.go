package entity

import (
	"sort"
	"strconv"
	"strings"
)

// Status статус отчёта
type Status string

const (
	StatusDraft    Status = "Draft"
	StatusInReview Status = "In Review"
	StatusFinal    Status = "Final"
)

// Statuses допустимые значения статуса в порядке отображения
var Statuses = []Status{StatusDraft, StatusInReview, StatusFinal}

// ParseStatus проверяет, что значение входит в допустимый набор
func ParseStatus(s string) (Status, bool) {
	for _, st := range Statuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// Имена полей записи отчёта
const (
	FieldInstitutionName   = "institution_name"
	FieldDepartment        = "department"
	FieldUser              = "user"
	FieldPrintTime         = "print_time"
	FieldPageNumber        = "page_number"
	FieldTotalPages        = "total_pages"
	FieldSampleName        = "sample_name"
	FieldSolvent           = "solvent"
	FieldAnalysis          = "analysis"
	FieldMethod            = "method"
	FieldSlideMaterial     = "slide_material"
	FieldBatchNo           = "batch_no"
	FieldARNo              = "ar_no"
	FieldEquipmentNo       = "equipment_no"
	FieldReviewedBy        = "reviewed_by"
	FieldReviewedDate      = "reviewed_date"
	FieldAnalysedBy        = "analysed_by"
	FieldAnalysedDate      = "analysed_date"
	FieldSoftwareVersion   = "software_version"
	FieldStatus            = "status"
	FieldImageName         = "image_name"
	FieldImageCapturedDate = "image_captured_date"
	FieldCreatedDate       = "created_date"
	FieldMagnification     = "magnification"
)

// FieldKind тип значения поля
type FieldKind int

const (
	KindText FieldKind = iota
	KindPage
	KindStatus
)

// FieldSpec описание поля формы
type FieldSpec struct {
	Name  string
	Label string
	Kind  FieldKind
}

// RecordFields схема записи в порядке формы.
var RecordFields = []FieldSpec{
	{FieldInstitutionName, "College Name", KindText},
	{FieldDepartment, "Department", KindText},
	{FieldUser, "User", KindText},
	{FieldPrintTime, "Print Time", KindText},
	{FieldPageNumber, "Page Number", KindPage},
	{FieldTotalPages, "Total Pages", KindPage},
	{FieldSampleName, "Sample Name", KindText},
	{FieldSolvent, "Solvent", KindText},
	{FieldAnalysis, "Analysis", KindText},
	{FieldMethod, "Method", KindText},
	{FieldSlideMaterial, "Slide Material", KindText},
	{FieldBatchNo, "Batch No", KindText},
	{FieldARNo, "A.R No", KindText},
	{FieldEquipmentNo, "Equipment No", KindText},
	{FieldReviewedBy, "Reviewed By", KindText},
	{FieldReviewedDate, "Reviewed Date", KindText},
	{FieldAnalysedBy, "Analysed By", KindText},
	{FieldAnalysedDate, "Analysed Date", KindText},
	{FieldSoftwareVersion, "Software Version", KindText},
	{FieldStatus, "Status", KindStatus},
	{FieldImageName, "Image Name", KindText},
	{FieldImageCapturedDate, "Image Captured Date", KindText},
	{FieldCreatedDate, "Created Date", KindText},
	{FieldMagnification, "Magnification", KindText},
}

// старые имена полей из формы первой версии программы
var fieldAliases = map[string]string{
	"college_name":   FieldInstitutionName,
	"plate_material": FieldSlideMaterial,
	"field_name":     FieldMagnification,
}

// Record завершённая запись отчёта. Создаётся только через RecordBuilder.Finalize.
type Record struct {
	InstitutionName   string
	Department        string
	User              string
	PrintTime         string
	PageNumber        int
	TotalPages        int
	SampleName        string
	Solvent           string
	Analysis          string
	Method            string
	SlideMaterial     string
	BatchNo           string
	ARNo              string
	EquipmentNo       string
	ReviewedBy        string
	ReviewedDate      string
	AnalysedBy        string
	AnalysedDate      string
	SoftwareVersion   string
	Status            Status
	ImageName         string
	ImageCapturedDate string
	CreatedDate       string
	Magnification     string
	ImagePath         string // путь к изображению, не проверяется
}

// RecordBuilder накапливает значения полей до финализации
type RecordBuilder struct {
	values    map[string]string
	imagePath string
}

// NewRecordBuilder создаёт пустой черновик записи
func NewRecordBuilder() *RecordBuilder {
	return &RecordBuilder{values: make(map[string]string)}
}

// NormalizeFieldName приводит имя поля к виду схемы
func NormalizeFieldName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.NewReplacer(" ", "_", "-", "_", ".", "").Replace(n)
	if canonical, ok := fieldAliases[n]; ok {
		return canonical
	}
	return n
}

// SetField запоминает значение поля без проверки; последнее значение побеждает
func (b *RecordBuilder) SetField(name, value string) {
	b.values[NormalizeFieldName(name)] = value
}

// SetFields применяет набор значений
func (b *RecordBuilder) SetFields(values map[string]string) {
	for k, v := range values {
		b.SetField(k, v)
	}
}

// SetImage задаёт изображение отчёта
func (b *RecordBuilder) SetImage(path string) {
	b.imagePath = path
}

// Image возвращает текущий путь к изображению
func (b *RecordBuilder) Image() string {
	return b.imagePath
}

// Field возвращает текущее значение поля
func (b *RecordBuilder) Field(name string) (string, bool) {
	v, ok := b.values[NormalizeFieldName(name)]
	return v, ok
}

// Finalize проверяет все поля разом и возвращает неизменяемую запись
// либо *ValidationError со списком всех проблемных полей.
func (b *RecordBuilder) Finalize() (Record, error) {
	var (
		rec      Record
		problems []FieldError
	)
	rec.ImagePath = b.imagePath

	for _, field := range RecordFields {
		v := strings.TrimSpace(b.values[field.Name])
		if v == "" {
			problems = append(problems, FieldError{Field: field.Name, Reason: "missing"})
			continue
		}

		switch field.Kind {
		case KindPage:
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				problems = append(problems, FieldError{Field: field.Name, Reason: "must be an integer >= 1"})
				continue
			}
			if field.Name == FieldPageNumber {
				rec.PageNumber = n
			} else {
				rec.TotalPages = n
			}
		case KindStatus:
			st, ok := ParseStatus(v)
			if !ok {
				problems = append(problems, FieldError{Field: field.Name, Reason: "must be one of Draft, In Review, Final"})
				continue
			}
			rec.Status = st
		default:
			*rec.textField(field.Name) = v
		}
	}

	var unknown []string
	for name := range b.values {
		if !isKnownField(name) {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		problems = append(problems, FieldError{Field: name, Reason: "unknown field"})
	}

	if len(problems) > 0 {
		return Record{}, &ValidationError{Errors: problems}
	}
	return rec, nil
}

func (r *Record) textField(name string) *string {
	switch name {
	case FieldInstitutionName:
		return &r.InstitutionName
	case FieldDepartment:
		return &r.Department
	case FieldUser:
		return &r.User
	case FieldPrintTime:
		return &r.PrintTime
	case FieldSampleName:
		return &r.SampleName
	case FieldSolvent:
		return &r.Solvent
	case FieldAnalysis:
		return &r.Analysis
	case FieldMethod:
		return &r.Method
	case FieldSlideMaterial:
		return &r.SlideMaterial
	case FieldBatchNo:
		return &r.BatchNo
	case FieldARNo:
		return &r.ARNo
	case FieldEquipmentNo:
		return &r.EquipmentNo
	case FieldReviewedBy:
		return &r.ReviewedBy
	case FieldReviewedDate:
		return &r.ReviewedDate
	case FieldAnalysedBy:
		return &r.AnalysedBy
	case FieldAnalysedDate:
		return &r.AnalysedDate
	case FieldSoftwareVersion:
		return &r.SoftwareVersion
	case FieldImageName:
		return &r.ImageName
	case FieldImageCapturedDate:
		return &r.ImageCapturedDate
	case FieldCreatedDate:
		return &r.CreatedDate
	case FieldMagnification:
		return &r.Magnification
	}
	panic("entity: not a text field: " + name)
}

func isKnownField(name string) bool {
	for _, field := range RecordFields {
		if field.Name == name {
			return true
		}
	}
	return false
}
