package entity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func completeBuilder() *RecordBuilder {
	b := NewRecordBuilder()
	for _, field := range RecordFields {
		b.SetField(field.Name, "value of "+field.Name)
	}
	b.SetField(FieldPageNumber, "1")
	b.SetField(FieldTotalPages, "2")
	b.SetField(FieldStatus, "In Review")
	b.SetImage("sample.png")
	return b
}

func TestFinalize_Complete(t *testing.T) {
	rec, err := completeBuilder().Finalize()
	require.NoError(t, err)
	require.Equal(t, "value of institution_name", rec.InstitutionName)
	require.Equal(t, "value of magnification", rec.Magnification)
	require.Equal(t, 1, rec.PageNumber)
	require.Equal(t, 2, rec.TotalPages)
	require.Equal(t, StatusInReview, rec.Status)
	require.Equal(t, "sample.png", rec.ImagePath)
}

func TestFinalize_ImageIsOptional(t *testing.T) {
	b := completeBuilder()
	b.SetImage("")
	_, err := b.Finalize()
	require.NoError(t, err)
}

func TestFinalize_ReportsEveryMissingField(t *testing.T) {
	b := completeBuilder()
	b.SetField(FieldDepartment, "")
	b.SetField(FieldStatus, "   ")

	_, err := b.Finalize()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.Equal(t, []string{FieldDepartment, FieldStatus}, verr.Fields())
}

func TestFinalize_MissingFieldsIndependentOfOthers(t *testing.T) {
	b := NewRecordBuilder()
	b.SetField(FieldUser, "alice")

	_, err := b.Finalize()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields(), len(RecordFields)-1)
	require.NotContains(t, verr.Fields(), FieldUser)
}

func TestFinalize_RejectsUnknownStatus(t *testing.T) {
	b := completeBuilder()
	b.SetField(FieldStatus, "Pending")

	_, err := b.Finalize()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, []string{FieldStatus}, verr.Fields())
}

func TestFinalize_PageNumbers(t *testing.T) {
	cases := []struct {
		name  string
		field string
		value string
	}{
		{"zero page", FieldPageNumber, "0"},
		{"negative total", FieldTotalPages, "-3"},
		{"not a number", FieldPageNumber, "two"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := completeBuilder()
			b.SetField(tc.field, tc.value)
			_, err := b.Finalize()
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			require.Equal(t, []string{tc.field}, verr.Fields())
		})
	}
}

func TestSetField_LastWriteWinsAndAliases(t *testing.T) {
	b := completeBuilder()
	b.SetField("College Name", "First")
	b.SetField("college_name", "Second")
	b.SetField("plate-material", "Glass")

	rec, err := b.Finalize()
	require.NoError(t, err)
	require.Equal(t, "Second", rec.InstitutionName)
	require.Equal(t, "Glass", rec.SlideMaterial)
}

func TestFinalize_UnknownField(t *testing.T) {
	b := completeBuilder()
	b.SetField("colour", "red")

	_, err := b.Finalize()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, []string{"colour"}, verr.Fields())
	require.Contains(t, verr.Error(), "unknown field")
}

func TestFinalize_MissingFieldsThenUnknown(t *testing.T) {
	b := NewRecordBuilder()
	for _, field := range RecordFields {
		if field.Name == FieldSampleName || field.Name == FieldReviewedBy {
			continue
		}
		b.SetField(field.Name, "value of "+field.Name)
	}
	b.SetField(FieldPageNumber, "1")
	b.SetField(FieldTotalPages, "1")
	b.SetField(FieldStatus, "Draft")
	b.SetField("colour", "red")

	_, err := b.Finalize()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, []string{FieldSampleName, FieldReviewedBy, "colour"}, verr.Fields())
}

func TestFinalize_TrimsValues(t *testing.T) {
	b := completeBuilder()
	b.SetField(FieldSampleName, "  S-42  ")
	rec, err := b.Finalize()
	require.NoError(t, err)
	require.Equal(t, "S-42", rec.SampleName)
}

func TestRecordFieldsSchema(t *testing.T) {
	require.Len(t, RecordFields, 24)
	seen := map[string]bool{}
	for _, field := range RecordFields {
		require.False(t, seen[field.Name], field.Name)
		seen[field.Name] = true
	}
}
