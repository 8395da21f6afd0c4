package view

import (
	"errors"
	"strings"

	"github.com/healthtrack/treatment-tracker/client"
	"github.com/healthtrack/treatment-tracker/model"
)

// Form field names, matching the wire field names of the create request.
const (
	FieldPatientName   = "patient_name"
	FieldTreatmentType = "treatment_type"
	FieldTreatmentDate = "treatment_date"
	FieldNotes         = "notes"
)

// genericSubmitError is shown when create fails without field detail.
const genericSubmitError = "Failed to save the treatment. Please try again."

// Form holds the create-workflow state: field values, per-field errors for
// inline display, and server-reported errors from a failed submission.
// Client-side pre-validation mirrors the server rules so an invalid form
// never issues a request.
type Form struct {
	values       map[string]string
	fieldErrors  map[string]string
	serverErrors []string
}

// NewForm returns an empty form.
func NewForm() *Form {
	return &Form{
		values:      map[string]string{},
		fieldErrors: map[string]string{},
	}
}

// SetField records a new value for field and clears that field's error, and
// only that field's error, so inline messages disappear as soon as the user
// edits the offending field.
func (f *Form) SetField(field, value string) {
	f.values[field] = value
	delete(f.fieldErrors, field)
}

// Value returns the current value of field.
func (f *Form) Value(field string) string {
	return f.values[field]
}

// Validate runs client-side pre-validation and reports whether the form can
// be submitted. All violated fields are recorded together.
func (f *Form) Validate() bool {
	f.fieldErrors = map[string]string{}

	if strings.TrimSpace(f.values[FieldPatientName]) == "" {
		f.fieldErrors[FieldPatientName] = "Patient name is required"
	}
	if f.values[FieldTreatmentType] == "" {
		f.fieldErrors[FieldTreatmentType] = "Treatment type is required"
	}
	if f.values[FieldTreatmentDate] == "" {
		f.fieldErrors[FieldTreatmentDate] = "Treatment date is required"
	}

	return len(f.fieldErrors) == 0
}

// FieldError returns the inline error for field, if any.
func (f *Form) FieldError(field string) string {
	return f.fieldErrors[field]
}

// Errors returns every error to display above the form: field errors in
// form order followed by server-reported errors.
func (f *Form) Errors() []string {
	var msgs []string
	for _, field := range []string{FieldPatientName, FieldTreatmentType, FieldTreatmentDate} {
		if msg, ok := f.fieldErrors[field]; ok {
			msgs = append(msgs, msg)
		}
	}
	return append(msgs, f.serverErrors...)
}

// Input assembles the create request from the current field values.
func (f *Form) Input() model.TreatmentInput {
	return model.TreatmentInput{
		PatientName:   f.values[FieldPatientName],
		TreatmentType: f.values[FieldTreatmentType],
		TreatmentDate: f.values[FieldTreatmentDate],
		Notes:         f.values[FieldNotes],
	}
}

// Reset clears all values and errors after a successful submission.
func (f *Form) Reset() {
	f.values = map[string]string{}
	f.fieldErrors = map[string]string{}
	f.serverErrors = nil
}

// applyServerError surfaces a failed create: the server's field list when
// present, otherwise a single generic message.
func (f *Form) applyServerError(err error) {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && len(apiErr.Fields) > 0 {
		f.serverErrors = apiErr.Fields
		return
	}
	if errors.As(err, &apiErr) && apiErr.Message == client.ConnectivityMessage {
		f.serverErrors = []string{client.ConnectivityMessage}
		return
	}
	f.serverErrors = []string{genericSubmitError}
}
