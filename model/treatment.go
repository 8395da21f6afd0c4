package model

import (
	"strings"
	"time"

	"github.com/healthtrack/treatment-tracker/util"
)

// DateLayout is the wire and storage format for treatment dates.
const DateLayout = "2006-01-02"

// ValidTreatmentTypes is the closed set of treatment types accepted at the
// service boundary. Matching is case-insensitive; the value is stored as
// sent.
var ValidTreatmentTypes = []string{"Physiotherapy", "Ultrasound", "Stimulation"}

// Treatment represents a single treatment record entered by a clinician.
// @Description Treatment record information
type Treatment struct {
	ID            uint      `json:"id" gorm:"primaryKey" example:"1"`
	PatientName   string    `json:"patient_name" gorm:"not null" example:"John Doe"`
	TreatmentType string    `json:"treatment_type" gorm:"not null" example:"Physiotherapy"`
	TreatmentDate string    `json:"treatment_date" gorm:"type:char(10);not null" example:"2025-09-21"`
	Notes         string    `json:"notes" example:"Patient responded well to treatment session"`
	CreatedAt     time.Time `json:"created_at" gorm:"not null"`
}

// TreatmentInput is the request body for creating a treatment record.
// @Description Treatment creation request
type TreatmentInput struct {
	PatientName   string `json:"patient_name" example:"John Doe"`
	TreatmentType string `json:"treatment_type" example:"Physiotherapy"`
	TreatmentDate string `json:"treatment_date" example:"2025-09-21"`
	Notes         string `json:"notes,omitempty" example:"Patient responded well"`
}

// Validate checks the input against the service's validation rules and
// returns every violation, not just the first. An empty slice means the
// input is valid.
func (in TreatmentInput) Validate() []string {
	var violations []string

	if util.NormalizeName(in.PatientName) == "" {
		violations = append(violations, "Patient name is required")
	}

	if in.TreatmentType == "" || !util.ContainsFold(in.TreatmentType, ValidTreatmentTypes) {
		violations = append(violations, "Valid treatment type is required (Physiotherapy, Ultrasound, or Stimulation)")
	}

	if in.TreatmentDate == "" {
		violations = append(violations, "Treatment date is required")
	} else if _, err := time.Parse(DateLayout, in.TreatmentDate); err != nil {
		violations = append(violations, "Invalid date format. Use YYYY-MM-DD")
	}

	return violations
}

// Record builds the persistable record from validated input. The patient
// name is normalized and notes are trimmed; id and created_at are left for
// storage to assign.
func (in TreatmentInput) Record() Treatment {
	return Treatment{
		PatientName:   util.NormalizeName(in.PatientName),
		TreatmentType: in.TreatmentType,
		TreatmentDate: in.TreatmentDate,
		Notes:         strings.TrimSpace(in.Notes),
	}
}
