package domain

import (
	"errors"
	"time"
)

// PatientStatus is the clinical state shown on the dashboard.
type PatientStatus string

const (
	StatusStable   PatientStatus = "stable"
	StatusCritical PatientStatus = "critical"
)

var ErrPatientNotFound = errors.New("patient not found")
var ErrPrescriptionNotFound = errors.New("prescription not found")
var ErrInvalidStatus = errors.New("invalid patient status")

// Valid reports whether s is a known patient status.
func (s PatientStatus) Valid() bool {
	return s == StatusStable || s == StatusCritical
}

// Prescription is embedded in the patient document. It never exists outside
// its patient; all CRUD on prescriptions goes through the owning patient.
type Prescription struct {
	ID         string    `json:"id" bson:"_id"`
	Medication string    `json:"medication" bson:"medication"`
	Dosage     string    `json:"dosage" bson:"dosage"`
	Frequency  string    `json:"frequency,omitempty" bson:"frequency,omitempty"`
	Notes      string    `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}

// Patient is the aggregate root. Vitals fields follow the intake form:
// blood pressure is kept as the "120/80" display string, oxygen saturation
// as a percentage, heart rate in bpm.
type Patient struct {
	ID            string         `json:"id" bson:"_id,omitempty"`
	Name          string         `json:"name" bson:"name"`
	Age           int            `json:"age" bson:"age"`
	HeightCm      int            `json:"height_cm" bson:"height_cm"`
	WeightKg      int            `json:"weight_kg" bson:"weight_kg"`
	BloodPressure string         `json:"blood_pressure" bson:"blood_pressure"`
	OxygenSat     int            `json:"oxygen_sat" bson:"oxygen_sat"`
	HeartRate     int            `json:"heart_rate" bson:"heart_rate"`
	Disease       string         `json:"disease" bson:"disease"`
	Status        PatientStatus  `json:"status" bson:"status"`
	Photo         string         `json:"photo,omitempty" bson:"photo,omitempty"`
	Prescriptions []Prescription `json:"prescriptions" bson:"prescriptions"`
	CreatedAt     time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at" bson:"updated_at"`
}
