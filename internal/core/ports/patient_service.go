package ports

import (
	"context"

	"github.com/carelink/hospital-system/internal/core/domain"
)

// PatientInput carries all fields accepted on create and full update.
type PatientInput struct {
	Name          string
	Age           int
	HeightCm      int
	WeightKg      int
	BloodPressure string
	OxygenSat     int
	HeartRate     int
	Disease       string
	Status        string
	Photo         string
}

// PrescriptionInput carries the editable prescription fields.
type PrescriptionInput struct {
	Medication string
	Dosage     string
	Frequency  string
	Notes      string
}

// PatientService defines the patient and prescription use cases. Actor is
// the authenticated email and is only used for the audit trail.
type PatientService interface {
	ListPatients(ctx context.Context) ([]*domain.Patient, error)
	CreatePatient(ctx context.Context, actor string, input PatientInput) (string, error)
	UpdatePatient(ctx context.Context, actor, id string, input PatientInput) error
	DeletePatient(ctx context.Context, actor, id string) error

	ListPrescriptions(ctx context.Context, patientID string) ([]domain.Prescription, error)
	AddPrescription(ctx context.Context, actor, patientID string, input PrescriptionInput) (string, error)
	UpdatePrescription(ctx context.Context, actor, patientID, prescriptionID string, input PrescriptionInput) error
	DeletePrescription(ctx context.Context, actor, patientID, prescriptionID string) error
}
