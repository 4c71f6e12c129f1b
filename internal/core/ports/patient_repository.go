package ports

import (
	"context"

	"github.com/carelink/hospital-system/internal/core/domain"
)

// PatientRepository defines persistence operations for patients and their
// embedded prescriptions. Prescription mutations must be atomic with respect
// to the owning patient document (single-document updates).
type PatientRepository interface {
	List(ctx context.Context) ([]*domain.Patient, error)
	FindByID(ctx context.Context, id string) (*domain.Patient, error)
	// Insert stores the patient and returns the generated document id.
	Insert(ctx context.Context, p *domain.Patient) (string, error)
	Update(ctx context.Context, p *domain.Patient) error
	Delete(ctx context.Context, id string) error

	// AddPrescription appends pr to the patient's prescriptions array.
	AddPrescription(ctx context.Context, patientID string, pr *domain.Prescription) error
	// UpdatePrescription rewrites the editable fields of the array element
	// matching pr.ID, preserving its creation time.
	UpdatePrescription(ctx context.Context, patientID string, pr *domain.Prescription) error
	// RemovePrescription pulls the element with prescriptionID.
	RemovePrescription(ctx context.Context, patientID, prescriptionID string) error
}
