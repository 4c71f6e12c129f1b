package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/carelink/hospital-system/internal/core/domain"
	"github.com/carelink/hospital-system/internal/core/ports"
)

// PatientService implements the patient and embedded-prescription use cases.
type PatientService struct {
	repo  ports.PatientRepository
	audit ports.AuditRecorder
	log   zerolog.Logger
}

func NewPatientService(repo ports.PatientRepository, audit ports.AuditRecorder, log zerolog.Logger) *PatientService {
	return &PatientService{repo: repo, audit: audit, log: log}
}

func (s *PatientService) ListPatients(ctx context.Context) ([]*domain.Patient, error) {
	return s.repo.List(ctx)
}

func (s *PatientService) CreatePatient(ctx context.Context, actor string, input ports.PatientInput) (string, error) {
	status, err := parseStatus(input.Status)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	patient := &domain.Patient{
		Name:          input.Name,
		Age:           input.Age,
		HeightCm:      input.HeightCm,
		WeightKg:      input.WeightKg,
		BloodPressure: input.BloodPressure,
		OxygenSat:     input.OxygenSat,
		HeartRate:     input.HeartRate,
		Disease:       input.Disease,
		Status:        status,
		Photo:         input.Photo,
		Prescriptions: []domain.Prescription{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	id, err := s.repo.Insert(ctx, patient)
	if err != nil {
		return "", fmt.Errorf("create patient: %w", err)
	}

	s.record(actor, domain.AuditPatientCreated, id)
	s.log.Info().Str("patient_id", id).Str("status", string(status)).Msg("patient created")
	return id, nil
}

// UpdatePatient replaces the editable fields. Prescriptions are untouched;
// they change only through the prescription operations.
func (s *PatientService) UpdatePatient(ctx context.Context, actor, id string, input ports.PatientInput) error {
	status, err := parseStatus(input.Status)
	if err != nil {
		return err
	}

	patient := &domain.Patient{
		ID:            id,
		Name:          input.Name,
		Age:           input.Age,
		HeightCm:      input.HeightCm,
		WeightKg:      input.WeightKg,
		BloodPressure: input.BloodPressure,
		OxygenSat:     input.OxygenSat,
		HeartRate:     input.HeartRate,
		Disease:       input.Disease,
		Status:        status,
		Photo:         input.Photo,
		UpdatedAt:     time.Now().UTC(),
	}

	if err := s.repo.Update(ctx, patient); err != nil {
		return err
	}

	s.record(actor, domain.AuditPatientUpdated, id)
	return nil
}

func (s *PatientService) DeletePatient(ctx context.Context, actor, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.record(actor, domain.AuditPatientDeleted, id)
	return nil
}

func (s *PatientService) ListPrescriptions(ctx context.Context, patientID string) ([]domain.Prescription, error) {
	patient, err := s.repo.FindByID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if patient.Prescriptions == nil {
		return []domain.Prescription{}, nil
	}
	return patient.Prescriptions, nil
}

func (s *PatientService) AddPrescription(ctx context.Context, actor, patientID string, input ports.PrescriptionInput) (string, error) {
	pr := &domain.Prescription{
		ID:         uuid.NewString(),
		Medication: input.Medication,
		Dosage:     input.Dosage,
		Frequency:  input.Frequency,
		Notes:      input.Notes,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.repo.AddPrescription(ctx, patientID, pr); err != nil {
		return "", err
	}

	s.record(actor, domain.AuditPrescriptionChange, patientID)
	return pr.ID, nil
}

func (s *PatientService) UpdatePrescription(ctx context.Context, actor, patientID, prescriptionID string, input ports.PrescriptionInput) error {
	// CreatedAt is left zero: the repository only touches the editable
	// fields, so the stored creation time survives edits.
	pr := &domain.Prescription{
		ID:         prescriptionID,
		Medication: input.Medication,
		Dosage:     input.Dosage,
		Frequency:  input.Frequency,
		Notes:      input.Notes,
	}

	if err := s.repo.UpdatePrescription(ctx, patientID, pr); err != nil {
		return err
	}

	s.record(actor, domain.AuditPrescriptionChange, patientID)
	return nil
}

func (s *PatientService) DeletePrescription(ctx context.Context, actor, patientID, prescriptionID string) error {
	if err := s.repo.RemovePrescription(ctx, patientID, prescriptionID); err != nil {
		return err
	}
	s.record(actor, domain.AuditPrescriptionChange, patientID)
	return nil
}

func (s *PatientService) record(actor, action, subject string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(domain.AuditEvent{
		Actor:     actor,
		Action:    action,
		Subject:   subject,
		Timestamp: time.Now().UTC(),
	})
}

func parseStatus(raw string) (domain.PatientStatus, error) {
	status := domain.PatientStatus(strings.ToLower(strings.TrimSpace(raw)))
	if !status.Valid() {
		return "", domain.ErrInvalidStatus
	}
	return status, nil
}
