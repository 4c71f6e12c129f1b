package service

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/rs/zerolog"

	"github.com/carelink/hospital-system/internal/core/domain"
	"github.com/carelink/hospital-system/internal/core/ports"
)

type stubPatientRepo struct {
	patients map[string]*domain.Patient
	nextID   int
}

func newStubPatientRepo() *stubPatientRepo {
	return &stubPatientRepo{patients: make(map[string]*domain.Patient)}
}

func (r *stubPatientRepo) List(_ context.Context) ([]*domain.Patient, error) {
	out := make([]*domain.Patient, 0, len(r.patients))
	for _, p := range r.patients {
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubPatientRepo) FindByID(_ context.Context, id string) (*domain.Patient, error) {
	p, ok := r.patients[id]
	if !ok {
		return nil, domain.ErrPatientNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubPatientRepo) Insert(_ context.Context, p *domain.Patient) (string, error) {
	r.nextID++
	id := "p" + strconv.Itoa(r.nextID)
	clone := *p
	clone.ID = id
	r.patients[id] = &clone
	return id, nil
}

func (r *stubPatientRepo) Update(_ context.Context, p *domain.Patient) error {
	existing, ok := r.patients[p.ID]
	if !ok {
		return domain.ErrPatientNotFound
	}
	updated := *p
	updated.Prescriptions = existing.Prescriptions
	updated.CreatedAt = existing.CreatedAt
	r.patients[p.ID] = &updated
	return nil
}

func (r *stubPatientRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.patients[id]; !ok {
		return domain.ErrPatientNotFound
	}
	delete(r.patients, id)
	return nil
}

func (r *stubPatientRepo) AddPrescription(_ context.Context, patientID string, pr *domain.Prescription) error {
	p, ok := r.patients[patientID]
	if !ok {
		return domain.ErrPatientNotFound
	}
	p.Prescriptions = append(p.Prescriptions, *pr)
	return nil
}

func (r *stubPatientRepo) UpdatePrescription(_ context.Context, patientID string, pr *domain.Prescription) error {
	p, ok := r.patients[patientID]
	if !ok {
		return domain.ErrPrescriptionNotFound
	}
	for i := range p.Prescriptions {
		if p.Prescriptions[i].ID == pr.ID {
			// Same merge as the positional $set: editable fields only.
			p.Prescriptions[i].Medication = pr.Medication
			p.Prescriptions[i].Dosage = pr.Dosage
			p.Prescriptions[i].Frequency = pr.Frequency
			p.Prescriptions[i].Notes = pr.Notes
			return nil
		}
	}
	return domain.ErrPrescriptionNotFound
}

func (r *stubPatientRepo) RemovePrescription(_ context.Context, patientID, prescriptionID string) error {
	p, ok := r.patients[patientID]
	if !ok {
		return domain.ErrPrescriptionNotFound
	}
	for i := range p.Prescriptions {
		if p.Prescriptions[i].ID == prescriptionID {
			p.Prescriptions = append(p.Prescriptions[:i], p.Prescriptions[i+1:]...)
			return nil
		}
	}
	return domain.ErrPrescriptionNotFound
}

func stableInput() ports.PatientInput {
	return ports.PatientInput{
		Name:          "John Carter",
		Age:           52,
		HeightCm:      180,
		WeightKg:      82,
		BloodPressure: "130/85",
		OxygenSat:     97,
		HeartRate:     72,
		Disease:       "hypertension",
		Status:        "Stable",
	}
}

func newPatientService(repo *stubPatientRepo) *PatientService {
	return NewPatientService(repo, &recordedEvents{}, zerolog.Nop())
}

func TestPatientService_Create(t *testing.T) {
	repo := newStubPatientRepo()
	svc := newPatientService(repo)

	id, err := svc.CreatePatient(context.Background(), "a@b.com", stableInput())
	if err != nil {
		t.Fatalf("CreatePatient returned error: %v", err)
	}

	stored := repo.patients[id]
	if stored == nil {
		t.Fatalf("patient not stored")
	}
	if stored.Status != domain.StatusStable {
		t.Fatalf("status not normalized: %q", stored.Status)
	}
	if stored.Prescriptions == nil || len(stored.Prescriptions) != 0 {
		t.Fatalf("new patient must start with an empty prescriptions array")
	}
}

func TestPatientService_Create_InvalidStatus(t *testing.T) {
	svc := newPatientService(newStubPatientRepo())

	input := stableInput()
	input.Status = "deceased"
	if _, err := svc.CreatePatient(context.Background(), "a@b.com", input); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestPatientService_Update_PreservesPrescriptions(t *testing.T) {
	repo := newStubPatientRepo()
	svc := newPatientService(repo)

	id, _ := svc.CreatePatient(context.Background(), "a@b.com", stableInput())
	if _, err := svc.AddPrescription(context.Background(), "a@b.com", id, ports.PrescriptionInput{Medication: "lisinopril", Dosage: "10mg"}); err != nil {
		t.Fatalf("AddPrescription: %v", err)
	}

	input := stableInput()
	input.Status = "critical"
	if err := svc.UpdatePatient(context.Background(), "a@b.com", id, input); err != nil {
		t.Fatalf("UpdatePatient: %v", err)
	}

	stored := repo.patients[id]
	if stored.Status != domain.StatusCritical {
		t.Fatalf("status not updated: %q", stored.Status)
	}
	if len(stored.Prescriptions) != 1 {
		t.Fatalf("update must not touch prescriptions, got %d", len(stored.Prescriptions))
	}
}

func TestPatientService_Update_NotFound(t *testing.T) {
	svc := newPatientService(newStubPatientRepo())

	if err := svc.UpdatePatient(context.Background(), "a@b.com", "missing", stableInput()); !errors.Is(err, domain.ErrPatientNotFound) {
		t.Fatalf("expected ErrPatientNotFound, got %v", err)
	}
}

func TestPatientService_Delete_NotFound(t *testing.T) {
	svc := newPatientService(newStubPatientRepo())

	if err := svc.DeletePatient(context.Background(), "a@b.com", "missing"); !errors.Is(err, domain.ErrPatientNotFound) {
		t.Fatalf("expected ErrPatientNotFound, got %v", err)
	}
}

func TestPatientService_PrescriptionLifecycle(t *testing.T) {
	repo := newStubPatientRepo()
	svc := newPatientService(repo)
	ctx := context.Background()

	id, _ := svc.CreatePatient(ctx, "a@b.com", stableInput())

	prID, err := svc.AddPrescription(ctx, "a@b.com", id, ports.PrescriptionInput{Medication: "amoxicillin", Dosage: "500mg", Frequency: "3x daily"})
	if err != nil {
		t.Fatalf("AddPrescription: %v", err)
	}
	if prID == "" {
		t.Fatalf("expected a generated prescription id")
	}

	list, err := svc.ListPrescriptions(ctx, id)
	if err != nil {
		t.Fatalf("ListPrescriptions: %v", err)
	}
	if len(list) != 1 || list[0].Medication != "amoxicillin" {
		t.Fatalf("unexpected prescriptions: %+v", list)
	}

	if err := svc.UpdatePrescription(ctx, "a@b.com", id, prID, ports.PrescriptionInput{Medication: "amoxicillin", Dosage: "250mg"}); err != nil {
		t.Fatalf("UpdatePrescription: %v", err)
	}
	list, _ = svc.ListPrescriptions(ctx, id)
	if list[0].Dosage != "250mg" {
		t.Fatalf("dosage not updated: %+v", list[0])
	}

	if err := svc.DeletePrescription(ctx, "a@b.com", id, prID); err != nil {
		t.Fatalf("DeletePrescription: %v", err)
	}
	list, _ = svc.ListPrescriptions(ctx, id)
	if len(list) != 0 {
		t.Fatalf("prescription not removed: %+v", list)
	}
}

func TestPatientService_UpdatePrescription_PreservesCreatedAt(t *testing.T) {
	repo := newStubPatientRepo()
	svc := newPatientService(repo)
	ctx := context.Background()

	id, _ := svc.CreatePatient(ctx, "a@b.com", stableInput())
	prID, err := svc.AddPrescription(ctx, "a@b.com", id, ports.PrescriptionInput{Medication: "amoxicillin", Dosage: "500mg"})
	if err != nil {
		t.Fatalf("AddPrescription: %v", err)
	}

	list, _ := svc.ListPrescriptions(ctx, id)
	created := list[0].CreatedAt
	if created.IsZero() {
		t.Fatalf("expected CreatedAt to be stamped on add")
	}

	if err := svc.UpdatePrescription(ctx, "a@b.com", id, prID, ports.PrescriptionInput{Medication: "amoxicillin", Dosage: "250mg"}); err != nil {
		t.Fatalf("UpdatePrescription: %v", err)
	}

	list, _ = svc.ListPrescriptions(ctx, id)
	if !list[0].CreatedAt.Equal(created) {
		t.Fatalf("edit rewrote CreatedAt: had %v, got %v", created, list[0].CreatedAt)
	}
}

func TestPatientService_Prescription_NotFound(t *testing.T) {
	repo := newStubPatientRepo()
	svc := newPatientService(repo)
	ctx := context.Background()

	id, _ := svc.CreatePatient(ctx, "a@b.com", stableInput())

	if err := svc.UpdatePrescription(ctx, "a@b.com", id, "missing", ports.PrescriptionInput{}); !errors.Is(err, domain.ErrPrescriptionNotFound) {
		t.Fatalf("expected ErrPrescriptionNotFound, got %v", err)
	}
	if err := svc.DeletePrescription(ctx, "a@b.com", id, "missing"); !errors.Is(err, domain.ErrPrescriptionNotFound) {
		t.Fatalf("expected ErrPrescriptionNotFound, got %v", err)
	}
	if _, err := svc.ListPrescriptions(ctx, "missing"); !errors.Is(err, domain.ErrPatientNotFound) {
		t.Fatalf("expected ErrPatientNotFound, got %v", err)
	}
}
