package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/carelink/hospital-system/internal/core/domain"
	"github.com/carelink/hospital-system/internal/core/ports"
)

type stubPatientService struct {
	patients  []*domain.Patient
	created   ports.PatientInput
	createdID string
	err       error
}

func (s *stubPatientService) ListPatients(context.Context) ([]*domain.Patient, error) {
	return s.patients, s.err
}

func (s *stubPatientService) CreatePatient(_ context.Context, _ string, input ports.PatientInput) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.created = input
	return s.createdID, nil
}

func (s *stubPatientService) UpdatePatient(_ context.Context, _, _ string, _ ports.PatientInput) error {
	return s.err
}

func (s *stubPatientService) DeletePatient(_ context.Context, _, _ string) error {
	return s.err
}

func (s *stubPatientService) ListPrescriptions(_ context.Context, _ string) ([]domain.Prescription, error) {
	return nil, s.err
}

func (s *stubPatientService) AddPrescription(_ context.Context, _, _ string, _ ports.PrescriptionInput) (string, error) {
	return s.createdID, s.err
}

func (s *stubPatientService) UpdatePrescription(_ context.Context, _, _, _ string, _ ports.PrescriptionInput) error {
	return s.err
}

func (s *stubPatientService) DeletePrescription(_ context.Context, _, _, _ string) error {
	return s.err
}

func patientContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("email", "doctor@hospital.org")
	return c, rec
}

const validPatientBody = `{"name":"John Carter","age":52,"height_cm":180,"weight_kg":82,"blood_pressure":"130/85","oxygen_sat":97,"heart_rate":72,"disease":"hypertension","status":"stable"}`

func TestPatientHandler_Create(t *testing.T) {
	svc := &stubPatientService{createdID: "abc123"}
	h := NewPatientHandler(svc)

	c, rec := patientContext(t, http.MethodPost, "/patients", validPatientBody)
	if err := h.Create(c); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.created.Name != "John Carter" || svc.created.Status != "stable" {
		t.Fatalf("input not forwarded: %+v", svc.created)
	}
}

func TestPatientHandler_Create_ValidationFailure(t *testing.T) {
	h := NewPatientHandler(&stubPatientService{})

	c, rec := patientContext(t, http.MethodPost, "/patients", `{"age":52}`)
	if err := h.Create(c); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestPatientHandler_Create_Unauthenticated(t *testing.T) {
	h := NewPatientHandler(&stubPatientService{})

	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/patients", strings.NewReader(validPatientBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())

	err := h.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestPatientHandler_Update_NotFoundPropagates(t *testing.T) {
	h := NewPatientHandler(&stubPatientService{err: domain.ErrPatientNotFound})

	c, _ := patientContext(t, http.MethodPut, "/patients/x", validPatientBody)
	c.SetParamNames("id")
	c.SetParamValues("x")

	if err := h.Update(c); err != domain.ErrPatientNotFound {
		t.Fatalf("expected ErrPatientNotFound to reach the error handler, got %v", err)
	}
}

func TestPatientHandler_DeletePrescription_Message(t *testing.T) {
	h := NewPatientHandler(&stubPatientService{})

	c, rec := patientContext(t, http.MethodDelete, "/patients/x/prescriptions/y", "")
	c.SetParamNames("id", "prescriptionID")
	c.SetParamValues("x", "y")

	if err := h.DeletePrescription(c); err != nil {
		t.Fatalf("DeletePrescription returned error: %v", err)
	}
	if body := decodeBody(t, rec); body["message"] != "Prescription deleted successfully" {
		t.Fatalf("unexpected body: %v", body)
	}
}
