package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/carelink/hospital-system/internal/api/metrics"
	"github.com/carelink/hospital-system/internal/core/ports"
)

// PatientHandler handles HTTP requests for patients and their embedded
// prescriptions. Domain errors flow to the central HTTP error handler.
type PatientHandler struct {
	service ports.PatientService
}

func NewPatientHandler(service ports.PatientService) *PatientHandler {
	return &PatientHandler{service: service}
}

// List handles GET /patients.
//
// @Summary      List all patients
// @Tags         patients
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Patient
// @Failure      401  {object}  errorResponse
// @Router       /patients [get]
func (h *PatientHandler) List(c echo.Context) error {
	patients, err := h.service.ListPatients(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, patients)
}

// Create handles POST /patients.
//
// @Summary      Register a new patient
// @Tags         patients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      patientRequest  true  "Patient details"
// @Success      201   {object}  createdResponse
// @Failure      400   {object}  errorResponse
// @Router       /patients [post]
func (h *PatientHandler) Create(c echo.Context) error {
	actor, err := actorEmail(c)
	if err != nil {
		return err
	}

	var req patientRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	id, err := h.service.CreatePatient(c.Request().Context(), actor, patientInput(req))
	if err != nil {
		return err
	}

	metrics.PatientsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, createdResponse{ID: id})
}

// Update handles PUT /patients/:id.
//
// @Summary      Update a patient
// @Tags         patients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Patient id"
// @Param        body  body      patientRequest  true  "Patient details"
// @Success      200   {object}  messageResponse
// @Failure      404   {object}  errorResponse
// @Router       /patients/{id} [put]
func (h *PatientHandler) Update(c echo.Context) error {
	actor, err := actorEmail(c)
	if err != nil {
		return err
	}

	var req patientRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	if err := h.service.UpdatePatient(c.Request().Context(), actor, c.Param("id"), patientInput(req)); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Patient updated"})
}

// Delete handles DELETE /patients/:id.
//
// @Summary      Delete a patient
// @Tags         patients
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Patient id"
// @Success      200 {object}  messageResponse
// @Failure      404 {object}  errorResponse
// @Router       /patients/{id} [delete]
func (h *PatientHandler) Delete(c echo.Context) error {
	actor, err := actorEmail(c)
	if err != nil {
		return err
	}
	if err := h.service.DeletePatient(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Patient deleted"})
}

// ListPrescriptions handles GET /patients/:id/prescriptions.
func (h *PatientHandler) ListPrescriptions(c echo.Context) error {
	prescriptions, err := h.service.ListPrescriptions(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, prescriptions)
}

// AddPrescription handles POST /patients/:id/prescriptions.
func (h *PatientHandler) AddPrescription(c echo.Context) error {
	actor, err := actorEmail(c)
	if err != nil {
		return err
	}

	var req prescriptionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	id, err := h.service.AddPrescription(c.Request().Context(), actor, c.Param("id"), prescriptionInput(req))
	if err != nil {
		return err
	}

	metrics.PrescriptionChangesTotal.WithLabelValues("added").Inc()
	return c.JSON(http.StatusCreated, createdResponse{ID: id})
}

// UpdatePrescription handles PUT /patients/:id/prescriptions/:prescriptionID.
func (h *PatientHandler) UpdatePrescription(c echo.Context) error {
	actor, err := actorEmail(c)
	if err != nil {
		return err
	}

	var req prescriptionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	if err := h.service.UpdatePrescription(c.Request().Context(), actor, c.Param("id"), c.Param("prescriptionID"), prescriptionInput(req)); err != nil {
		return err
	}

	metrics.PrescriptionChangesTotal.WithLabelValues("updated").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Prescription updated"})
}

// DeletePrescription handles DELETE /patients/:id/prescriptions/:prescriptionID.
func (h *PatientHandler) DeletePrescription(c echo.Context) error {
	actor, err := actorEmail(c)
	if err != nil {
		return err
	}
	if err := h.service.DeletePrescription(c.Request().Context(), actor, c.Param("id"), c.Param("prescriptionID")); err != nil {
		return err
	}

	metrics.PrescriptionChangesTotal.WithLabelValues("deleted").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Prescription deleted successfully"})
}

func patientInput(req patientRequest) ports.PatientInput {
	return ports.PatientInput{
		Name:          req.Name,
		Age:           req.Age,
		HeightCm:      req.HeightCm,
		WeightKg:      req.WeightKg,
		BloodPressure: req.BloodPressure,
		OxygenSat:     req.OxygenSat,
		HeartRate:     req.HeartRate,
		Disease:       req.Disease,
		Status:        req.Status,
		Photo:         req.Photo,
	}
}

func prescriptionInput(req prescriptionRequest) ports.PrescriptionInput {
	return ports.PrescriptionInput{
		Medication: req.Medication,
		Dosage:     req.Dosage,
		Frequency:  req.Frequency,
		Notes:      req.Notes,
	}
}
