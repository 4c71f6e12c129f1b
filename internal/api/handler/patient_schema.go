package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

type patientRequest struct {
	Name          string `json:"name"           validate:"required"`
	Age           int    `json:"age"            validate:"required,gte=0,lte=150"`
	HeightCm      int    `json:"height_cm"      validate:"omitempty,gt=0"`
	WeightKg      int    `json:"weight_kg"      validate:"omitempty,gt=0"`
	BloodPressure string `json:"blood_pressure" validate:"omitempty"`
	OxygenSat     int    `json:"oxygen_sat"     validate:"omitempty,gt=0,lte=100"`
	HeartRate     int    `json:"heart_rate"     validate:"omitempty,gt=0"`
	Disease       string `json:"disease"        validate:"omitempty"`
	Status        string `json:"status"         validate:"required"`
	Photo         string `json:"photo"          validate:"omitempty"`
}

type prescriptionRequest struct {
	Medication string `json:"medication" validate:"required"`
	Dosage     string `json:"dosage"     validate:"required"`
	Frequency  string `json:"frequency"  validate:"omitempty"`
	Notes      string `json:"notes"      validate:"omitempty"`
}

type createdResponse struct {
	ID string `json:"id"`
}
