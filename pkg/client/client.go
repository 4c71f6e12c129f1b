// Package client is the Go API client for the hospital service. It owns the
// login attempt throttle, so callers cannot accidentally bypass the lockout,
// and decodes auth responses into a tagged result instead of sniffing
// response shapes.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Outcome is the explicit discriminant of an authentication exchange.
type Outcome int

const (
	// OutcomeSuccess: signup confirmed or token issued.
	OutcomeSuccess Outcome = iota
	// OutcomeConflict: the email is already registered.
	OutcomeConflict
	// OutcomeInvalidCredentials: unknown user or wrong password.
	OutcomeInvalidCredentials
	// OutcomeValidationError: the server rejected the request as incomplete.
	OutcomeValidationError
	// OutcomeThrottled: the server's rate limit refused the attempt.
	OutcomeThrottled
	// OutcomeLockedOut: the local lockout refused the attempt; no request
	// was sent.
	OutcomeLockedOut
	// OutcomeFailure: any other server response.
	OutcomeFailure
)

// AuthResult is the decoded outcome of a signup or login call.
type AuthResult struct {
	Outcome Outcome
	Token   string        // set on login success
	Message string        // server-provided message or error text
	Retry   time.Duration // set with OutcomeLockedOut: time until unlock
}

// Client talks to the hospital API. Construct with New; safe for use from a
// single goroutine (the embedded throttle is itself synchronized).
type Client struct {
	baseURL  string
	http     *http.Client
	throttle *LoginThrottle
	token    string
}

func New(baseURL string) *Client {
	return &Client{
		baseURL:  baseURL,
		http:     &http.Client{Timeout: 15 * time.Second},
		throttle: NewLoginThrottle(),
	}
}

// Throttle exposes the lockout state for UI feedback.
func (c *Client) Throttle() *LoginThrottle { return c.throttle }

// Token returns the bearer token from the last successful login.
func (c *Client) Token() string { return c.token }

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token   string `json:"token"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Signup registers a new account. Signup failures never feed the login
// throttle.
func (c *Client) Signup(ctx context.Context, email, password string) (AuthResult, error) {
	return c.postAuth(ctx, "/signup", email, password)
}

// Login authenticates and stores the returned bearer token. While the local
// lockout is active the request is not sent at all; the result carries the
// remaining wait. Only server-reported failures count toward the lockout.
func (c *Client) Login(ctx context.Context, email, password string) (AuthResult, error) {
	if ok, remaining := c.throttle.Allow(); !ok {
		return AuthResult{Outcome: OutcomeLockedOut, Retry: remaining}, nil
	}

	result, err := c.postAuth(ctx, "/login", email, password)
	if err != nil {
		return result, err
	}

	switch result.Outcome {
	case OutcomeSuccess:
		c.throttle.RecordSuccess()
		c.token = result.Token
	case OutcomeInvalidCredentials, OutcomeValidationError, OutcomeFailure:
		c.throttle.RecordFailure()
	}
	return result, nil
}

func (c *Client) postAuth(ctx context.Context, path, email, password string) (AuthResult, error) {
	body, err := json.Marshal(credentials{Email: email, Password: password})
	if err != nil {
		return AuthResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return AuthResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return AuthResult{}, fmt.Errorf("auth request: %w", err)
	}
	defer resp.Body.Close()

	var decoded authResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return AuthResult{}, fmt.Errorf("decode auth response: %w", err)
	}

	return tagResult(resp.StatusCode, decoded), nil
}

// tagResult maps status code and body to the explicit outcome. The legacy
// error strings are part of the server contract, so matching on them is
// stable.
func tagResult(status int, body authResponse) AuthResult {
	switch {
	case status == http.StatusOK && body.Token != "":
		return AuthResult{Outcome: OutcomeSuccess, Token: body.Token}
	case status == http.StatusCreated:
		return AuthResult{Outcome: OutcomeSuccess, Message: body.Message}
	case status == http.StatusTooManyRequests:
		return AuthResult{Outcome: OutcomeThrottled, Message: body.Error}
	case status == http.StatusBadRequest:
		switch body.Error {
		case "Email already registered":
			return AuthResult{Outcome: OutcomeConflict, Message: body.Error}
		case "User not found", "Invalid password":
			return AuthResult{Outcome: OutcomeInvalidCredentials, Message: body.Error}
		default:
			return AuthResult{Outcome: OutcomeValidationError, Message: body.Error}
		}
	default:
		return AuthResult{Outcome: OutcomeFailure, Message: body.Error}
	}
}

// --- Patient operations ---

// Patient mirrors the server's patient resource. Defined here rather than
// imported so the package stays importable outside this module.
type Patient struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Age           int            `json:"age"`
	HeightCm      int            `json:"height_cm"`
	WeightKg      int            `json:"weight_kg"`
	BloodPressure string         `json:"blood_pressure"`
	OxygenSat     int            `json:"oxygen_sat"`
	HeartRate     int            `json:"heart_rate"`
	Disease       string         `json:"disease"`
	Status        string         `json:"status"`
	Photo         string         `json:"photo,omitempty"`
	Prescriptions []Prescription `json:"prescriptions"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// Prescription mirrors the server's embedded prescription resource.
type Prescription struct {
	ID         string    `json:"id"`
	Medication string    `json:"medication"`
	Dosage     string    `json:"dosage"`
	Frequency  string    `json:"frequency,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// PatientPayload mirrors the server's patient request schema.
type PatientPayload struct {
	Name          string `json:"name"`
	Age           int    `json:"age"`
	HeightCm      int    `json:"height_cm,omitempty"`
	WeightKg      int    `json:"weight_kg,omitempty"`
	BloodPressure string `json:"blood_pressure,omitempty"`
	OxygenSat     int    `json:"oxygen_sat,omitempty"`
	HeartRate     int    `json:"heart_rate,omitempty"`
	Disease       string `json:"disease,omitempty"`
	Status        string `json:"status"`
}

// PrescriptionPayload mirrors the server's prescription request schema.
type PrescriptionPayload struct {
	Medication string `json:"medication"`
	Dosage     string `json:"dosage"`
	Frequency  string `json:"frequency,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

func (c *Client) ListPatients(ctx context.Context) ([]Patient, error) {
	var patients []Patient
	if err := c.doJSON(ctx, http.MethodGet, "/patients", nil, &patients); err != nil {
		return nil, err
	}
	return patients, nil
}

func (c *Client) CreatePatient(ctx context.Context, p PatientPayload) (string, error) {
	var created struct {
		ID string `json:"id"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/patients", p, &created); err != nil {
		return "", err
	}
	return created.ID, nil
}

func (c *Client) DeletePatient(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/patients/"+id, nil, nil)
}

func (c *Client) ListPrescriptions(ctx context.Context, patientID string) ([]Prescription, error) {
	var prescriptions []Prescription
	if err := c.doJSON(ctx, http.MethodGet, "/patients/"+patientID+"/prescriptions", nil, &prescriptions); err != nil {
		return nil, err
	}
	return prescriptions, nil
}

func (c *Client) AddPrescription(ctx context.Context, patientID string, p PrescriptionPayload) (string, error) {
	var created struct {
		ID string `json:"id"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/patients/"+patientID+"/prescriptions", p, &created); err != nil {
		return "", err
	}
	return created.ID, nil
}

// APIError is a non-2xx response from a patient endpoint.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var reqBody *bytes.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var decoded struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&decoded)
		return &APIError{Status: resp.StatusCode, Message: decoded.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}
