package domain

import "time"

// Audit actions recorded for the hospital compliance trail.
const (
	AuditLoginSuccess       = "login_success"
	AuditLoginFailure       = "login_failure"
	AuditSignup             = "signup"
	AuditPatientCreated     = "patient_created"
	AuditPatientUpdated     = "patient_updated"
	AuditPatientDeleted     = "patient_deleted"
	AuditPrescriptionChange = "prescription_change"
)

// AuditEvent is an append-only record of who did what. Actor is the
// authenticated email (or the attempted email for auth events), Subject the
// affected resource identifier.
type AuditEvent struct {
	Actor     string    `bson:"actor"`
	Action    string    `bson:"action"`
	Subject   string    `bson:"subject,omitempty"`
	Timestamp time.Time `bson:"timestamp"`
}
