package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/carelink/hospital-system/internal/core/domain"
)

const patientsCollection = "patients"

// PatientRepository stores patients as single documents with prescriptions
// embedded as an array. All prescription mutations are single-document
// updates, so they are atomic per patient.
type PatientRepository struct {
	coll *mongo.Collection
}

func NewPatientRepository(db *mongo.Database) *PatientRepository {
	return &PatientRepository{coll: db.Collection(patientsCollection)}
}

func (r *PatientRepository) List(ctx context.Context) ([]*domain.Patient, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	defer cursor.Close(ctx)

	patients := []*domain.Patient{}
	for cursor.Next(ctx) {
		var p domain.Patient
		if err := cursor.Decode(&p); err != nil {
			return nil, fmt.Errorf("decode patient: %w", err)
		}
		patients = append(patients, &p)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	return patients, nil
}

func (r *PatientRepository) FindByID(ctx context.Context, id string) (*domain.Patient, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.Patient
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPatientNotFound
		}
		return nil, fmt.Errorf("find patient: %w", err)
	}
	return &p, nil
}

func (r *PatientRepository) Insert(ctx context.Context, p *domain.Patient) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, p)
	if err != nil {
		return "", fmt.Errorf("insert patient: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("insert patient: unexpected id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

// Update sets the editable fields only; the prescriptions array and
// created_at are deliberately outside the $set document.
func (r *PatientRepository) Update(ctx context.Context, p *domain.Patient) error {
	oid, err := objectID(p.ID)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"name":           p.Name,
		"age":            p.Age,
		"height_cm":      p.HeightCm,
		"weight_kg":      p.WeightKg,
		"blood_pressure": p.BloodPressure,
		"oxygen_sat":     p.OxygenSat,
		"heart_rate":     p.HeartRate,
		"disease":        p.Disease,
		"status":         p.Status,
		"photo":          p.Photo,
		"updated_at":     p.UpdatedAt,
	}}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update patient: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPatientNotFound
	}
	return nil
}

func (r *PatientRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete patient: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPatientNotFound
	}
	return nil
}

func (r *PatientRepository) AddPrescription(ctx context.Context, patientID string, pr *domain.Prescription) error {
	oid, err := objectID(patientID)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$push": bson.M{"prescriptions": pr}},
	)
	if err != nil {
		return fmt.Errorf("add prescription: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPatientNotFound
	}
	return nil
}

func (r *PatientRepository) UpdatePrescription(ctx context.Context, patientID string, pr *domain.Prescription) error {
	oid, err := objectID(patientID)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	// Positional $set on the editable fields only; _id and created_at stay.
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "prescriptions._id": pr.ID},
		bson.M{"$set": bson.M{
			"prescriptions.$.medication": pr.Medication,
			"prescriptions.$.dosage":     pr.Dosage,
			"prescriptions.$.frequency":  pr.Frequency,
			"prescriptions.$.notes":      pr.Notes,
		}},
	)
	if err != nil {
		return fmt.Errorf("update prescription: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPrescriptionNotFound
	}
	return nil
}

func (r *PatientRepository) RemovePrescription(ctx context.Context, patientID, prescriptionID string) error {
	oid, err := objectID(patientID)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$pull": bson.M{"prescriptions": bson.M{"_id": prescriptionID}}},
	)
	if err != nil {
		return fmt.Errorf("remove prescription: %w", err)
	}
	if res.ModifiedCount == 0 {
		return domain.ErrPrescriptionNotFound
	}
	return nil
}

// objectID parses a hex document id; an unparseable id is indistinguishable
// from a missing document as far as the API is concerned.
func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, domain.ErrPatientNotFound
	}
	return oid, nil
}
