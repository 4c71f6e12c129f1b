package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/carelink/hospital-system/pkg/client"
)

// ListPatients prints the ward roster for the logged-in user.
func (a *App) ListPatients() error {
	if a.api.Token() == "" {
		fmt.Fprintln(a.out, "Please log in first")
		return nil
	}

	patients, err := a.api.ListPatients(context.Background())
	if err != nil {
		return err
	}
	if len(patients) == 0 {
		fmt.Fprintln(a.out, "No patients on record")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tAGE\tSTATUS\tDISEASE\tRX")
	for _, p := range patients {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%d\n",
			p.ID, p.Name, p.Age, p.Status, p.Disease, len(p.Prescriptions))
	}
	return tw.Flush()
}

// AddPatient prompts for the admission form fields and creates the record.
func (a *App) AddPatient() error {
	if a.api.Token() == "" {
		fmt.Fprintln(a.out, "Please log in first")
		return nil
	}

	name, err := GetSimpleText(a.reader, "Patient name", a.out)
	if err != nil {
		return err
	}
	if name == "" {
		fmt.Fprintln(a.out, "Name is required")
		return nil
	}

	ageText, err := GetSimpleText(a.reader, "Age", a.out)
	if err != nil {
		return err
	}
	age, err := strconv.Atoi(ageText)
	if err != nil || age < 0 {
		fmt.Fprintln(a.out, "Age must be a non-negative number")
		return nil
	}

	disease, err := GetSimpleText(a.reader, "Diagnosis", a.out)
	if err != nil {
		return err
	}

	status, err := GetSimpleText(a.reader, "Status (stable/critical)", a.out)
	if err != nil {
		return err
	}
	status = strings.ToLower(strings.TrimSpace(status))
	if status != "stable" && status != "critical" {
		fmt.Fprintln(a.out, "Status must be stable or critical")
		return nil
	}

	id, err := a.api.CreatePatient(context.Background(), client.PatientPayload{
		Name:    name,
		Age:     age,
		Disease: disease,
		Status:  status,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Patient admitted with id %s\n", id)
	return nil
}
