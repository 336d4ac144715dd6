// Package roster loads the startup CSV rosters and generates daily
// arrivals. Malformed rows are dropped with a count, never surfaced as
// errors; only a missing or unreadable file is fatal to startup.
package roster

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/medboard/medboard/internal/models"
)

// PatientResult reports what a roster load produced.
type PatientResult struct {
	Patients []*models.Patient
	Dropped  int
}

// LoadPatients reads the patient roster. Expected columns:
// id,name,surname,age,area,diagnosis,severity,requiredSupplyId,requiredQuantity.
// The header row is skipped. Rows that fail validation are dropped.
func LoadPatients(path string) (*PatientResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening patient roster: %w", err)
	}
	defer f.Close()

	res, err := ReadPatients(f)
	if err != nil {
		return nil, fmt.Errorf("reading patient roster %s: %w", path, err)
	}
	if res.Dropped > 0 {
		slog.Warn("dropped malformed patient rows", "path", path, "count", res.Dropped)
	}
	return res, nil
}

// ReadPatients parses patient rows from a reader.
func ReadPatients(r io.Reader) (*PatientResult, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // row shape is validated per row
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing csv: %w", err)
	}

	res := &PatientResult{}
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		p, ok := parsePatientRow(row)
		if !ok {
			res.Dropped++
			continue
		}
		res.Patients = append(res.Patients, p)
	}
	return res, nil
}

func parsePatientRow(row []string) (*models.Patient, bool) {
	if len(row) != 9 {
		return nil, false
	}

	nums := make([]int, 0, 5)
	for _, idx := range []int{0, 3, 6, 7, 8} {
		n, err := strconv.Atoi(row[idx])
		if err != nil {
			return nil, false
		}
		nums = append(nums, n)
	}

	p := &models.Patient{
		ID:               nums[0],
		Name:             row[1],
		Surname:          row[2],
		Age:              nums[1],
		PreferredArea:    row[4],
		Diagnosis:        row[5],
		Severity:         models.Severity(nums[2]),
		RequiredSupplyID: nums[3],
		RequiredQuantity: nums[4],
	}
	if p.ID <= 0 || p.Validate() != nil {
		return nil, false
	}
	return p, true
}
