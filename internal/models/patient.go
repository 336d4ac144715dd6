// Package models defines the domain models for medboard.
package models

import (
	"errors"
	"fmt"
)

// Severity grades how ill a patient is.
type Severity int

const (
	SeverityMild     Severity = 1
	SeverityModerate Severity = 2
	SeverityCritical Severity = 3
)

// Valid returns true if the severity is a known grade.
func (s Severity) Valid() bool {
	return s >= SeverityMild && s <= SeverityCritical
}

// String returns the display string for the severity.
func (s Severity) String() string {
	switch s {
	case SeverityMild:
		return "Mild"
	case SeverityModerate:
		return "Moderate"
	case SeverityCritical:
		return "Critical"
	default:
		return "Unknown"
	}
}

// Patient is a person moving through the hospital: queued for intake,
// waiting, housed in a clinical ward, and finally cured or deceased.
type Patient struct {
	ID            int
	Name          string
	Surname       string
	Age           int
	PreferredArea string // clinical ward this patient should ideally go to
	Diagnosis     string
	Severity      Severity

	// TurnsWaited only advances while the patient is in the Waiting Room.
	TurnsWaited int

	RequiredSupplyID int
	RequiredQuantity int
}

// FullName returns the patient's display name.
func (p *Patient) FullName() string {
	return p.Name + " " + p.Surname
}

// Validate checks the roster-row invariants. Rows failing validation are
// dropped at load time rather than surfaced as runtime errors.
func (p *Patient) Validate() error {
	var errs []error

	if !p.Severity.Valid() {
		errs = append(errs, fmt.Errorf("severity out of range: %d", int(p.Severity)))
	}

	if p.Age < 0 || p.Age > 120 {
		errs = append(errs, fmt.Errorf("age out of range: %d", p.Age))
	}

	if p.RequiredQuantity < 0 {
		errs = append(errs, fmt.Errorf("required quantity negative: %d", p.RequiredQuantity))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}
