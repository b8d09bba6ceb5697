package core

import (
	"errors"
	"math"
	"testing"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 10000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}

	if len(ids) != numIDs {
		t.Errorf("Expected %d unique IDs, got %d", numIDs, len(ids))
	}
}

// TestParseReportID tests report ID parsing
func TestParseReportID(t *testing.T) {
	fresh := NewReportID()

	tests := []struct {
		input    string
		expected ReportID
		hasError bool
	}{
		{fresh.String(), fresh, false},
		{"  " + fresh.String() + " ", fresh, false},
		{"", "", true},
		{"   ", "", true},
		{"report-1", "", true},
	}

	for _, test := range tests {
		result, err := ParseReportID(test.input)
		if test.hasError && err == nil {
			t.Errorf("Expected error for input '%s', but got none", test.input)
		}
		if !test.hasError && err != nil {
			t.Errorf("Unexpected error for input '%s': %v", test.input, err)
		}
		if result != test.expected {
			t.Errorf("Expected %s, got %s", test.expected, result)
		}
	}
}

// TestSampleHashOrderAndBits tests that the hash depends on order and exact bits
func TestSampleHashOrderAndBits(t *testing.T) {
	a := NewSampleHash([]float64{1, 2, 3})
	b := NewSampleHash([]float64{1, 2, 3})
	if a != b {
		t.Errorf("Expected equal hashes for equal samples, got %s and %s", a, b)
	}

	if a == NewSampleHash([]float64{3, 2, 1}) {
		t.Error("Expected reordered sample to hash differently")
	}

	if NewSampleHash([]float64{0}) == NewSampleHash([]float64{math.Copysign(0, -1)}) {
		t.Error("Expected +0 and -0 to hash differently")
	}

	if len(a.String()) != 64 {
		t.Errorf("Expected 64 hex characters, got %d", len(a.String()))
	}
}

// TestErrorClassification tests sentinel wrapping
func TestErrorClassification(t *testing.T) {
	err := NewNonFiniteError(2, math.NaN())
	if !errors.Is(err, ErrNonFinite) {
		t.Errorf("Expected ErrNonFinite in chain, got %v", err)
	}
	if !IsValidationError(err) {
		t.Error("Expected non-finite error to be a validation error")
	}

	notFound := NewReportNotFoundError(ReportID("x"))
	if !IsNotFoundError(notFound) {
		t.Error("Expected report-not-found to be a not-found error")
	}
	if IsValidationError(notFound) {
		t.Error("Expected report-not-found not to be a validation error")
	}
}
