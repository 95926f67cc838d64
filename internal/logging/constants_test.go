package logging

import (
	"testing"
)

func TestConstants(t *testing.T) {
	if FieldFile == "" {
		t.Error("FieldFile constant should not be empty")
	}
	if FieldLine == "" {
		t.Error("FieldLine constant should not be empty")
	}
	if FieldReason == "" {
		t.Error("FieldReason constant should not be empty")
	}
	if FieldInputFile == "" {
		t.Error("FieldInputFile constant should not be empty")
	}
	if FieldOutputFile == "" {
		t.Error("FieldOutputFile constant should not be empty")
	}
}
