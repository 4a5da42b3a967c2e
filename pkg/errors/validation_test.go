package errors

import (
	"strings"
	"testing"
)

func TestValidateLabel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "X", false},
		{"valid word", "smoking", false},
		{"valid underscore", "tar_deposits", false},
		{"valid dotted", "v.1", false},
		{"valid primed", "X'", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 65), true},
		{"space", "lung cancer", true},
		{"pipe", "a|b", true},
		{"comma", "a,b", true},
		{"paren", "f(x)", true},
		{"leading digit", "1x", true},
		{"control char", "x\x01", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLabel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLabel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateLabels(t *testing.T) {
	if err := ValidateLabels(nil); err != nil {
		t.Errorf("ValidateLabels(nil) = %v", err)
	}
	if err := ValidateLabels([]string{"X", "Y", "Z"}); err != nil {
		t.Errorf("ValidateLabels() = %v", err)
	}
	err := ValidateLabels([]string{"X", "Y", "X"})
	if err == nil {
		t.Fatal("expected duplicate error")
	}
	if !Is(err, ErrCodeInvalidInput) {
		t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidInput)
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "models/smoking.json", false},
		{"absolute", "/tmp/model.toml", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 501), true},
		{"null byte", "model\x00.json", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
