package errors

import (
	"math"
	"testing"
)

func TestValidateSize(t *testing.T) {
	tests := []struct {
		name    string
		w, h    float64
		wantErr bool
	}{
		{"defaults", 0, 0, false},
		{"typical", 1400, 720, false},
		{"max", MaxCanvas, MaxCanvas, false},
		{"negative", -1, 720, true},
		{"too large", 1400, MaxCanvas + 1, true},
		{"nan", math.NaN(), 720, true},
		{"inf", 1400, math.Inf(1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSize(tt.w, tt.h)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateSize() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidSize) {
				t.Errorf("code = %v, want INVALID_SIZE", GetCode(err))
			}
		})
	}
}

func TestValidateScale(t *testing.T) {
	for _, ok := range []float64{0, 1, 2, 8} {
		if err := ValidateScale(ok); err != nil {
			t.Errorf("ValidateScale(%v) = %v", ok, err)
		}
	}
	for _, bad := range []float64{-1, 9, math.NaN()} {
		if err := ValidateScale(bad); err == nil {
			t.Errorf("ValidateScale(%v) should fail", bad)
		}
	}
}

func TestValidateInputSize(t *testing.T) {
	if err := ValidateInputSize(10, 10); err != nil {
		t.Errorf("at limit: %v", err)
	}
	if err := ValidateInputSize(10, 0); err != nil {
		t.Errorf("no limit: %v", err)
	}
	if err := ValidateInputSize(11, 10); !Is(err, ErrCodeInputTooLarge) {
		t.Errorf("over limit: %v", err)
	}
}

func TestValidateChoice(t *testing.T) {
	allowed := []string{"svg", "png"}
	if err := ValidateChoice(ErrCodeInvalidFormat, "format", "svg", allowed); err != nil {
		t.Errorf("valid choice: %v", err)
	}
	err := ValidateChoice(ErrCodeInvalidFormat, "format", "pdf", allowed)
	if !Is(err, ErrCodeInvalidFormat) {
		t.Fatalf("code = %v", GetCode(err))
	}
	if want := `invalid format: "pdf" (must be one of: svg, png)`; UserMessage(err) != want {
		t.Errorf("message = %q, want %q", UserMessage(err), want)
	}
}
