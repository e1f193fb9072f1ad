package leads

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func validSubmission() Submission {
	return Submission{
		Nombre:  "Maria Garcia",
		Email:   "Maria@Example.com",
		Mensaje: "I am interested in this car, please call me",
	}
}

func TestValidate_ValidSubmission(t *testing.T) {
	sub := validSubmission()
	if errs := Validate(&sub); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	sub := Submission{
		Nombre:  "A",
		Email:   "bad",
		Mensaje: "short",
	}
	errs := Validate(&sub)
	if len(errs) != 3 {
		t.Fatalf("expected exactly 3 errors, got %d: %v", len(errs), errs)
	}
}

func TestValidate_IsPure(t *testing.T) {
	sub := Submission{
		Nombre:   "A",
		Email:    "bad",
		Telefono: "123",
		Mensaje:  "short",
	}
	first := Validate(&sub)
	second := Validate(&sub)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated validation differs: %v vs %v", first, second)
	}
}

func TestValidate_Nombre(t *testing.T) {
	cases := []struct {
		name  string
		valid bool
	}{
		{"", false},
		{" A ", false},
		{"Al", true},
		{strings.Repeat("x", 100), true},
		{strings.Repeat("x", 101), false},
	}
	for _, tc := range cases {
		sub := validSubmission()
		sub.Nombre = formText(tc.name)
		errs := Validate(&sub)
		if tc.valid && len(errs) != 0 {
			t.Errorf("nombre %q: expected valid, got %v", tc.name, errs)
		}
		if !tc.valid && len(errs) == 0 {
			t.Errorf("nombre %q: expected error", tc.name)
		}
	}
}

func TestValidate_Email(t *testing.T) {
	cases := []struct {
		email string
		valid bool
	}{
		{"maria@example.com", true},
		{"maria@example", false},
		{"", false},
		{"maria @example.com", false},
		{"maria@exam ple.com", false},
		{"a@b.c", true},
		{strings.Repeat("x", 250) + "@b.co", false}, // over 254 chars
	}
	for _, tc := range cases {
		sub := validSubmission()
		sub.Email = formText(tc.email)
		errs := Validate(&sub)
		if tc.valid && len(errs) != 0 {
			t.Errorf("email %q: expected valid, got %v", tc.email, errs)
		}
		if !tc.valid && len(errs) == 0 {
			t.Errorf("email %q: expected error", tc.email)
		}
	}
}

func TestValidate_Telefono(t *testing.T) {
	cases := []struct {
		phone string
		valid bool
	}{
		{"", true},            // absent is fine
		{"   ", true},         // no digits at all is fine
		{"+34 600-123 456", true}, // 11 digits
		{"12345", false},      // too few
		{"600123456", true},   // exactly 9
		{"123456789012345", true},  // exactly 15
		{"1234567890123456", false}, // 16 digits
	}
	for _, tc := range cases {
		sub := validSubmission()
		sub.Telefono = formText(tc.phone)
		errs := Validate(&sub)
		if tc.valid && len(errs) != 0 {
			t.Errorf("telefono %q: expected valid, got %v", tc.phone, errs)
		}
		if !tc.valid && len(errs) == 0 {
			t.Errorf("telefono %q: expected error", tc.phone)
		}
	}
}

func TestValidate_Mensaje(t *testing.T) {
	sub := validSubmission()
	sub.Mensaje = "too short"
	if errs := Validate(&sub); len(errs) != 1 {
		t.Errorf("expected 1 error for 9-char message, got %v", errs)
	}

	sub.Mensaje = formText(strings.Repeat("x", 2001))
	if errs := Validate(&sub); len(errs) != 1 {
		t.Errorf("expected 1 error for oversized message, got %v", errs)
	}

	sub.Mensaje = formText(strings.Repeat("x", 2000))
	if errs := Validate(&sub); len(errs) != 0 {
		t.Errorf("expected 2000-char message valid, got %v", errs)
	}
}

func TestSubmission_WrongTypedFieldsReadAsMissing(t *testing.T) {
	raw := `{"nombre": 42, "email": ["x"], "mensaje": {"a": 1}}`
	var sub Submission
	if err := json.Unmarshal([]byte(raw), &sub); err != nil {
		t.Fatalf("tolerant decode failed: %v", err)
	}
	errs := Validate(&sub)
	if len(errs) != 3 {
		t.Fatalf("expected the 3 generic required errors, got %v", errs)
	}
}

func TestSubmission_OpaqueCarID(t *testing.T) {
	var sub Submission
	if err := json.Unmarshal([]byte(`{"car_id": "abc-123"}`), &sub); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if sub.CarID != "abc-123" {
		t.Errorf("string car_id = %q", sub.CarID)
	}

	sub = Submission{}
	if err := json.Unmarshal([]byte(`{"car_id": 9001}`), &sub); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if sub.CarID != "9001" {
		t.Errorf("numeric car_id = %q, want literal text", sub.CarID)
	}

	sub = Submission{}
	if err := json.Unmarshal([]byte(`{"car_id": null}`), &sub); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if sub.CarID != "" {
		t.Errorf("null car_id = %q, want empty", sub.CarID)
	}
}
