package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidUUID(t *testing.T) {
	valid := []string{
		"0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", // valid UUIDv7
		"0188D0F2-7B8C-7B4A-8A2B-6B8B8B8B8B8B", // valid UUIDv7 (uppercase)
	}
	invalid := []string{
		"123e4567-e89b-12d3-a456-426614174000", // not v7
		"0188d0f27b8c7b4a8a2b6b8b8b8b8b8b",     // missing dashes
		"g188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", // invalid hex
		"",                                     // empty
	}
	for _, uuid := range valid {
		if !IsValidUUID(uuid) {
			t.Errorf("IsValidUUID(%q) = false, want true", uuid)
		}
	}
	for _, uuid := range invalid {
		if IsValidUUID(uuid) {
			t.Errorf("IsValidUUID(%q) = true, want false", uuid)
		}
	}
}

func TestIsNumeric(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"123", true},
		{"0", true},
		{"", false},
		{"12a", false},
		{"-1", false},
		{"1.5", false},
	}
	for _, c := range cases {
		got := IsNumeric(c.input)
		if got != c.want {
			t.Errorf("IsNumeric(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	date, ok := IsValidDate("2026-08-03")
	if !ok {
		t.Fatal("IsValidDate(\"2026-08-03\") = false, want true")
	}
	if date.Year() != 2026 || date.Month() != 8 || date.Day() != 3 {
		t.Errorf("IsValidDate(\"2026-08-03\") parsed to %v", date)
	}

	invalid := []string{"2026-13-01", "2026-02-30", "03-08-2026", "2026/08/03", "2026-8-3", ""}
	for _, s := range invalid {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidPeriod(t *testing.T) {
	period, ok := IsValidPeriod("2026-08")
	if !ok {
		t.Fatal("IsValidPeriod(\"2026-08\") = false, want true")
	}
	if period.Year() != 2026 || period.Month() != 8 {
		t.Errorf("IsValidPeriod(\"2026-08\") parsed to %v", period)
	}

	invalid := []string{"2026-13", "08-2026", "2026-08-03", "2026-8", ""}
	for _, s := range invalid {
		if _, ok := IsValidPeriod(s); ok {
			t.Errorf("IsValidPeriod(%q) = true, want false", s)
		}
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"WORK", "REST", "END"}
	if !IsInSlice("REST", slice) {
		t.Error("IsInSlice(\"REST\") = false, want true")
	}
	if IsInSlice("CANCEL_END", slice) {
		t.Error("IsInSlice(\"CANCEL_END\") = true, want false")
	}
	if IsInSlice("WORK", nil) {
		t.Error("IsInSlice on nil slice = true, want false")
	}
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "date", Message: "must be in YYYY-MM-DD format"},
		{Field: "action", Message: "must be one of WORK, REST, END"},
	}

	want := "date: must be in YYYY-MM-DD format; action: must be one of WORK, REST, END"
	if got := errs.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	m := errs.ToMap()
	if len(m) != 2 || m["date"] == "" || m["action"] == "" {
		t.Errorf("ToMap() = %v", m)
	}
}
