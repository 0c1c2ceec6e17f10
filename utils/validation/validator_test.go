package validation

import "testing"

func TestValidateEmail(t *testing.T) {
	valid := []string{
		"user@example.com",
		"first.last+tag@sub.domain.org",
	}
	for _, email := range valid {
		if !ValidateEmail(email) {
			t.Errorf("expected %q to be valid", email)
		}
	}

	invalid := []string{
		"",
		"plainaddress",
		"@missing-local.com",
		"user@",
		"user@nodot",
	}
	for _, email := range invalid {
		if ValidateEmail(email) {
			t.Errorf("expected %q to be invalid", email)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	if ok, _ := ValidatePassword("secret12"); !ok {
		t.Error("expected 8-char password with letters to pass")
	}

	if ok, problems := ValidatePassword("short"); ok || len(problems) == 0 {
		t.Error("expected short password to fail with a reason")
	}

	if ok, problems := ValidatePassword("12345678"); ok || len(problems) == 0 {
		t.Error("expected digit-only password to fail with a reason")
	}
}
