package auth

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Str0ng!Pass")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if hash == "Str0ng!Pass" {
		t.Error("hash must not equal plaintext")
	}
	if !CheckPassword(hash, "Str0ng!Pass") {
		t.Error("expected matching password to verify")
	}
	if CheckPassword(hash, "wrong-password") {
		t.Error("expected non-matching password to fail")
	}
}

func TestValidatePassword(t *testing.T) {
	cases := []struct {
		password string
		want     bool
	}{
		{"Str0ng!Pass", true},
		{"An0ther$1x", true},
		{"short1!A", true},
		{"sh0r!A", false},          // under 8 characters
		{"alllowercase1!", false},  // no upper
		{"ALLUPPERCASE1!", false},  // no lower
		{"NoDigitsHere!", false},   // no digit
		{"NoSpecials123", false},   // no special
		{"", false},
	}
	for _, c := range cases {
		if got := ValidatePassword(c.password); got != c.want {
			t.Errorf("ValidatePassword(%q) = %v, want %v", c.password, got, c.want)
		}
	}
}

func TestValidateEmail(t *testing.T) {
	valid := []string{"owner@duka.co.ke", "clerk.one+tag@example.com", "a@b.io"}
	for _, e := range valid {
		if !ValidateEmail(e) {
			t.Errorf("expected %q to be valid", e)
		}
	}
	invalid := []string{"", "no-at-sign", "missing@tld", "@example.com", "spaces in@example.com"}
	for _, e := range invalid {
		if ValidateEmail(e) {
			t.Errorf("expected %q to be invalid", e)
		}
	}
}
