package uuid

import (
	"testing"

	"github.com/motorlog/motorlog/internal/models"
)

func TestIsValid(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{models.NewUUID().String(), true},
		{"550e8400-e29b-41d4-a716-446655440000", true},
		{"", false},
		{"not-a-uuid", false},
		{"550e8400e29b41d4a716446655440000", true}, // dashless form parses
		{"550e8400-e29b-11d4-a716-446655440000", false}, // v1, not v4
	}
	for _, c := range cases {
		if got := IsValid(c.in); got != c.want {
			t.Errorf("IsValid(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(models.NewUUID().String()); err != nil {
		t.Errorf("Validate() error = %v for a generated id", err)
	}
	if err := Validate("garbage"); err == nil {
		t.Error("Validate() accepted garbage")
	}
}
