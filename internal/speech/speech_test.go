package speech

import (
	"errors"
	"strings"
	"testing"
)

func TestCredentialsValidate(t *testing.T) {
	tests := []struct {
		name  string
		creds Credentials
		valid bool
	}{
		{"both set", Credentials{Key: "k", Region: "r"}, true},
		{"empty", Credentials{}, false},
		{"missing key", Credentials{Region: "westeurope"}, false},
		{"missing region", Credentials{Key: "abc"}, false},
		{"whitespace key", Credentials{Key: "   ", Region: "westeurope"}, false},
	}

	for _, tt := range tests {
		err := tt.creds.Validate()
		if tt.valid && err != nil {
			t.Errorf("%s: Validate() = %v, want nil", tt.name, err)
		}
		if !tt.valid && !errors.Is(err, ErrAuthConfig) {
			t.Errorf("%s: Validate() = %v, want ErrAuthConfig", tt.name, err)
		}
	}
}

func TestCanceledError(t *testing.T) {
	err := &CanceledError{Code: 401, Reason: "authentication failure"}
	msg := err.Error()
	if !strings.Contains(msg, "401") || !strings.Contains(msg, "authentication failure") {
		t.Errorf("Error() = %q, want code and reason included", msg)
	}
}
