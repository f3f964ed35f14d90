package domain_test

import (
	"strings"
	"testing"

	"github.com/javikin/umbral-sub003/internal/modules/verifier/domain"
)

func TestBackendFor(t *testing.T) {
	t.Parallel()
	cases := map[string]domain.Backend{
		"code":   domain.BackendCode,
		"nfc":    domain.BackendTag,
		"qr":     domain.BackendTag,
		"manual": domain.BackendNone,
		"timer":  domain.BackendNone,
	}
	for method, want := range cases {
		if got := domain.BackendFor(method); got != want {
			t.Fatalf("BackendFor(%q) = %q, want %q", method, got, want)
		}
	}
}

func TestValidateCode(t *testing.T) {
	t.Parallel()
	if err := domain.ValidateCode("1234"); err != nil {
		t.Fatalf("expected valid code: %v", err)
	}
	for _, code := range []string{"", "123", " 1234", strings.Repeat("x", 73)} {
		if err := domain.ValidateCode(code); err == nil {
			t.Fatalf("expected %q to be rejected", code)
		}
	}
}

func TestPluginValidate(t *testing.T) {
	t.Parallel()
	if err := (domain.Plugin{Binary: "/bin/tagverifier"}).Validate(); err != nil {
		t.Fatalf("checksum is optional: %v", err)
	}
	if err := (domain.Plugin{Binary: "/bin/tagverifier", SHA256: "ABC"}).Validate(); err == nil {
		t.Fatalf("expected invalid checksum error")
	}
	if err := (domain.Plugin{}).Validate(); err == nil {
		t.Fatalf("expected missing binary error")
	}
}
