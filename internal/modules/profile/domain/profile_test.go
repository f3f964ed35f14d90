package domain_test

import (
	"reflect"
	"testing"

	"github.com/javikin/umbral-sub003/internal/modules/profile/domain"
)

func TestNormalizeApps(t *testing.T) {
	t.Parallel()
	got := domain.NormalizeApps([]string{" com.b ", "com.a", "", "com.b", "com.c"})
	want := []string{"com.a", "com.b", "com.c"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestProfileBlocksAndValidate(t *testing.T) {
	t.Parallel()
	p := domain.Profile{ID: "p-1", Name: "Focus", BlockedApps: domain.NormalizeApps([]string{"com.social", "com.video"})}
	if err := p.Validate(); err != nil {
		t.Fatalf("profile should be valid: %v", err)
	}
	if !p.Blocks("com.video") || p.Blocks("com.mail") {
		t.Fatalf("unexpected Blocks result for %v", p.BlockedApps)
	}
	missingName := p
	missingName.Name = " "
	if err := missingName.Validate(); err == nil {
		t.Fatalf("missing name should fail")
	}
	missingID := p
	missingID.ID = ""
	if err := missingID.Validate(); err == nil {
		t.Fatalf("missing id should fail")
	}
}
