package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	verifierout "github.com/javikin/umbral-sub003/internal/modules/verifier/adapter/out"
	"github.com/javikin/umbral-sub003/internal/modules/verifier/domain"
	"github.com/javikin/umbral-sub003/internal/modules/verifier/service"
	apperrors "github.com/javikin/umbral-sub003/internal/platform/errors"
	"github.com/javikin/umbral-sub003/internal/platform/logger"
)

type memCodes struct{ hashes map[string]string }

func (m *memCodes) SaveHash(_ context.Context, profileID, hash string) error {
	m.hashes[profileID] = hash
	return nil
}

func (m *memCodes) FindHash(_ context.Context, profileID string) (string, bool, error) {
	hash, ok := m.hashes[profileID]
	return hash, ok, nil
}

func (m *memCodes) DeleteHash(_ context.Context, profileID string) error {
	delete(m.hashes, profileID)
	return nil
}

type fakeTags struct {
	calls    int
	verified bool
}

func (f *fakeTags) CheckLifecycle(context.Context, domain.Plugin) error { return nil }

func (f *fakeTags) GetMetadata(context.Context, domain.Plugin) (domain.Metadata, error) {
	return domain.Metadata{Name: "fake", Version: "0.1.0", Methods: []string{"nfc"}}, nil
}

func (f *fakeTags) Verify(_ context.Context, _ domain.Plugin, _, method, _ string) (domain.Verification, error) {
	f.calls++
	return domain.Verification{Verified: f.verified, Identity: method + ":desk"}, nil
}

func newCodeService(plugin domain.Plugin, tags *fakeTags) (*service.VerifierService, *memCodes) {
	codes := &memCodes{hashes: map[string]string{}}
	return service.NewVerifierService(codes, verifierout.NewBcryptHasher(bcrypt.MinCost), tags, plugin, logger.NewNop()), codes
}

func TestCodeVerification(t *testing.T) {
	t.Parallel()
	svc, codes := newCodeService(domain.Plugin{}, &fakeTags{})
	ctx := context.Background()

	if err := svc.SetCode(ctx, "p-1", "4821"); err != nil {
		t.Fatalf("set code: %v", err)
	}
	if strings.Contains(codes.hashes["p-1"], "4821") {
		t.Fatalf("code must be stored hashed")
	}
	got, err := svc.Verify(ctx, "p-1", "code", "4821")
	if err != nil || !got.Verified || got.Identity != "code:p-1" {
		t.Fatalf("expected verified code: %+v %v", got, err)
	}
	if got, _ := svc.Verify(ctx, "p-1", "code", "0000"); got.Verified {
		t.Fatalf("wrong code must not verify")
	}
	if got, _ := svc.Verify(ctx, "p-2", "code", "4821"); got.Verified {
		t.Fatalf("code of another profile must not verify")
	}
	if got, _ := svc.Verify(ctx, "p-1", "manual", "4821"); got.Verified {
		t.Fatalf("manual method must not verify")
	}
	if err := svc.ClearCode(ctx, "p-1"); err != nil {
		t.Fatalf("clear code: %v", err)
	}
	if got, _ := svc.Verify(ctx, "p-1", "code", "4821"); got.Verified {
		t.Fatalf("cleared code must not verify")
	}
	if err := svc.SetCode(ctx, "p-1", "12"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected short code to be rejected, got %v", err)
	}
}

func TestTagVerificationRequiresPlugin(t *testing.T) {
	t.Parallel()
	tags := &fakeTags{verified: true}
	svc, _ := newCodeService(domain.Plugin{}, tags)
	if _, err := svc.Verify(context.Background(), "p-1", "nfc", "payload"); !errors.Is(err, domain.ErrNoTagVerifier) {
		t.Fatalf("expected ErrNoTagVerifier, got %v", err)
	}
	if tags.calls != 0 {
		t.Fatalf("plugin must not be called")
	}
}

func TestTagVerificationChecksChecksum(t *testing.T) {
	t.Parallel()
	bin := filepath.Join(t.TempDir(), "tagverifier")
	if err := os.WriteFile(bin, []byte("not-a-real-plugin"), 0o755); err != nil {
		t.Fatalf("write binary: %v", err)
	}
	tags := &fakeTags{verified: true}
	svc, _ := newCodeService(domain.Plugin{Binary: bin, SHA256: strings.Repeat("0", 64)}, tags)
	if _, err := svc.Verify(context.Background(), "p-1", "nfc", "payload"); !errors.Is(err, domain.ErrChecksumMismatch) {
		t.Fatalf("expected checksum mismatch, got %v", err)
	}
	result := svc.Doctor(context.Background())
	if !result.BinaryReachable || result.ChecksumValid {
		t.Fatalf("unexpected doctor result: %+v", result)
	}

	svc, _ = newCodeService(domain.Plugin{Binary: bin}, tags)
	got, err := svc.Verify(context.Background(), "p-1", "qr", "payload")
	if err != nil || !got.Verified || got.Identity != "qr:desk" || tags.calls != 1 {
		t.Fatalf("expected plugin verification: %+v %v", got, err)
	}
	result = svc.Doctor(context.Background())
	if !result.LifecycleOK || result.Name != "fake" {
		t.Fatalf("unexpected doctor result: %+v", result)
	}
}
