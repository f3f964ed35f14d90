package out_test

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	verifierout "github.com/javikin/umbral-sub003/internal/modules/verifier/adapter/out"
	"github.com/javikin/umbral-sub003/internal/modules/verifier/domain"
)

func TestGRPCTagVerifierIntegration(t *testing.T) {
	binPath := buildTagVerifier(t)
	tagsPath := filepath.Join(t.TempDir(), "tags.yaml")
	digest := hashWithPlugin(t, binPath, "desk-tag-uid")
	registry := "profiles:\n  p-1:\n    - method: nfc\n      sha256: " + digest + "\n      label: desk\n"
	if err := os.WriteFile(tagsPath, []byte(registry), 0o600); err != nil {
		t.Fatalf("write tags file: %v", err)
	}
	t.Setenv("UMBRAL_TAGS_FILE", tagsPath)

	host := verifierout.NewGRPCTagVerifier()
	plugin := domain.Plugin{Binary: binPath}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := host.CheckLifecycle(ctx, plugin); err != nil {
		t.Fatalf("check lifecycle: %v", err)
	}
	meta, err := host.GetMetadata(ctx, plugin)
	if err != nil {
		t.Fatalf("get metadata: %v", err)
	}
	if meta.Name != "tagverifier" || len(meta.Methods) != 2 {
		t.Fatalf("unexpected metadata: %+v", meta)
	}

	got, err := host.Verify(ctx, plugin, "p-1", "nfc", "desk-tag-uid")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !got.Verified || got.Identity != "nfc:desk" {
		t.Fatalf("expected desk tag to verify: %+v", got)
	}
	for _, tc := range []struct{ profile, method, payload string }{
		{"p-1", "nfc", "other-tag"},
		{"p-1", "qr", "desk-tag-uid"},
		{"p-2", "nfc", "desk-tag-uid"},
	} {
		got, err := host.Verify(ctx, plugin, tc.profile, tc.method, tc.payload)
		if err != nil {
			t.Fatalf("verify %+v: %v", tc, err)
		}
		if got.Verified {
			t.Fatalf("expected %+v to be rejected", tc)
		}
	}
}

func buildTagVerifier(t *testing.T) string {
	t.Helper()
	binPath := filepath.Join(t.TempDir(), "tagverifier")
	cmd := exec.Command("go", "build", "-o", binPath, "./plugins/tagverifier")
	cmd.Dir = repositoryRoot(t)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("build tag verifier plugin: %v\n%s", err, string(out))
	}
	return binPath
}

func hashWithPlugin(t *testing.T, binPath, payload string) string {
	t.Helper()
	out, err := exec.Command(binPath, "hash", payload).Output()
	if err != nil {
		t.Fatalf("hash payload: %v", err)
	}
	return string(out[:len(out)-1])
}

func repositoryRoot(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("runtime caller failed")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "../../../../../"))
}
