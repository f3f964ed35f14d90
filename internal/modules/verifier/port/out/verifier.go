package out

import (
	"context"

	"github.com/javikin/umbral-sub003/internal/modules/verifier/domain"
)

type CodeStore interface {
	SaveHash(ctx context.Context, profileID, hash string) error
	// FindHash reports false when the profile has no registered code.
	FindHash(ctx context.Context, profileID string) (string, bool, error)
	DeleteHash(ctx context.Context, profileID string) error
}

type CodeHasher interface {
	Hash(code string) (string, error)
	Matches(hash, code string) bool
}

// TagVerifier authenticates NFC/QR payloads out of process.
type TagVerifier interface {
	CheckLifecycle(ctx context.Context, plugin domain.Plugin) error
	GetMetadata(ctx context.Context, plugin domain.Plugin) (domain.Metadata, error)
	Verify(ctx context.Context, plugin domain.Plugin, profileID, method, credential string) (domain.Verification, error)
}
