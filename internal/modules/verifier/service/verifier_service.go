package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/javikin/umbral-sub003/internal/modules/verifier/domain"
	"github.com/javikin/umbral-sub003/internal/modules/verifier/dto"
	verifierout "github.com/javikin/umbral-sub003/internal/modules/verifier/port/out"
	apperrors "github.com/javikin/umbral-sub003/internal/platform/errors"
	"github.com/javikin/umbral-sub003/internal/platform/logger"
)

type VerifierService struct {
	codes  verifierout.CodeStore
	hasher verifierout.CodeHasher
	tags   verifierout.TagVerifier
	plugin domain.Plugin
	log    *logger.Logger
}

// NewVerifierService wires code verification and, when plugin is enabled, tag verification.
func NewVerifierService(codes verifierout.CodeStore, hasher verifierout.CodeHasher, tags verifierout.TagVerifier, plugin domain.Plugin, log *logger.Logger) *VerifierService {
	return &VerifierService{codes: codes, hasher: hasher, tags: tags, plugin: plugin, log: log}
}

// Verify reports whether credential unlocks profileID through method. Unknown
// methods and missing registrations verify as false rather than failing.
func (s *VerifierService) Verify(ctx context.Context, profileID, method, credential string) (domain.Verification, error) {
	if strings.TrimSpace(profileID) == "" {
		return domain.Verification{}, fmt.Errorf("%w: profile id is required", apperrors.ErrInvalidInput)
	}
	switch domain.BackendFor(method) {
	case domain.BackendCode:
		hash, ok, err := s.codes.FindHash(ctx, profileID)
		if err != nil {
			return domain.Verification{}, err
		}
		if !ok || !s.hasher.Matches(hash, credential) {
			return domain.Verification{}, nil
		}
		return domain.Verification{Verified: true, Identity: "code:" + profileID}, nil
	case domain.BackendTag:
		if !s.plugin.Enabled() || s.tags == nil {
			return domain.Verification{}, domain.ErrNoTagVerifier
		}
		if err := s.runnable(); err != nil {
			return domain.Verification{}, err
		}
		return s.tags.Verify(ctx, s.plugin, profileID, method, credential)
	default:
		return domain.Verification{}, nil
	}
}

func (s *VerifierService) SetCode(ctx context.Context, profileID, code string) error {
	if strings.TrimSpace(profileID) == "" {
		return fmt.Errorf("%w: profile id is required", apperrors.ErrInvalidInput)
	}
	if err := domain.ValidateCode(code); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	hash, err := s.hasher.Hash(code)
	if err != nil {
		return fmt.Errorf("hash unlock code: %w", err)
	}
	if err := s.codes.SaveHash(ctx, profileID, hash); err != nil {
		return err
	}
	s.log.Info("unlock code registered", "profile_id", profileID)
	return nil
}

func (s *VerifierService) ClearCode(ctx context.Context, profileID string) error {
	return s.codes.DeleteHash(ctx, profileID)
}

func (s *VerifierService) Doctor(ctx context.Context) dto.DoctorResult {
	result := dto.DoctorResult{CodesEnabled: s.codes != nil && s.hasher != nil, PluginEnabled: s.plugin.Enabled()}
	if !result.PluginEnabled {
		return result
	}
	if err := s.plugin.Validate(); err != nil {
		result.Error = err.Error()
		return result
	}
	result.BinaryReachable = fileExists(s.plugin.Binary)
	if !result.BinaryReachable {
		result.Error = fmt.Sprintf("binary does not exist: %s", s.plugin.Binary)
		return result
	}
	result.ChecksumValid = checksumMatches(s.plugin.Binary, s.plugin.SHA256) == nil
	if !result.ChecksumValid {
		result.Error = "checksum mismatch"
		return result
	}
	if s.tags == nil {
		return result
	}
	meta, err := s.tags.GetMetadata(ctx, s.plugin)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	result.LifecycleOK = true
	result.Name = meta.Name
	result.Version = meta.Version
	result.Methods = meta.Methods
	return result
}

func (s *VerifierService) runnable() error {
	if err := s.plugin.Validate(); err != nil {
		return err
	}
	if err := checksumMatches(s.plugin.Binary, s.plugin.SHA256); err != nil {
		if errors.Is(err, domain.ErrChecksumMismatch) {
			s.log.Error("verifier plugin checksum mismatch", "binary", s.plugin.Binary)
		}
		return err
	}
	return nil
}

// checksumMatches accepts any binary when expected is empty.
func checksumMatches(path, expected string) error {
	if expected == "" {
		return nil
	}
	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read verifier plugin binary: %w", err)
	}
	hash := sha256.Sum256(payload)
	if hex.EncodeToString(hash[:]) != expected {
		return fmt.Errorf("%w: %s", domain.ErrChecksumMismatch, filepath.Base(path))
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
