package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	ErrChecksumMismatch = errors.New("verifier plugin checksum mismatch")
	ErrPluginTimeout    = errors.New("verifier plugin timeout")
	ErrNoTagVerifier    = errors.New("no tag verifier configured")
)

var sha256Pattern = regexp.MustCompile(`^[a-f0-9]{64}$`)

// Backend names which verifier handles an unlock method.
type Backend string

const (
	BackendNone Backend = ""
	BackendCode Backend = "code"
	BackendTag  Backend = "tag"
)

func BackendFor(method string) Backend {
	switch method {
	case "code":
		return BackendCode
	case "nfc", "qr":
		return BackendTag
	default:
		return BackendNone
	}
}

const MinCodeLength = 4

func ValidateCode(code string) error {
	if strings.TrimSpace(code) != code {
		return fmt.Errorf("unlock code must not start or end with spaces")
	}
	if len(code) < MinCodeLength {
		return fmt.Errorf("unlock code must be at least %d characters", MinCodeLength)
	}
	if len(code) > 72 {
		return fmt.Errorf("unlock code must be at most 72 bytes")
	}
	return nil
}

// Plugin is the configured tag/QR verifier binary.
type Plugin struct {
	Binary string
	SHA256 string
}

func (p Plugin) Enabled() bool {
	return p.Binary != ""
}

func (p Plugin) Validate() error {
	if p.Binary == "" {
		return fmt.Errorf("verifier plugin binary path is required")
	}
	if p.SHA256 != "" && !sha256Pattern.MatchString(p.SHA256) {
		return fmt.Errorf("verifier plugin sha256 must be lowercase 64-char hex")
	}
	return nil
}

type Metadata struct {
	Name    string
	Version string
	Methods []string
}

type Verification struct {
	Verified bool
	Identity string
}
