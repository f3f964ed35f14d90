// Command tagverifier is the reference NFC/QR credential verifier plugin.
//
// Registered tags are read from the YAML file named by UMBRAL_TAGS_FILE. Only
// SHA-256 digests of tag payloads are stored; `tagverifier hash <payload>`
// prints the digest to register.
package main

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-plugin"
	"gopkg.in/yaml.v3"

	verifierrpc "github.com/javikin/umbral-sub003/internal/modules/verifier/adapter/out/rpc"
)

const tagsFileEnv = "UMBRAL_TAGS_FILE"

type registeredTag struct {
	Method string `yaml:"method"`
	SHA256 string `yaml:"sha256"`
	Label  string `yaml:"label"`
}

type registry struct {
	Profiles map[string][]registeredTag `yaml:"profiles"`
}

func loadRegistry(path string) (registry, error) {
	reg := registry{Profiles: map[string][]registeredTag{}}
	if path == "" {
		return reg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return reg, nil
		}
		return registry{}, fmt.Errorf("read tags file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &reg); err != nil {
		return registry{}, fmt.Errorf("decode tags file: %w", err)
	}
	return reg, nil
}

func digest(payload string) string {
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}

type server struct {
	tagsPath string
}

func (s *server) GetMetadata(_ context.Context, _ *verifierrpc.Empty) (*verifierrpc.Metadata, error) {
	return &verifierrpc.Metadata{
		Name:    "tagverifier",
		Version: "1.0.0",
		Methods: []string{"nfc", "qr"},
	}, nil
}

// Verify reloads the registry on every call so newly registered tags apply immediately.
func (s *server) Verify(_ context.Context, in *verifierrpc.VerifyRequest) (*verifierrpc.VerifyResponse, error) {
	reg, err := loadRegistry(s.tagsPath)
	if err != nil {
		return nil, err
	}
	got := []byte(digest(in.Credential))
	for _, tag := range reg.Profiles[in.ProfileID] {
		if !strings.EqualFold(tag.Method, in.Method) {
			continue
		}
		if subtle.ConstantTimeCompare(got, []byte(strings.ToLower(tag.SHA256))) == 1 {
			identity := tag.Label
			if identity == "" {
				identity = tag.SHA256[:12]
			}
			return &verifierrpc.VerifyResponse{Verified: true, Identity: in.Method + ":" + identity}, nil
		}
	}
	return &verifierrpc.VerifyResponse{Verified: false}, nil
}

func main() {
	if len(os.Args) == 3 && os.Args[1] == "hash" {
		fmt.Println(digest(os.Args[2]))
		return
	}
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: verifierrpc.HandshakeConfig,
		Plugins:         verifierrpc.PluginMap(&server{tagsPath: os.Getenv(tagsFileEnv)}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
