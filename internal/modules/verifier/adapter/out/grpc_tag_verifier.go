package out

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"time"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"

	verifierrpc "github.com/javikin/umbral-sub003/internal/modules/verifier/adapter/out/rpc"
	"github.com/javikin/umbral-sub003/internal/modules/verifier/domain"
	verifierout "github.com/javikin/umbral-sub003/internal/modules/verifier/port/out"
)

const (
	defaultStartTimeout = 3 * time.Second
	defaultCallTimeout  = 5 * time.Second
)

// GRPCTagVerifier starts the plugin binary for each call and kills it afterwards.
type GRPCTagVerifier struct{}

func NewGRPCTagVerifier() verifierout.TagVerifier {
	return &GRPCTagVerifier{}
}

func (h *GRPCTagVerifier) CheckLifecycle(ctx context.Context, p domain.Plugin) error {
	_, err := h.GetMetadata(ctx, p)
	return err
}

func (h *GRPCTagVerifier) GetMetadata(ctx context.Context, p domain.Plugin) (domain.Metadata, error) {
	client, closeFn, err := h.connect(p, defaultStartTimeout)
	if err != nil {
		return domain.Metadata{}, err
	}
	defer closeFn()

	callCtx, cancel := h.callContext(ctx, defaultCallTimeout)
	defer cancel()
	meta, err := client.GetMetadata(callCtx)
	if err != nil {
		return domain.Metadata{}, fmt.Errorf("get metadata: %w", err)
	}
	return domain.Metadata{Name: meta.Name, Version: meta.Version, Methods: meta.Methods}, nil
}

func (h *GRPCTagVerifier) Verify(ctx context.Context, p domain.Plugin, profileID, method, credential string) (domain.Verification, error) {
	client, closeFn, err := h.connect(p, defaultStartTimeout)
	if err != nil {
		return domain.Verification{}, err
	}
	defer closeFn()

	callCtx, cancel := h.callContext(ctx, defaultCallTimeout)
	defer cancel()
	response, err := client.Verify(callCtx, &verifierrpc.VerifyRequest{
		ProfileID:  profileID,
		Method:     method,
		Credential: credential,
	})
	if err != nil {
		if ctx.Err() != nil {
			return domain.Verification{}, ctx.Err()
		}
		if callCtx.Err() == context.DeadlineExceeded {
			return domain.Verification{}, fmt.Errorf("%w: verify %s", domain.ErrPluginTimeout, method)
		}
		return domain.Verification{}, fmt.Errorf("verify credential: %w", err)
	}
	return domain.Verification{Verified: response.Verified, Identity: response.Identity}, nil
}

func (h *GRPCTagVerifier) connect(p domain.Plugin, startTimeout time.Duration) (verifierrpc.VerifierClient, func(), error) {
	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  verifierrpc.HandshakeConfig,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		Plugins:          verifierrpc.PluginMap(nil),
		Cmd:              exec.Command(p.Binary),
		Managed:          true,
		StartTimeout:     startTimeout,
		Logger:           hclog.New(&hclog.LoggerOptions{Output: io.Discard, Level: hclog.NoLevel}),
	})
	closeFn := func() { client.Kill() }

	rpcClient, err := client.Client()
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("start verifier plugin: %w", err)
	}
	raw, err := rpcClient.Dispense(verifierrpc.PluginMapKey)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("dispense verifier plugin: %w", err)
	}
	typed, ok := raw.(verifierrpc.VerifierClient)
	if !ok {
		closeFn()
		return nil, nil, fmt.Errorf("verifier rpc client type mismatch")
	}
	return typed, closeFn, nil
}

func (h *GRPCTagVerifier) callContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := parent.Deadline(); ok {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}
