package rpc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-plugin"
	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

const (
	PluginMapKey      = "verifier"
	serviceName       = "umbral.verifier.v1.Verifier"
	jsonCodecName     = "json"
	methodGetMetadata = "/" + serviceName + "/GetMetadata"
	methodVerify      = "/" + serviceName + "/Verify"
)

var HandshakeConfig = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "UMBRAL_VERIFIER",
	MagicCookieValue: "umbral",
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return jsonCodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type Empty struct{}

type Metadata struct {
	Name    string   `json:"name"`
	Version string   `json:"version"`
	Methods []string `json:"methods"`
}

type VerifyRequest struct {
	ProfileID  string `json:"profile_id"`
	Method     string `json:"method"`
	Credential string `json:"credential"`
}

type VerifyResponse struct {
	Verified bool   `json:"verified"`
	Identity string `json:"identity"`
}

type VerifierServer interface {
	GetMetadata(ctx context.Context, in *Empty) (*Metadata, error)
	Verify(ctx context.Context, in *VerifyRequest) (*VerifyResponse, error)
}

type VerifierClient interface {
	GetMetadata(ctx context.Context) (*Metadata, error)
	Verify(ctx context.Context, in *VerifyRequest) (*VerifyResponse, error)
}

type verifierClient struct {
	conn *grpc.ClientConn
}

func NewVerifierClient(conn *grpc.ClientConn) VerifierClient {
	return &verifierClient{conn: conn}
}

func (c *verifierClient) GetMetadata(ctx context.Context) (*Metadata, error) {
	out := &Metadata{}
	if err := c.conn.Invoke(ctx, methodGetMetadata, &Empty{}, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *verifierClient) Verify(ctx context.Context, in *VerifyRequest) (*VerifyResponse, error) {
	out := &VerifyResponse{}
	if err := c.conn.Invoke(ctx, methodVerify, in, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func RegisterVerifierServer(server grpc.ServiceRegistrar, impl VerifierServer) {
	server.RegisterService(&grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*VerifierServer)(nil),
		Methods: []grpc.MethodDesc{
			{
				MethodName: "GetMetadata",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &Empty{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.GetMetadata(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodGetMetadata}
					handler := func(ctx context.Context, req any) (any, error) {
						empty, ok := req.(*Empty)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.GetMetadata(ctx, empty)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
			{
				MethodName: "Verify",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &VerifyRequest{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.Verify(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodVerify}
					handler := func(ctx context.Context, req any) (any, error) {
						inReq, ok := req.(*VerifyRequest)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.Verify(ctx, inReq)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "umbral/verifier/v1/verifier.proto",
	}, impl)
}

type GRPCPlugin struct {
	plugin.NetRPCUnsupportedPlugin
	Impl VerifierServer
}

func (p *GRPCPlugin) GRPCServer(_ *plugin.GRPCBroker, server *grpc.Server) error {
	RegisterVerifierServer(server, p.Impl)
	return nil
}

func (p *GRPCPlugin) GRPCClient(_ context.Context, _ *plugin.GRPCBroker, conn *grpc.ClientConn) (any, error) {
	return NewVerifierClient(conn), nil
}

func PluginMap(impl VerifierServer) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		PluginMapKey: &GRPCPlugin{Impl: impl},
	}
}
