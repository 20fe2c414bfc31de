// Package rpc is the wire contract between studylog and report plugins:
// a gRPC service carried by hashicorp/go-plugin with a JSON codec, so
// plugins need no generated protobuf code.
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
	PluginMapKey       = "report"
	serviceName        = "studylog.plugin.v1.ReportPlugin"
	jsonCodecName      = "json"
	methodGetMetadata  = "/" + serviceName + "/GetMetadata"
	methodListCommands = "/" + serviceName + "/ListCommands"
	methodRun          = "/" + serviceName + "/Run"
)

var HandshakeConfig = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "STUDYLOG_PLUGIN",
	MagicCookieValue: "studylog",
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
func (jsonCodec) Name() string                       { return jsonCodecName }

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type Empty struct{}

type Metadata struct {
	Name         string   `json:"name"`
	Version      string   `json:"version"`
	Capabilities []string `json:"capabilities"`
}

type CommandDescriptor struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Kind        string `json:"kind"`
	TimeoutMS   int32  `json:"timeout_ms"`
}

type ListCommandsResponse struct {
	Commands []CommandDescriptor `json:"commands"`
}

type RunContext struct {
	VaultPath string `json:"vault_path"`
	OwnerID   string `json:"owner_id"`
	Period    string `json:"period"`
}

type RunRequest struct {
	CommandID string     `json:"command_id"`
	InputJSON string     `json:"input_json"`
	Context   RunContext `json:"context"`
}

type RunResponse struct {
	Stdout     string `json:"stdout"`
	Stderr     string `json:"stderr"`
	OutputJSON string `json:"output_json"`
	ExitCode   int32  `json:"exit_code"`
}

type ReportPluginServer interface {
	GetMetadata(ctx context.Context, in *Empty) (*Metadata, error)
	ListCommands(ctx context.Context, in *Empty) (*ListCommandsResponse, error)
	Run(ctx context.Context, in *RunRequest) (*RunResponse, error)
}

type ReportPluginClient interface {
	GetMetadata(ctx context.Context) (*Metadata, error)
	ListCommands(ctx context.Context) (*ListCommandsResponse, error)
	Run(ctx context.Context, in *RunRequest) (*RunResponse, error)
}

type reportPluginClient struct {
	conn *grpc.ClientConn
}

func NewReportPluginClient(conn *grpc.ClientConn) ReportPluginClient {
	return &reportPluginClient{conn: conn}
}

func (c *reportPluginClient) invoke(ctx context.Context, method string, in, out any) error {
	return c.conn.Invoke(ctx, method, in, out, grpc.CallContentSubtype(jsonCodecName))
}

func (c *reportPluginClient) GetMetadata(ctx context.Context) (*Metadata, error) {
	out := &Metadata{}
	if err := c.invoke(ctx, methodGetMetadata, &Empty{}, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *reportPluginClient) ListCommands(ctx context.Context) (*ListCommandsResponse, error) {
	out := &ListCommandsResponse{}
	if err := c.invoke(ctx, methodListCommands, &Empty{}, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *reportPluginClient) Run(ctx context.Context, in *RunRequest) (*RunResponse, error) {
	out := &RunResponse{}
	if err := c.invoke(ctx, methodRun, in, out); err != nil {
		return nil, err
	}
	return out, nil
}

// unary adapts a typed server method to a grpc.MethodDesc handler.
func unary[Req any, Resp any](fullMethod string, call func(context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	handle := func(ctx context.Context, in *Req) (any, error) {
		out, err := call(ctx, in)
		if err != nil {
			return nil, err
		}
		return out, nil
	}
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return handle(ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
			typed, ok := req.(*Req)
			if !ok {
				return nil, fmt.Errorf("invalid request type %T", req)
			}
			return handle(ctx, typed)
		})
	}
}

func RegisterReportPluginServer(server grpc.ServiceRegistrar, impl ReportPluginServer) {
	server.RegisterService(&grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*ReportPluginServer)(nil),
		Methods: []grpc.MethodDesc{
			{MethodName: "GetMetadata", Handler: unary(methodGetMetadata, impl.GetMetadata)},
			{MethodName: "ListCommands", Handler: unary(methodListCommands, impl.ListCommands)},
			{MethodName: "Run", Handler: unary(methodRun, impl.Run)},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "studylog/plugin/v1/report.proto",
	}, impl)
}

type GRPCPlugin struct {
	plugin.NetRPCUnsupportedPlugin
	Impl ReportPluginServer
}

func (p *GRPCPlugin) GRPCServer(_ *plugin.GRPCBroker, server *grpc.Server) error {
	RegisterReportPluginServer(server, p.Impl)
	return nil
}

func (p *GRPCPlugin) GRPCClient(_ context.Context, _ *plugin.GRPCBroker, conn *grpc.ClientConn) (any, error) {
	return NewReportPluginClient(conn), nil
}

func PluginMap(impl ReportPluginServer) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		PluginMapKey: &GRPCPlugin{Impl: impl},
	}
}
