// Command weekly-digest is an example studylog report plugin. Its digest
// command turns the statistics studylog sends into a markdown summary.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hashicorp/go-plugin"

	pluginrpc "studylog/internal/modules/plugin/adapter/out/rpc"
	"studylog/internal/modules/plugin/domain"
)

type server struct{}

func (server) GetMetadata(context.Context, *pluginrpc.Empty) (*pluginrpc.Metadata, error) {
	return &pluginrpc.Metadata{
		Name:         "weekly-digest",
		Version:      "1.0.0",
		Capabilities: []string{"report", "command"},
	}, nil
}

func (server) ListCommands(context.Context, *pluginrpc.Empty) (*pluginrpc.ListCommandsResponse, error) {
	return &pluginrpc.ListCommandsResponse{Commands: []pluginrpc.CommandDescriptor{
		{ID: "digest", Title: "Digest", Description: "Markdown digest of the selected period", Kind: "report", TimeoutMS: 2500},
		{ID: "echo", Title: "Echo", Description: "Echoes the input JSON", Kind: "command", TimeoutMS: 1000},
	}}, nil
}

func (server) Run(_ context.Context, in *pluginrpc.RunRequest) (*pluginrpc.RunResponse, error) {
	switch in.CommandID {
	case "digest":
		var stats domain.StatsInput
		if err := json.Unmarshal([]byte(in.InputJSON), &stats); err != nil {
			return &pluginrpc.RunResponse{Stderr: err.Error(), ExitCode: 2}, nil
		}
		raw, _ := json.Marshal(map[string]any{"sessions": stats.Sessions, "total_hours": stats.TotalHours})
		return &pluginrpc.RunResponse{Stdout: digest(stats), OutputJSON: string(raw)}, nil
	case "echo":
		return &pluginrpc.RunResponse{Stdout: in.InputJSON, OutputJSON: fmt.Sprintf(`{"echo":%q}`, in.InputJSON)}, nil
	default:
		return nil, fmt.Errorf("unknown command: %s", in.CommandID)
	}
}

func digest(s domain.StatsInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Study digest (%s)\n\n", s.Period)
	if s.From != "" {
		fmt.Fprintf(&b, "%s to %s\n\n", s.From, s.To)
	}
	fmt.Fprintf(&b, "- Sessions: %d\n", s.Sessions)
	fmt.Fprintf(&b, "- Total: %.2f hours\n", s.TotalHours)
	if s.DailyAverage != nil {
		fmt.Fprintf(&b, "- Daily average: %.2f hours\n", *s.DailyAverage)
	}
	fmt.Fprintf(&b, "- Best day: %s\n", s.MostWeekday)
	fmt.Fprintf(&b, "- Favorite subject: %s\n", s.Favorite)
	if s.Goal != nil {
		fmt.Fprintf(&b, "- Goal: %d%% of %.1f hours\n", s.Goal.Percent, s.Goal.Hours)
	}
	if len(s.Subjects) > 0 {
		b.WriteString("\n## Subjects\n\n")
		for _, subject := range s.Subjects {
			fmt.Fprintf(&b, "- %s: %.2f h\n", subject.Name, subject.Hours)
		}
	}
	return b.String()
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: pluginrpc.HandshakeConfig,
		Plugins:         pluginrpc.PluginMap(server{}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
