package in

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	statsdto "studylog/internal/modules/stats/dto"
	statsin "studylog/internal/modules/stats/port/in"
)

type overviewArgs struct {
	Period  string `json:"period,omitempty"`
	Subject string `json:"subject,omitempty"`
	From    string `json:"from,omitempty"`
	To      string `json:"to,omitempty"`
}

type historyArgs struct {
	overviewArgs
	Limit int `json:"limit,omitempty"`
}

type historyItem struct {
	ID            string  `json:"id"`
	Date          string  `json:"date"`
	Subject       string  `json:"subject"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	DurationHours float64 `json:"duration_hours"`
	Notes         string  `json:"notes,omitempty"`
}

// MCPServer exposes the statistics of one user as MCP tools.
type MCPServer struct {
	usecase statsin.Usecase
	ownerID string
	loc     *time.Location
	server  *server.MCPServer
}

func NewMCPServer(usecase statsin.Usecase, ownerID, version string, loc *time.Location) *MCPServer {
	if loc == nil {
		loc = time.Local
	}
	h := &MCPServer{usecase: usecase, ownerID: ownerID, loc: loc, server: server.NewMCPServer("studylog", version)}

	filters := []mcp.ToolOption{
		mcp.WithString("period", mcp.Description("week, month or all (default all)")),
		mcp.WithString("subject", mcp.Description("Only this subject; 'all' or empty for every subject")),
		mcp.WithString("from", mcp.Description("Earliest session date, YYYY-MM-DD")),
		mcp.WithString("to", mcp.Description("Latest session date, YYYY-MM-DD")),
	}

	overview := mcp.NewTool("study_overview", append([]mcp.ToolOption{
		mcp.WithDescription("Aggregated study statistics: totals, weekday and subject breakdowns, hour of day, duration histogram, mean/median/mode"),
	}, filters...)...)
	h.server.AddTool(overview, h.handleOverview)

	history := mcp.NewTool("study_history", append([]mcp.ToolOption{
		mcp.WithDescription("Logged study sessions, newest first"),
		mcp.WithNumber("limit", mcp.Description("Max sessions to return (default 20)")),
	}, filters...)...)
	h.server.AddTool(history, h.handleHistory)

	goal := mcp.NewTool("goal_status",
		mcp.WithDescription("Progress towards the study-hour goal of the current period"),
	)
	h.server.AddTool(goal, h.handleGoalStatus)
	return h
}

func (h *MCPServer) Serve() error {
	return server.ServeStdio(h.server)
}

func (h *MCPServer) handleOverview(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args overviewArgs
	if err := decodeArgs(request, &args); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	query, err := h.query(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, err := h.usecase.Overview(ctx, query)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("overview failed: %v", err)), nil
	}
	return jsonResult(out)
}

func (h *MCPServer) handleHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args historyArgs
	if err := decodeArgs(request, &args); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	query, err := h.query(args.overviewArgs)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, err := h.usecase.History(ctx, query)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("history failed: %v", err)), nil
	}
	limit := args.Limit
	if limit <= 0 {
		limit = 20
	}
	items := []historyItem{}
	for _, row := range out.Sessions {
		if len(items) >= limit {
			break
		}
		items = append(items, historyItem{
			ID:            row.ID,
			Date:          row.Date.Format("2006-01-02"),
			Subject:       row.Subject,
			StartTime:     row.StartTime,
			EndTime:       row.EndTime,
			DurationHours: row.DurationHours,
			Notes:         row.Notes,
		})
	}
	return jsonResult(map[string]any{"total_hours": out.TotalHours, "sessions": items})
}

func (h *MCPServer) handleGoalStatus(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out, err := h.usecase.GoalStatus(ctx, h.ownerID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("goal status failed: %v", err)), nil
	}
	return jsonResult(out)
}

func (h *MCPServer) query(args overviewArgs) (statsdto.Query, error) {
	query := statsdto.Query{OwnerID: h.ownerID, Period: args.Period, Subject: args.Subject}
	var err error
	if query.From, err = parseDay(args.From, h.loc, false); err != nil {
		return statsdto.Query{}, err
	}
	if query.To, err = parseDay(args.To, h.loc, true); err != nil {
		return statsdto.Query{}, err
	}
	return query, nil
}

// parseDay reads YYYY-MM-DD in loc; endOfDay moves to the last instant of the day.
func parseDay(raw string, loc *time.Location, endOfDay bool) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	day, err := time.ParseInLocation("2006-01-02", raw, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", raw)
	}
	if endOfDay {
		day = day.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return day, nil
}

func decodeArgs(request mcp.CallToolRequest, out any) error {
	raw, _ := json.Marshal(request.Params.Arguments)
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("invalid arguments: %v", err)
	}
	return nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal results: %v", err)), nil
	}
	return mcp.NewToolResultText(string(raw)), nil
}
