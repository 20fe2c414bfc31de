package in

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"studylog/internal/modules/plugin/dto"
	pluginin "studylog/internal/modules/plugin/port/in"
	apperrors "studylog/internal/platform/errors"
)

const defaultRunPeriod = "month"

type CLIHandler struct {
	usecase pluginin.Usecase
}

func NewCLIHandler(usecase pluginin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]dto.PluginInfo, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	return h.usecase.Doctor(ctx)
}

func (h CLIHandler) ListCommands(ctx context.Context, pluginName string) ([]dto.CommandInfo, error) {
	return h.usecase.ListCommands(ctx, strings.TrimSpace(pluginName))
}

// Run rejects malformed --input JSON before a plugin process is started and
// indents the JSON a plugin returns.
func (h CLIHandler) Run(ctx context.Context, input dto.RunInput) (dto.RunOutput, error) {
	input.PluginName = strings.TrimSpace(input.PluginName)
	input.CommandID = strings.TrimSpace(input.CommandID)
	if input.Period == "" {
		input.Period = defaultRunPeriod
	}
	if input.InputJSON != "" && !json.Valid([]byte(input.InputJSON)) {
		return dto.RunOutput{}, fmt.Errorf("%w: plugin input is not valid JSON", apperrors.ErrInvalidInput)
	}
	out, err := h.usecase.Run(ctx, input)
	if err != nil {
		return dto.RunOutput{}, err
	}
	var pretty bytes.Buffer
	if out.OutputJSON != "" && json.Indent(&pretty, []byte(out.OutputJSON), "", "  ") == nil {
		out.OutputJSON = pretty.String()
	}
	return out, nil
}
