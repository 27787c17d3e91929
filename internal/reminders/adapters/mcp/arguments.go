package mcp

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"goremind/internal/reminders/domain/entities"
)

// decodeArguments переносит аргументы инструмента в форму запроса через JSON,
// поэтому отсутствующий аргумент и явный null различаются так же, как в HTTP.
func decodeArguments(req mcp.CallToolRequest, out any) error {
	args := req.GetArguments()
	body := make(map[string]any, len(args))
	for k, v := range args {
		if k == argReminderID {
			continue
		}
		body[k] = v
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return entities.NewValidationError(fmt.Sprintf("invalid arguments: %v", err))
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return entities.NewValidationError(fmt.Sprintf("invalid arguments: %v", err))
	}
	return nil
}

func reminderID(req mcp.CallToolRequest) (string, error) {
	raw, ok := req.GetArguments()[argReminderID]
	if !ok {
		return "", entities.NewValidationError(argReminderID + " is required")
	}
	id, ok := raw.(string)
	if !ok || id == "" {
		return "", entities.NewValidationError(argReminderID + " must be a non-empty string")
	}
	return id, nil
}
