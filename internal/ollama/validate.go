package ollama

import (
	"context"
	"fmt"
	"strings"
)

// CheckConnection verifies the Ollama server is reachable, returning a
// descriptive error when it isn't.
func CheckConnection(ctx context.Context, c *Client) error {
	if !c.IsRunning(ctx) {
		return fmt.Errorf("cannot connect to Ollama at %s. Ensure Ollama is running", c.BaseURL())
	}
	return nil
}

// CheckModel verifies the named model is available locally. When it isn't,
// the error lists what is available so the user can pick or pull a model.
func CheckModel(ctx context.Context, c *Client, model string) error {
	if c.HasModel(ctx, model) {
		return nil
	}

	models, err := c.ListModels(ctx)
	if err != nil {
		return fmt.Errorf("cannot connect to Ollama at %s: %w", c.BaseURL(), err)
	}
	return fmt.Errorf("Ollama model '%s' not found. Available models: %s", model, formatModelList(models))
}

// formatModelList renders up to 10 model names, with a total count when truncated.
func formatModelList(models []string) string {
	if len(models) == 0 {
		return "(none)"
	}
	shown := models
	if len(shown) > 10 {
		shown = shown[:10]
	}
	list := strings.Join(shown, ", ")
	if len(models) > 10 {
		list += fmt.Sprintf(", ... (%d total)", len(models))
	}
	return list
}
