package openai

import (
	"context"
	"fmt"

	// Packages
	"github.com/mutablelogic/go-client"
	"github.com/mutablelogic/go-server/pkg/httpresponse"
	"github.com/mutablelogic/go-server/pkg/types"
)

/////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Chat sends the messages to the chat completions endpoint
func (c *Client) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	var response ChatResponse

	if req.Model == "" {
		req.Model = DefaultModel
	}
	if len(req.Messages) == 0 {
		return nil, fmt.Errorf("at least one message is required")
	}

	if payload, err := client.NewJSONRequest(req); err != nil {
		return nil, err
	} else if err := c.DoWithContext(ctx, payload, &response, client.OptPath(ChatPath), client.OptNoTimeout()); err != nil {
		return nil, err
	}

	// Return success
	return &response, nil
}

// Complete sends a system and user prompt, and returns the content of the
// first choice
func (c *Client) Complete(ctx context.Context, model string, temperature float64, system, user string) (string, error) {
	req := ChatRequest{
		Model:       model,
		Temperature: types.Float64Ptr(temperature),
	}
	if system != "" {
		req.Messages = append(req.Messages, Message{Role: RoleSystem, Content: system})
	}
	req.Messages = append(req.Messages, Message{Role: RoleUser, Content: user})

	response, err := c.Chat(ctx, req)
	if err != nil {
		return "", err
	} else if len(response.Choices) == 0 {
		return "", httpresponse.ErrGatewayError.Withf("model %q returned no choices", req.Model)
	}

	// Return success
	return response.Choices[0].Message.Content, nil
}
