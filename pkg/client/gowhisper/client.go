package gowhisper

import (
	"context"

	// Packages
	"github.com/mutablelogic/go-client"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Client struct {
	*client.Client
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a new client for a self-hosted whisper server
func New(endpoint string, opts ...client.ClientOpt) (*Client, error) {
	opts = append([]client.ClientOpt{
		client.OptEndpoint(endpoint),
	}, opts...)
	if client, err := client.New(opts...); err != nil {
		return nil, err
	} else {
		return &Client{Client: client}, nil
	}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (c *Client) Ping(ctx context.Context) error {
	return c.DoWithContext(ctx, client.MethodGet, nil, client.OptPath("health"))
}
