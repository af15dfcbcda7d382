package supabase

import (
	"context"
	"net/http"
	"net/url"
)

// FunctionsClient invokes the backend's serverless functions.
type FunctionsClient struct {
	c *Client
}

// NewFunctionsClient creates a FunctionsClient over c.
func NewFunctionsClient(c *Client) *FunctionsClient {
	return &FunctionsClient{c: c}
}

// Invoke calls function name on behalf of the holder of accessToken and
// decodes its JSON result into out.
func (f *FunctionsClient) Invoke(ctx context.Context, accessToken, name string, body, out interface{}) error {
	return f.c.do(ctx, http.MethodPost, "/functions/v1/"+url.PathEscape(name), accessToken, body, out)
}
