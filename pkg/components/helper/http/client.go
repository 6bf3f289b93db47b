package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

type ResponseError struct {
	Code    int
	Message string
}

func NewResponseError(code int, message string) *ResponseError {
	return &ResponseError{Code: code, Message: message}
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("%d: %s", e.Code, e.Message)
}

// TokenProvider yields a bearer token for a connector endpoint. Called
// lazily on the first authorized request and again after a redirect to
// a token endpoint.
type TokenProvider func(ctx context.Context, redirectURL string) (string, error)

type Client struct {
	httpClient *http.Client
	tokenFn    TokenProvider
	token      string
}

func NewClient(timeout time.Duration, tokenFn TokenProvider) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		tokenFn: tokenFn,
	}
}

// Do executes the request, attaching the current bearer token when one
// is held. A 307 pointing at a token endpoint triggers one token
// acquisition and one retry; any further redirect is surfaced as a
// response error.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	if res.StatusCode == http.StatusTemporaryRedirect && c.tokenFn != nil {
		loc := res.Header.Get("Location")
		_, _ = io.ReadAll(res.Body)
		res.Body.Close()
		token, err := c.tokenFn(req.Context(), loc)
		if err != nil {
			return nil, err
		}
		c.token = token
		retry := req.Clone(req.Context())
		retry.Header.Set("Authorization", "Bearer "+c.token)
		if req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return nil, err
			}
			retry.Body = body
		}
		return c.httpClient.Do(retry)
	}
	return res, nil
}

// GetJSON performs a GET and decodes the body via decode. Error bodies
// are folded into the returned response error.
func (c *Client) GetJSON(ctx context.Context, u string, decode func(io.Reader) error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	res, err := c.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		b, err := io.ReadAll(res.Body)
		if err != nil || len(b) == 0 {
			return NewResponseError(res.StatusCode, res.Status)
		}
		return NewResponseError(res.StatusCode, string(b))
	}
	return decode(res.Body)
}
