package messaging

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/storefront/backend/internal/application/notification"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/infrastructure/config"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// maxResponseSize bounds the gateway response body kept for relaying (64KB)
const maxResponseSize = 64 * 1024

const messagesPath = "/api/messages"

// GatewayClient calls the messaging gateway over HTTP:
//
//	GET {gateway}/api/messages?phone=&from=&text=
//	authorization: {api key}
type GatewayClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewGatewayClient creates a gateway client from the messaging configuration
func NewGatewayClient(cfg config.MessagingConfig) (*GatewayClient, error) {
	u, err := url.Parse(cfg.GatewayURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("messaging: invalid gateway url %q", cfg.GatewayURL)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &GatewayClient{
		baseURL: strings.TrimRight(cfg.GatewayURL, "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}, nil
}

// Send delivers one message. Any HTTP response, whatever its status, is
// returned as a GatewayResponse; only transport failures are errors.
func (c *GatewayClient) Send(ctx context.Context, creds identity.MessagingCredentials, phone, text string) (*notification.GatewayResponse, error) {
	query := url.Values{}
	query.Set("phone", phone)
	query.Set("from", creds.Sender)
	query.Set("text", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+messagesPath+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("messaging: build request: %w", err)
	}
	req.Header.Set("authorization", creds.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("messaging: send: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("messaging: read response: %w", err)
	}
	return &notification.GatewayResponse{
		Status: resp.StatusCode,
		Body:   string(body),
	}, nil
}

// Ensure GatewayClient implements notification.Gateway
var _ notification.Gateway = (*GatewayClient)(nil)
