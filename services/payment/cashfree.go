package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"atstay/utils"
)

const (
	cashfreeSandboxURL = "https://sandbox.cashfree.com/pg"
	cashfreeLiveURL    = "https://api.cashfree.com/pg"

	// Pinned gateway API version. Later versions change the session token
	// format; the token is passed through verbatim, so the version stays fixed.
	cashfreeAPIVersion = "2023-08-01"

	sessionIDPrefix = "session_"
)

// CashfreeClient implements Gateway against the Cashfree Payments REST API.
// The HTTP client is injected and carries the request timeout; no global
// client state is shared.
type CashfreeClient struct {
	baseURL    string
	appID      string
	secretKey  string
	httpClient *http.Client
}

// NewCashfreeClient builds a gateway client for the given environment
// ("sandbox" or anything else for live).
func NewCashfreeClient(appID, secretKey, environment string, httpClient *http.Client) *CashfreeClient {
	baseURL := cashfreeLiveURL
	if strings.EqualFold(environment, "sandbox") {
		baseURL = cashfreeSandboxURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &CashfreeClient{
		baseURL:    baseURL,
		appID:      appID,
		secretKey:  secretKey,
		httpClient: httpClient,
	}
}

// gatewayError is the error shape Cashfree returns on non-2xx responses.
type gatewayError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
	Type    string `json:"type"`
}

func (c *CashfreeClient) do(ctx context.Context, method, endpoint string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return utils.InternalError("failed to encode gateway request", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return utils.InternalError("failed to build gateway request", err)
	}
	req.Header.Set("x-client-id", c.appID)
	req.Header.Set("x-client-secret", c.secretKey)
	req.Header.Set("x-api-version", cashfreeAPIVersion)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return utils.UpstreamError("payment gateway unreachable", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return utils.UpstreamError("failed to read gateway response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var gwErr gatewayError
		if err := json.Unmarshal(data, &gwErr); err == nil && gwErr.Message != "" {
			msg := gwErr.Message
			if gwErr.Code != "" {
				msg = fmt.Sprintf("%s (%s)", msg, gwErr.Code)
			}
			return utils.UpstreamError(msg, nil)
		}
		return utils.UpstreamError(fmt.Sprintf("payment gateway returned status %d", resp.StatusCode), nil)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return utils.UpstreamError("unrecognized gateway response shape", err)
	}
	return nil
}

// CreateOrder creates a gateway order and validates the returned session
// token. The token itself is opaque and returned exactly as received.
func (c *CashfreeClient) CreateOrder(ctx context.Context, req OrderRequest) (*OrderResponse, error) {
	var resp OrderResponse
	if err := c.do(ctx, http.MethodPost, "/orders", req, &resp); err != nil {
		return nil, err
	}
	if resp.PaymentSessionID == "" {
		return nil, utils.UpstreamError("no session id in gateway response", nil)
	}
	if !strings.HasPrefix(resp.PaymentSessionID, sessionIDPrefix) {
		return nil, utils.UpstreamError("malformed session id in gateway response", nil)
	}
	return &resp, nil
}

// GetOrder fetches the current status of an order, including its payments.
func (c *CashfreeClient) GetOrder(ctx context.Context, orderID string) (*OrderStatusResponse, error) {
	var resp OrderStatusResponse
	if err := c.do(ctx, http.MethodGet, "/orders/"+orderID, nil, &resp); err != nil {
		return nil, err
	}
	if resp.OrderID == "" {
		return nil, utils.UpstreamError("unrecognized gateway response shape", nil)
	}
	return &resp, nil
}
