package xrpl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"time"
)

// Client talks JSON-RPC to a rippled/XRPL node. It holds the operating wallet
// the company disburses from; employee wallets are only ever destinations.
type Client struct {
	rpcURL     string
	account    string
	secret     string
	httpClient *http.Client
}

type Config struct {
	RPCURL  string
	Account string
	Secret  string
	Timeout time.Duration
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		rpcURL:  cfg.RPCURL,
		account: cfg.Account,
		secret:  cfg.Secret,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Account returns the operating wallet address.
func (c *Client) Account() string {
	return c.account
}

// APIError represents an error returned by the ledger node.
type APIError struct {
	Method    string
	ErrorCode string
	Message   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("xrpl %s error [%s]: %s", e.Method, e.ErrorCode, e.Message)
}

// Classic addresses are base58 with the ripple alphabet, always starting with r.
var addressRegex = regexp.MustCompile(`^r[1-9A-HJ-NP-Za-km-z]{24,34}$`)

// ValidateAddress reports whether address has the shape of a classic ledger
// address. It does not prove the account exists on ledger.
func (c *Client) ValidateAddress(address string) bool {
	return addressRegex.MatchString(address)
}

type rpcRequest struct {
	Method string        `json:"method"`
	Params []interface{} `json:"params"`
}

type rpcError struct {
	Error        string `json:"error"`
	ErrorMessage string `json:"error_message"`
	Status       string `json:"status"`
}

// call posts one JSON-RPC request and decodes result into out.
func (c *Client) call(ctx context.Context, method string, params interface{}, out interface{}) error {
	body, err := json.Marshal(rpcRequest{
		Method: method,
		Params: []interface{}{params},
	})
	if err != nil {
		return fmt.Errorf("failed to encode %s request: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.rpcURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ledger call %s failed: %w", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &APIError{
			Method:    method,
			ErrorCode: http.StatusText(resp.StatusCode),
			Message:   fmt.Sprintf("unexpected HTTP status %d", resp.StatusCode),
		}
	}

	var envelope struct {
		Result json.RawMessage `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", method, err)
	}

	var rpcErr rpcError
	if err := json.Unmarshal(envelope.Result, &rpcErr); err == nil &&
		rpcErr.Status == "error" && rpcErr.Error != "" {
		return &APIError{
			Method:    method,
			ErrorCode: rpcErr.Error,
			Message:   rpcErr.ErrorMessage,
		}
	}

	if err := json.Unmarshal(envelope.Result, out); err != nil {
		return fmt.Errorf("failed to decode %s result: %w", method, err)
	}

	return nil
}
