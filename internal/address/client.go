package address

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Info is the postal-code lookup result exposed to callers.
type Info struct {
	Estado    string   `json:"estado"`
	Municipio string   `json:"municipio"`
	Colonias  []string `json:"colonias"`
}

// ErrNotFound means the upstream has no record for the postal code.
var ErrNotFound = errors.New("postal code not found")

// ErrNotConfigured means the Dipomex API token is missing; a server-side
// configuration problem, not an upstream one.
var ErrNotConfigured = errors.New("DIPOMEX_TOKEN is not configured")

// UpstreamError reports a Dipomex failure distinct from "no record": the
// service refused the call or could not be reached.
type UpstreamError struct {
	Status int
	Detail string
}

func (e *UpstreamError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("dipomex upstream error (status %d): %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("dipomex unreachable: %s", e.Detail)
}

// Client calls the Dipomex postal-code API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient constructs a Dipomex client. An empty apiKey is allowed at
// construction; Lookup reports ErrNotConfigured when it is used.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type lookupResponse struct {
	Error        bool   `json:"error"`
	Message      string `json:"message"`
	CodigoPostal *struct {
		Estado    string   `json:"estado"`
		Municipio string   `json:"municipio"`
		Colonias  []string `json:"colonias"`
	} `json:"codigo_postal"`
}

// Lookup fetches state, municipality and neighborhoods for a postal code.
func (c *Client) Lookup(ctx context.Context, cp string) (Info, error) {
	if strings.TrimSpace(c.apiKey) == "" {
		return Info{}, ErrNotConfigured
	}

	endpoint := fmt.Sprintf("%s/codigo_postal?cp=%s", c.baseURL, url.QueryEscape(cp))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Info{}, fmt.Errorf("build dipomex request: %w", err)
	}
	req.Header.Set("APIKEY", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Info{}, &UpstreamError{Detail: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return Info{}, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return Info{}, &UpstreamError{Status: resp.StatusCode, Detail: "unexpected response status"}
	}

	var body lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Info{}, &UpstreamError{Status: resp.StatusCode, Detail: "malformed response body"}
	}
	if body.Error || body.CodigoPostal == nil {
		// The API signals "no record" inside a 200 response.
		return Info{}, ErrNotFound
	}

	return Info{
		Estado:    body.CodigoPostal.Estado,
		Municipio: body.CodigoPostal.Municipio,
		Colonias:  body.CodigoPostal.Colonias,
	}, nil
}
