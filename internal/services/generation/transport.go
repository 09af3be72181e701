package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/platewise/gusteau/internal/errors"
	"github.com/platewise/gusteau/internal/httpclient"
)

// providerResponse is a received provider reply, whatever its status.
type providerResponse struct {
	Status int
	Body   []byte
}

// postJSON sends exactly one JSON POST to a provider and returns the body
// for any status below 400. Failures are never retried; the user
// re-triggers the action instead.
func postJSON(ctx context.Context, providerName, url string, headers map[string]string, payload interface{}) (providerResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return providerResponse{}, err
	}

	req, err := http.NewRequestWithContext(httpclient.WithProvider(ctx, providerName), "POST", url, bytes.NewReader(body))
	if err != nil {
		return providerResponse{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := httpclient.InstrumentedClient.Do(req)
	if err != nil {
		return providerResponse{}, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return providerResponse{}, err
	}

	if resp.StatusCode >= 400 {
		return providerResponse{}, apperrors.NewProviderError(
			fmt.Sprintf("%s API error (status %d): %s", providerName, resp.StatusCode, providerMessage(respBody)),
			"PROVIDER_REQUEST_FAILED",
			resp.StatusCode,
		)
	}

	return providerResponse{Status: resp.StatusCode, Body: respBody}, nil
}

// providerMessage extracts the provider-supplied error message from an
// error body, falling back to the raw body text.
func providerMessage(body []byte) string {
	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		return envelope.Error.Message
	}
	return string(body)
}
