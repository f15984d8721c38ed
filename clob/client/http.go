package client

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

// httpClient wraps resty for the CLOB REST surface. Proxy configuration is
// picked up from the standard environment variables by resty itself. Requests
// are single-attempt: callers of this module get no implicit retries.
type httpClient struct {
	rc *resty.Client
}

func newHTTPClient(host string) *httpClient {
	rc := resty.New().
		SetBaseURL(strings.TrimSuffix(host, "/")).
		SetTimeout(30 * time.Second).
		SetHeader("User-Agent", "polyanalyzer-clob").
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")
	return &httpClient{rc: rc}
}

func (h *httpClient) get(ctx context.Context, endpoint string, headers map[string]string, params map[string]string) (*resty.Response, error) {
	req := h.rc.R().SetContext(ctx)
	if len(headers) > 0 {
		req.SetHeaders(headers)
	}
	if len(params) > 0 {
		req.SetQueryParams(params)
	}
	resp, err := req.Get(endpoint)
	if err != nil {
		return nil, errors.Wrapf(err, "GET %s", endpoint)
	}
	return resp, nil
}

func (h *httpClient) post(ctx context.Context, endpoint string, headers map[string]string, body interface{}) (*resty.Response, error) {
	req := h.rc.R().SetContext(ctx)
	if len(headers) > 0 {
		req.SetHeaders(headers)
	}
	if body != nil {
		req.SetBody(body)
	}
	resp, err := req.Post(endpoint)
	if err != nil {
		return nil, errors.Wrapf(err, "POST %s", endpoint)
	}
	return resp, nil
}

func (h *httpClient) delete(ctx context.Context, endpoint string, headers map[string]string, params map[string]string) (*resty.Response, error) {
	req := h.rc.R().SetContext(ctx)
	if len(headers) > 0 {
		req.SetHeaders(headers)
	}
	if len(params) > 0 {
		req.SetQueryParams(params)
	}
	resp, err := req.Delete(endpoint)
	if err != nil {
		return nil, errors.Wrapf(err, "DELETE %s", endpoint)
	}
	return resp, nil
}

// parseResponse decodes a 2xx body into result; anything else becomes an
// error carrying the status and body text.
func parseResponse(resp *resty.Response, result interface{}) error {
	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		return errors.Errorf("HTTP %d: %s", resp.StatusCode(), strings.TrimSpace(string(resp.Body())))
	}
	if result == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), result); err != nil {
		return errors.Wrapf(err, "decode response (body: %s)", string(resp.Body()))
	}
	return nil
}
