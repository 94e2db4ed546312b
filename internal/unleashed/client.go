package unleashed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

const DefaultBaseURL = "https://api.unleashedsoftware.com"

// UpstreamError is a non-200 answer from the API, carried verbatim.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (ue *UpstreamError) Error() string {
	return fmt.Sprintf("API call failed: %d - %s", ue.StatusCode, ue.Body)
}

// TimeoutError is a request that never produced a response in time.
type TimeoutError struct {
	Cause error
}

func (te *TimeoutError) Error() string {
	return fmt.Sprintf("upstream request timed out: %s", te.Cause)
}

func (te *TimeoutError) Unwrap() error {
	return te.Cause
}

// InvalidResponseError is a 200 answer whose body is not the JSON page shape.
type InvalidResponseError struct {
	Cause error
}

func (ie *InvalidResponseError) Error() string {
	return fmt.Sprintf("upstream returned malformed JSON: %s", ie.Cause)
}

func (ie *InvalidResponseError) Unwrap() error {
	return ie.Cause
}

type Credentials struct {
	APIID  string
	APIKey string
}

// Client fetches single pages from the Unleashed API. Retries, if any, belong
// to the caller.
type Client struct {
	BaseURL     string
	Credentials Credentials
	HTTP        *http.Client
}

func NewClient(baseURL string, credentials Credentials) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:     baseURL,
		Credentials: credentials,
		HTTP:        &http.Client{Timeout: 30 * time.Second},
	}
}

// FetchPage issues one signed GET for the given page of a resource. The page
// number travels in the URL path; the signature covers exactly the query
// string sent, derived from the same canonical serialization.
func (c *Client) FetchPage(ctx context.Context, resource Resource, filters map[string]string, pageNumber int) (*Page, error) {
	query := CanonicalQuery(filters)
	requestURL := fmt.Sprintf("%s/%s/%d", c.BaseURL, resource.Path, pageNumber)
	if query != "" {
		requestURL += "?" + query
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("api-auth-id", c.Credentials.APIID)
	req.Header.Set("api-auth-signature", Sign(c.Credentials.APIKey, query))
	req.Header.Set("client-type", "PowerBI/Integration")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, &TimeoutError{Cause: err}
		}
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	var page Page
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, &InvalidResponseError{Cause: err}
	}
	return &page, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
