// Package cloudinary is the remote blob store client. Each method issues a
// single outbound request and reports typed failures; retries are the
// caller's decision.
package cloudinary

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/refugio-dev/refugio/internal/config"
)

const defaultBaseURL = "https://api.cloudinary.com"

// UploadError wraps any failure to get an asset into the store: network
// errors, non-2xx responses and success responses missing a locator.
type UploadError struct {
	Cause error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("image upload failed: %v", e.Cause)
}

func (e *UploadError) Unwrap() error {
	return e.Cause
}

// DeleteError wraps a failed destroy call for one identifier. An asset the
// store has already forgotten is not an error.
type DeleteError struct {
	Identifier string
	Cause      error
}

func (e *DeleteError) Error() string {
	return fmt.Sprintf("image delete failed for %s: %v", e.Identifier, e.Cause)
}

func (e *DeleteError) Unwrap() error {
	return e.Cause
}

// UploadResult is the store's answer to one upload.
type UploadResult struct {
	// Locator is the public URL, the only form persisted with a record.
	Locator string
	// Identifier is the store's key for the asset, used for deletion.
	Identifier string
}

// Client handles all communication with the Cloudinary API.
type Client struct {
	cfg        config.Cloudinary
	baseURL    string
	HttpClient *http.Client

	// now is swapped in tests to pin request timestamps.
	now func() time.Time
}

// New creates a store client from config. BaseURL is only overridden by
// tests pointing at a local stub.
func New(cfg config.Cloudinary) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		cfg:        cfg,
		baseURL:    baseURL,
		HttpClient: &http.Client{Timeout: 30 * time.Second},
		now:        time.Now,
	}
}

type uploadResponse struct {
	SecureUrl string `json:"secure_url"`
	PublicId  string `json:"public_id"`
}

// Upload sends transformed image bytes to the store and returns its public
// locator and identifier. A fresh public id is assigned per upload.
func (c *Client) Upload(ctx context.Context, encoded []byte) (*UploadResult, error) {
	publicId := uuid.NewString()
	params := map[string]string{
		"public_id": publicId,
		"timestamp": strconv.FormatInt(c.now().Unix(), 10),
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for k, v := range params {
		if err := writer.WriteField(k, v); err != nil {
			return nil, &UploadError{Cause: err}
		}
	}
	if err := writer.WriteField("api_key", c.cfg.ApiKey); err != nil {
		return nil, &UploadError{Cause: err}
	}
	if err := writer.WriteField("signature", c.sign(params)); err != nil {
		return nil, &UploadError{Cause: err}
	}
	part, err := writer.CreateFormFile("file", publicId+".jpg")
	if err != nil {
		return nil, &UploadError{Cause: err}
	}
	if _, err := part.Write(encoded); err != nil {
		return nil, &UploadError{Cause: err}
	}
	if err := writer.Close(); err != nil {
		return nil, &UploadError{Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("image/upload"), &body)
	if err != nil {
		return nil, &UploadError{Cause: err}
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.HttpClient.Do(req)
	if err != nil {
		return nil, &UploadError{Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UploadError{Cause: fmt.Errorf("store responded %s: %s", resp.Status, readBodyPrefix(resp.Body))}
	}

	var parsed uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, &UploadError{Cause: fmt.Errorf("can't parse store response: %w", err)}
	}
	if parsed.SecureUrl == "" {
		return nil, &UploadError{Cause: fmt.Errorf("store response missing secure_url")}
	}

	identifier := parsed.PublicId
	if identifier == "" {
		identifier = publicId
	}
	return &UploadResult{Locator: parsed.SecureUrl, Identifier: identifier}, nil
}

type destroyResponse struct {
	Result string `json:"result"`
}

// Delete destroys one asset by identifier. A "not found" result is treated
// as success so cleanup stays idempotent.
func (c *Client) Delete(ctx context.Context, identifier string) error {
	params := map[string]string{
		"public_id": identifier,
		"timestamp": strconv.FormatInt(c.now().Unix(), 10),
	}
	form := url.Values{}
	for k, v := range params {
		form.Set(k, v)
	}
	form.Set("api_key", c.cfg.ApiKey)
	form.Set("signature", c.sign(params))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("image/destroy"), bytes.NewBufferString(form.Encode()))
	if err != nil {
		return &DeleteError{Identifier: identifier, Cause: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HttpClient.Do(req)
	if err != nil {
		return &DeleteError{Identifier: identifier, Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &DeleteError{Identifier: identifier, Cause: fmt.Errorf("store responded %s: %s", resp.Status, readBodyPrefix(resp.Body))}
	}

	var parsed destroyResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return &DeleteError{Identifier: identifier, Cause: fmt.Errorf("can't parse store response: %w", err)}
	}
	switch parsed.Result {
	case "ok", "not found":
		return nil
	default:
		return &DeleteError{Identifier: identifier, Cause: fmt.Errorf("store reported %q", parsed.Result)}
	}
}

// RemoteAsset is one stored image as reported by the admin API.
type RemoteAsset struct {
	Identifier string
	CreatedAt  time.Time
}

type listResponse struct {
	Resources []struct {
		PublicId  string `json:"public_id"`
		CreatedAt string `json:"created_at"`
	} `json:"resources"`
	NextCursor string `json:"next_cursor"`
}

// ListAssets pages through the store's image resources. Used by the
// orphan sweep, never on the request path.
func (c *Client) ListAssets(ctx context.Context) ([]RemoteAsset, error) {
	var assets []RemoteAsset
	cursor := ""
	for {
		endpoint := c.endpoint("resources/image") + "?max_results=500"
		if cursor != "" {
			endpoint += "&next_cursor=" + url.QueryEscape(cursor)
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		req.SetBasicAuth(c.cfg.ApiKey, c.cfg.ApiSecret)

		resp, err := c.HttpClient.Do(req)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			msg := readBodyPrefix(resp.Body)
			resp.Body.Close()
			return nil, fmt.Errorf("store responded %s: %s", resp.Status, msg)
		}

		var parsed listResponse
		err = json.NewDecoder(resp.Body).Decode(&parsed)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("can't parse store response: %w", err)
		}

		for _, r := range parsed.Resources {
			// A missing or malformed created_at leaves the zero time; the
			// sweep treats such assets as too young to touch.
			createdAt, _ := time.Parse(time.RFC3339, r.CreatedAt)
			assets = append(assets, RemoteAsset{Identifier: r.PublicId, CreatedAt: createdAt})
		}
		if parsed.NextCursor == "" {
			return assets, nil
		}
		cursor = parsed.NextCursor
	}
}

func (c *Client) endpoint(action string) string {
	return fmt.Sprintf("%s/v1_1/%s/%s", c.baseURL, c.cfg.CloudName, action)
}

// sign produces the API signature: sha1 over the sorted request params
// concatenated with the secret.
func (c *Client) sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var toSign bytes.Buffer
	for i, k := range keys {
		if i > 0 {
			toSign.WriteByte('&')
		}
		toSign.WriteString(k)
		toSign.WriteByte('=')
		toSign.WriteString(params[k])
	}
	toSign.WriteString(c.cfg.ApiSecret)

	sum := sha1.Sum(toSign.Bytes())
	return hex.EncodeToString(sum[:])
}

func readBodyPrefix(r io.Reader) string {
	data, _ := io.ReadAll(io.LimitReader(r, 512))
	return string(data)
}
