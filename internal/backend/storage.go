package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// StorageClient requests time-boxed signed links for private objects held in
// the managed object storage (identity documents live in a private bucket
// behind row-level policies; the console never reads the bytes itself).
type StorageClient struct {
	baseURL string
	apiKey  string
	bucket  string
	client  *http.Client
}

// NewStorageClient creates a signer for the given private bucket.
func NewStorageClient(baseURL, apiKey, bucket string) *StorageClient {
	return &StorageClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		bucket:  bucket,
		client:  &http.Client{Timeout: httpTimeout},
	}
}

type signRequest struct {
	ExpiresIn int `json:"expiresIn"`
}

type signResponse struct {
	SignedURL string `json:"signedURL"`
}

// SignedURL returns a URL granting temporary read access to the object at
// path, valid for ttl.
func (c *StorageClient) SignedURL(ctx context.Context, path string, ttl time.Duration) (string, error) {
	body, err := json.Marshal(signRequest{ExpiresIn: int(ttl.Seconds())})
	if err != nil {
		return "", fmt.Errorf("marshal sign request: %w", err)
	}

	url := fmt.Sprintf("%s/storage/v1/object/sign/%s/%s",
		c.baseURL, c.bucket, strings.TrimLeft(path, "/"))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build sign request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("sign object: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("sign object: storage returned %d", resp.StatusCode)
	}

	var decoded signResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode sign response: %w", err)
	}
	if decoded.SignedURL == "" {
		return "", fmt.Errorf("sign object: empty signed url")
	}

	// The storage API returns a path relative to its own base.
	if strings.HasPrefix(decoded.SignedURL, "/") {
		return c.baseURL + "/storage/v1" + decoded.SignedURL, nil
	}
	return decoded.SignedURL, nil
}
