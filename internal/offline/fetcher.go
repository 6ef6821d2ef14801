package offline

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// HTTPAssetSource fetches assets from the serving origin over HTTP.
type HTTPAssetSource struct {
	client  *http.Client
	baseURL string
}

// NewHTTPAssetSource creates an asset source rooted at baseURL.
func NewHTTPAssetSource(client *http.Client, baseURL string) *HTTPAssetSource {
	return &HTTPAssetSource{client: client, baseURL: baseURL}
}

// Fetch implements AssetSource.
func (s *HTTPAssetSource) Fetch(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("asset %s returned status %d", path, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
