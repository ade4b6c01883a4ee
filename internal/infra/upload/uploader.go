// Where: cli/internal/infra/upload/uploader.go
// What: PUT a built artifact to a pre-signed upload URL.
// Why: The platform hands out time-limited URLs that accept the raw zip bytes.
package upload

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
)

// UploadError carries only the textual reason of a failed upload.
type UploadError struct {
	Message string
}

func (e *UploadError) Error() string {
	return "upload failed: " + e.Message
}

// Uploader sends artifacts with a single request and no retry.
type Uploader struct {
	Client *http.Client
}

func New(client *http.Client) Uploader {
	if client == nil {
		client = http.DefaultClient
	}
	return Uploader{Client: client}
}

// Upload PUTs the file at path to url and returns the response body.
func (u Uploader) Upload(ctx context.Context, url, path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &UploadError{Message: fmt.Sprintf("open artifact: %v", err)}
	}
	defer file.Close()
	info, err := file.Stat()
	if err != nil {
		return nil, &UploadError{Message: fmt.Sprintf("stat artifact: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, file)
	if err != nil {
		return nil, &UploadError{Message: err.Error()}
	}
	req.ContentLength = info.Size()
	req.Header.Set("Content-Type", "application/octet-stream")

	client := u.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, &UploadError{Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UploadError{Message: fmt.Sprintf("read response: %v", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UploadError{Message: fmt.Sprintf("status %d: %s", resp.StatusCode, string(body))}
	}
	return body, nil
}
