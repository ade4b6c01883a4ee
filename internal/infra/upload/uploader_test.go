package upload

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeArtifact(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hello.zip")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write artifact: %v", err)
	}
	return path
}

func TestUploadPutsFullContent(t *testing.T) {
	var (
		method      string
		contentType string
		length      int64
		received    string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		contentType = r.Header.Get("Content-Type")
		length = r.ContentLength
		data, _ := io.ReadAll(r.Body)
		received = string(data)
		_, _ = w.Write([]byte("stored"))
	}))
	defer server.Close()

	path := writeArtifact(t, "zip-bytes")
	body, err := New(server.Client()).Upload(context.Background(), server.URL+"/signed?sig=abc", path)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if string(body) != "stored" {
		t.Fatalf("unexpected body: %q", body)
	}
	if method != http.MethodPut {
		t.Fatalf("expected PUT, got %s", method)
	}
	if contentType != "application/octet-stream" {
		t.Fatalf("unexpected content type: %s", contentType)
	}
	if length != int64(len("zip-bytes")) || received != "zip-bytes" {
		t.Fatalf("unexpected payload: len=%d body=%q", length, received)
	}
}

func TestUploadNon2xxReturnsUploadError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte("signature expired"))
	}))
	defer server.Close()

	_, err := New(server.Client()).Upload(context.Background(), server.URL, writeArtifact(t, "x"))
	var uploadErr *UploadError
	if !errors.As(err, &uploadErr) {
		t.Fatalf("expected UploadError, got %v", err)
	}
	if !strings.Contains(uploadErr.Message, "403") || !strings.Contains(uploadErr.Message, "signature expired") {
		t.Fatalf("unexpected message: %q", uploadErr.Message)
	}
}

func TestUploadNetworkFailureReturnsUploadError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := New(nil).Upload(context.Background(), url, writeArtifact(t, "x"))
	var uploadErr *UploadError
	if !errors.As(err, &uploadErr) {
		t.Fatalf("expected UploadError, got %v", err)
	}
}

func TestUploadMissingArtifact(t *testing.T) {
	_, err := New(nil).Upload(context.Background(), "http://127.0.0.1:1", filepath.Join(t.TempDir(), "none.zip"))
	var uploadErr *UploadError
	if !errors.As(err, &uploadErr) {
		t.Fatalf("expected UploadError, got %v", err)
	}
}
