package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewS3Store(t *testing.T) {
	cfg := S3Config{
		Bucket:          "test-bucket",
		Region:          "us-east-1",
		Endpoint:        "http://localhost:4566", // LocalStack-like endpoint
		AccessKeyID:     "test-access-key",
		SecretAccessKey: "test-secret-key",
	}

	store, err := NewS3Store(cfg)
	if err != nil {
		t.Fatalf("NewS3Store() error = %v", err)
	}
	defer func() { _ = os.RemoveAll(store.ScratchDir()) }()

	if store.bucket != cfg.Bucket {
		t.Errorf("bucket = %v, want %v", store.bucket, cfg.Bucket)
	}
	if store.region != cfg.Region {
		t.Errorf("region = %v, want %v", store.region, cfg.Region)
	}
	if store.ScratchDir() == "" {
		t.Error("expected a scratch directory")
	}
}

func TestS3Store_Publish_MockServer(t *testing.T) {
	// Mock S3 server
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("expected PUT method, got %s", r.Method)
		}

		if !strings.Contains(r.URL.Path, "/nights in white satin/01 - The Day Begins.mp3") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("failed to read body: %v", err)
		}
		if string(body) != "track content" {
			t.Errorf("unexpected body: %s", string(body))
		}

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := S3Config{
		Bucket:          "test-bucket",
		Region:          "us-east-1",
		KeyPrefix:       "nights in white satin",
		Endpoint:        server.URL,
		AccessKeyID:     "test-access-key",
		SecretAccessKey: "test-secret-key",
	}

	store, err := NewS3Store(cfg)
	if err != nil {
		t.Fatalf("NewS3Store() error = %v", err)
	}
	defer func() { _ = os.RemoveAll(store.ScratchDir()) }()

	src := filepath.Join(store.ScratchDir(), "cut.mp3")
	if err := os.WriteFile(src, []byte("track content"), 0o644); err != nil {
		t.Fatalf("write source file: %v", err)
	}

	url, err := store.Publish(context.Background(), src, "01 - The Day Begins.mp3")
	if err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	expectedURL := "https://test-bucket.s3.us-east-1.amazonaws.com/nights in white satin/01 - The Day Begins.mp3"
	if url != expectedURL {
		t.Errorf("url = %v, want %v", url, expectedURL)
	}
}

func TestS3Store_Publish_MissingSource(t *testing.T) {
	cfg := S3Config{
		Bucket:          "test-bucket",
		Region:          "us-east-1",
		Endpoint:        "http://localhost:4566",
		AccessKeyID:     "test-access-key",
		SecretAccessKey: "test-secret-key",
	}

	store, err := NewS3Store(cfg)
	if err != nil {
		t.Fatalf("NewS3Store() error = %v", err)
	}
	defer func() { _ = os.RemoveAll(store.ScratchDir()) }()

	if _, err := store.Publish(context.Background(), "/non/existent/file", "01 - Track.mp3"); err == nil {
		t.Error("expected error for missing source file")
	}
}
