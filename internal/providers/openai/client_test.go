package openai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGenerateImageRequiresCredentials(t *testing.T) {
	client, err := NewClient(Options{})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if _, err := client.GenerateImage(context.Background(), "booth"); !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestGenerateImageBuildsSingleHDRequest(t *testing.T) {
	var captured []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/images/generations" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Fatalf("authorization header = %q", auth)
		}
		captured, _ = io.ReadAll(r.Body)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []any{map[string]any{"url": "https://img.example.com/render.png"}},
		})
	}))
	defer srv.Close()

	client, err := NewClient(Options{APIKey: "test-key", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	url, err := client.GenerateImage(context.Background(), "exhibition booth")
	if err != nil {
		t.Fatalf("generate image: %v", err)
	}
	if url != "https://img.example.com/render.png" {
		t.Fatalf("url = %q", url)
	}

	var payload map[string]any
	if err := json.Unmarshal(captured, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload["n"] != float64(1) {
		t.Fatalf("n = %v, want 1", payload["n"])
	}
	if payload["size"] != "1792x1024" {
		t.Fatalf("size = %v", payload["size"])
	}
	if payload["quality"] != "hd" {
		t.Fatalf("quality = %v", payload["quality"])
	}
	if payload["style"] != "natural" {
		t.Fatalf("style = %v", payload["style"])
	}
}

func TestGenerateImageSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "content policy violation", "type": "invalid_request_error"},
		})
	}))
	defer srv.Close()

	client, err := NewClient(Options{APIKey: "test-key", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	_, err = client.GenerateImage(context.Background(), "booth")
	if err == nil || !strings.Contains(err.Error(), "content policy violation") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGenerateImageRejectsEmptyURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"data": []any{}})
	}))
	defer srv.Close()

	client, err := NewClient(Options{APIKey: "test-key", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if _, err := client.GenerateImage(context.Background(), "booth"); err == nil {
		t.Fatalf("expected error for empty data array")
	}
}

func TestDescribeImageSendsVisionParts(t *testing.T) {
	var captured []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		captured, _ = io.ReadAll(r.Body)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []any{map[string]any{"message": map[string]any{"content": `{"description":"blue circular mark"}`}}},
		})
	}))
	defer srv.Close()

	client, err := NewClient(Options{APIKey: "test-key", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	reply, err := client.DescribeImage(context.Background(), "https://cdn.example.com/logo.png", "describe the logo")
	if err != nil {
		t.Fatalf("describe image: %v", err)
	}
	if !strings.Contains(reply, "blue circular mark") {
		t.Fatalf("unexpected reply %q", reply)
	}

	var payload map[string]any
	if err := json.Unmarshal(captured, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	messages := payload["messages"].([]any)
	content := messages[0].(map[string]any)["content"].([]any)
	if len(content) != 2 {
		t.Fatalf("content len = %d, want 2", len(content))
	}
	if part := content[0].(map[string]any); part["type"] != "text" {
		t.Fatalf("first part type = %v", part["type"])
	}
	imagePart := content[1].(map[string]any)
	if imagePart["type"] != "image_url" {
		t.Fatalf("second part type = %v", imagePart["type"])
	}
	imageURL := imagePart["image_url"].(map[string]any)
	if imageURL["url"] != "https://cdn.example.com/logo.png" {
		t.Fatalf("image url = %v", imageURL["url"])
	}
}
