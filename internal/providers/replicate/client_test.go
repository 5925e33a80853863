package replicate

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
	if _, err := client.GenerateImage(context.Background(), "booth"); !errors.Is(err, ErrMissingAPIToken) {
		t.Fatalf("expected ErrMissingAPIToken, got %v", err)
	}
}

func TestGenerateImageSendsFluxInput(t *testing.T) {
	var captured []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models/black-forest-labs/flux-1.1-pro/predictions" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if prefer := r.Header.Get("Prefer"); prefer != "wait=60" {
			t.Fatalf("prefer header = %q", prefer)
		}
		captured, _ = io.ReadAll(r.Body)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "pred-1",
			"status": "succeeded",
			"output": "https://replicate.delivery/render.webp",
		})
	}))
	defer srv.Close()

	client, err := NewClient(Options{APIToken: "test-token", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	url, err := client.GenerateImage(context.Background(), "exhibition booth")
	if err != nil {
		t.Fatalf("generate image: %v", err)
	}
	if url != "https://replicate.delivery/render.webp" {
		t.Fatalf("url = %q", url)
	}

	var payload struct {
		Input map[string]any `json:"input"`
	}
	if err := json.Unmarshal(captured, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload.Input["aspect_ratio"] != "16:9" {
		t.Fatalf("aspect_ratio = %v", payload.Input["aspect_ratio"])
	}
	if payload.Input["output_format"] != "webp" {
		t.Fatalf("output_format = %v", payload.Input["output_format"])
	}
	if payload.Input["output_quality"] != float64(90) {
		t.Fatalf("output_quality = %v", payload.Input["output_quality"])
	}
	if payload.Input["safety_tolerance"] != float64(2) {
		t.Fatalf("safety_tolerance = %v", payload.Input["safety_tolerance"])
	}
	if payload.Input["prompt_upsampling"] != true {
		t.Fatalf("prompt_upsampling = %v", payload.Input["prompt_upsampling"])
	}
}

func TestGenerateImagePollsUntilTerminal(t *testing.T) {
	var polls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost:
			_ = json.NewEncoder(w).Encode(map[string]any{"id": "pred-2", "status": "processing"})
		case r.URL.Path == "/predictions/pred-2":
			polls++
			if polls < 2 {
				_ = json.NewEncoder(w).Encode(map[string]any{"id": "pred-2", "status": "processing"})
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]any{
				"id":     "pred-2",
				"status": "succeeded",
				"output": []string{"https://replicate.delivery/first.webp", "https://replicate.delivery/second.webp"},
			})
		default:
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	client, err := NewClient(Options{APIToken: "test-token", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	url, err := client.GenerateImage(context.Background(), "booth")
	if err != nil {
		t.Fatalf("generate image: %v", err)
	}
	if url != "https://replicate.delivery/first.webp" {
		t.Fatalf("url = %q", url)
	}
	if polls != 2 {
		t.Fatalf("polls = %d, want 2", polls)
	}
}

func TestGenerateImageReportsFailedPrediction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "pred-3",
			"status": "failed",
			"error":  "NSFW content detected",
		})
	}))
	defer srv.Close()

	client, err := NewClient(Options{APIToken: "test-token", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	_, err = client.GenerateImage(context.Background(), "booth")
	if err == nil || !strings.Contains(err.Error(), "NSFW content detected") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGenerateImageSurfacesAPIDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{"detail": "Invalid token."})
	}))
	defer srv.Close()

	client, err := NewClient(Options{APIToken: "bad-token", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	_, err = client.GenerateImage(context.Background(), "booth")
	if err == nil || !strings.Contains(err.Error(), "Invalid token.") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNormalizeOutput(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"string", `"https://replicate.delivery/a.webp"`, "https://replicate.delivery/a.webp"},
		{"array", `["https://replicate.delivery/b.webp"]`, "https://replicate.delivery/b.webp"},
		{"empty array", `[]`, ""},
		{"null", `null`, ""},
		{"object", `{"unexpected":true}`, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := normalizeOutput(json.RawMessage(tc.raw)); got != tc.want {
				t.Fatalf("normalizeOutput(%s) = %q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}
