package infra

import "testing"

func TestLoadConfigRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("SESSION_SECRET", "test-secret")

	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error when DATABASE_URL is missing")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("SESSION_SECRET", "test-secret")
	t.Setenv("PUBLIC_BASE_URL", "")
	t.Setenv("OPENAI_IMAGE_MODEL", "")
	t.Setenv("REPLICATE_MODEL", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.PublicBaseURL != "http://localhost:8080" {
		t.Fatalf("PublicBaseURL mismatch: %q", cfg.PublicBaseURL)
	}
	if cfg.OpenAIImageModel != "dall-e-3" {
		t.Fatalf("OpenAIImageModel mismatch: %q", cfg.OpenAIImageModel)
	}
	if cfg.ReplicateModel != "black-forest-labs/flux-1.1-pro" {
		t.Fatalf("ReplicateModel mismatch: %q", cfg.ReplicateModel)
	}
}

func TestLoadConfigDoesNotRequireProviderKeys(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("SESSION_SECRET", "test-secret")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("REPLICATE_API_TOKEN", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.OpenAIAPIKey != "" || cfg.ReplicateAPIToken != "" {
		t.Fatalf("expected empty provider credentials")
	}
}
