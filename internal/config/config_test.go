package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("LINE_CHANNEL_SECRET", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}

	if cfg.Server.Addr != ":8080" {
		t.Fatalf("expected :8080, got %q", cfg.Server.Addr)
	}
	if cfg.AI.Provider != ProviderOpenAI {
		t.Fatalf("expected openai provider, got %q", cfg.AI.Provider)
	}
	if cfg.AI.Model != "gpt-4.1-mini-2025-04-14" {
		t.Fatalf("unexpected model %q", cfg.AI.Model)
	}
	if cfg.AI.Temperature != 0 || cfg.AI.MaxTokens != 1024 {
		t.Fatalf("unexpected sampling settings: temperature=%v maxTokens=%d", cfg.AI.Temperature, cfg.AI.MaxTokens)
	}
	if cfg.AI.MaxAttempts != 5 || cfg.AI.RetryBaseDelay != 2*time.Second {
		t.Fatalf("unexpected retry policy: attempts=%d delay=%s", cfg.AI.MaxAttempts, cfg.AI.RetryBaseDelay)
	}
	if cfg.AI.OpenAIKey != "" || cfg.LINE.ChannelSecret != "" {
		t.Fatal("expected empty credentials by default")
	}
	if cfg.Rules.Path != "dorm_rules.txt" {
		t.Fatalf("unexpected rules path %q", cfg.Rules.Path)
	}
}

func TestLoadPortVariants(t *testing.T) {
	cases := map[string]string{
		"9000":           ":9000",
		":7000":          ":7000",
		"127.0.0.1:6000": "127.0.0.1:6000",
	}
	for port, want := range cases {
		t.Setenv("PORT", port)
		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load(%q) err: %v", port, err)
		}
		if cfg.Server.Addr != want {
			t.Fatalf("PORT=%q: expected %q, got %q", port, want, cfg.Server.Addr)
		}
	}
}

func TestLoadRejectsPortWithSpace(t *testing.T) {
	t.Setenv("PORT", "80 80")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for PORT containing a space")
	}
}

func TestLoadRejectsUnknownProvider(t *testing.T) {
	t.Setenv("AI_PROVIDER", "gemini")
	if _, err := Load(); err == nil {
		t.Fatal("expected validation error for unknown provider")
	}
}

func TestLoadRejectsZeroWorkers(t *testing.T) {
	t.Setenv("DISPATCH_WORKERS", "0")
	if _, err := Load(); err == nil {
		t.Fatal("expected validation error for zero workers")
	}
}

func TestArkEnabled(t *testing.T) {
	cfg := AIConfig{ArkModel: "doubao", ArkAPIKey: "key"}
	if !cfg.ArkEnabled() {
		t.Fatal("expected ark enabled with model and api key")
	}

	cfg = AIConfig{ArkModel: "doubao", ArkAccessKey: "ak"}
	if cfg.ArkEnabled() {
		t.Fatal("expected ark disabled without secret key")
	}
}

func TestCompletionModelFollowsProvider(t *testing.T) {
	cfg := AIConfig{Provider: ProviderOpenAI, Model: "gpt-4.1-mini-2025-04-14", ArkModel: "doubao"}
	if got := cfg.CompletionModel(); got != "gpt-4.1-mini-2025-04-14" {
		t.Fatalf("openai: unexpected model %q", got)
	}

	cfg.Provider = ProviderArk
	if got := cfg.CompletionModel(); got != "doubao" {
		t.Fatalf("ark: unexpected model %q", got)
	}
}
