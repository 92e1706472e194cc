package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("WS_ENABLED", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("NATS_URL", "")
	t.Setenv("NATS_SUBJECT_PREFIX", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if cfg.Server.Addr != ":5000" {
		t.Fatalf("expected :5000, got %s", cfg.Server.Addr)
	}
	if !cfg.Server.WSEnabled {
		t.Fatal("expected websocket enabled by default")
	}
	if len(cfg.CORS.AllowedOrigins) != 1 || cfg.CORS.AllowedOrigins[0] != "*" {
		t.Fatalf("unexpected origins %v", cfg.CORS.AllowedOrigins)
	}
	if cfg.Events.Enabled() {
		t.Fatal("expected events disabled without NATS_URL")
	}
	if cfg.Events.SubjectPrefix != "chatbot.turns" {
		t.Fatalf("unexpected prefix %s", cfg.Events.SubjectPrefix)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "127.0.0.1:9090")
	t.Setenv("WS_ENABLED", "false")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("NATS_URL", "nats://localhost:4222")
	t.Setenv("NATS_SUBJECT_PREFIX", "bot.turns")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if cfg.Server.Addr != "127.0.0.1:9090" {
		t.Fatalf("unexpected addr %s", cfg.Server.Addr)
	}
	if cfg.Server.WSEnabled {
		t.Fatal("expected websocket disabled")
	}
	if len(cfg.CORS.AllowedOrigins) != 2 || cfg.CORS.AllowedOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected origins %v", cfg.CORS.AllowedOrigins)
	}
	if !cfg.Events.Enabled() || cfg.Events.SubjectPrefix != "bot.turns" {
		t.Fatalf("unexpected events config %+v", cfg.Events)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("PORT", "80 80")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for PORT with spaces")
	}

	t.Setenv("PORT", "5000")
	t.Setenv("WS_ENABLED", "maybe")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid WS_ENABLED")
	}

	t.Setenv("WS_ENABLED", "")
	t.Setenv("NATS_SUBJECT_PREFIX", "bot.*")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for wildcard subject prefix")
	}
}
