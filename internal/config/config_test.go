package config

import (
	"testing"
	"time"
)

func TestParseSeasons(t *testing.T) {
	now := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	seasons, err := parseSeasons("20222023, 20232024,20222023", now)
	if err != nil {
		t.Fatalf("parseSeasons error: %v", err)
	}
	if len(seasons) != 2 {
		t.Fatalf("expected duplicate season collapsed, got %v", seasons)
	}
	if seasons[0] != "20222023" || seasons[1] != "20232024" {
		t.Fatalf("unexpected seasons: %v", seasons)
	}

	seasons, err = parseSeasons("current", now)
	if err != nil {
		t.Fatalf("parseSeasons current error: %v", err)
	}
	if len(seasons) != 1 || seasons[0] != "20252026" {
		t.Fatalf("expected current season 20252026 in January 2026, got %v", seasons)
	}

	if _, err := parseSeasons("20232025", now); err == nil {
		t.Fatal("expected non-consecutive season years to be rejected")
	}
	if _, err := parseSeasons("2023", now); err == nil {
		t.Fatal("expected short season code to be rejected")
	}
	if _, err := parseSeasons(" , ", now); err == nil {
		t.Fatal("expected empty season list to be rejected")
	}
}

func TestCurrentSeason_RollsOverInJuly(t *testing.T) {
	june := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	july := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

	if got := CurrentSeason(june); got != "20252026" {
		t.Fatalf("expected 20252026 before July, got %s", got)
	}
	if got := CurrentSeason(july); got != "20262027" {
		t.Fatalf("expected 20262027 from July, got %s", got)
	}
}

func TestLoad_RejectsPostgresWithoutDBURL(t *testing.T) {
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("DB_URL", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected missing DB_URL to be rejected")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("BUILDER_SEASONS", "20232024")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.StoreDriver != StoreMemory {
		t.Fatalf("expected memory store default, got %s", cfg.StoreDriver)
	}
	if cfg.NHLBaseURL != "https://api-web.nhle.com/v1" {
		t.Fatalf("unexpected base url %s", cfg.NHLBaseURL)
	}
	if cfg.BuilderMaxWorkers != 1 {
		t.Fatalf("expected sequential builder default, got %d", cfg.BuilderMaxWorkers)
	}
}
