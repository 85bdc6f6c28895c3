package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lmaccart/hack-rice15/game/config"
	"github.com/lmaccart/hack-rice15/game/world"
)

func TestAnalyze_DefaultTown(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Seed = "analyze"

	report, err := Analyze(cfg)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if report.Seed != "analyze" {
		t.Errorf("Expected seed analyze, got %s", report.Seed)
	}
	if report.Spawn != (world.Cell{Col: 12, Row: 10}) {
		t.Errorf("Expected spawn cell (12,10), got %s", report.Spawn.Key())
	}
	if len(report.Hotspots) != len(cfg.Hotspots) {
		t.Errorf("Expected %d hotspot reports, got %d", len(cfg.Hotspots), len(report.Hotspots))
	}
	if report.Unreachable != 0 {
		t.Errorf("Expected every building reachable, got %d unreachable", report.Unreachable)
	}
	for _, h := range report.Hotspots {
		if !h.OnPath || !h.Reachable {
			t.Errorf("Expected %s access cell on a reachable path, got %+v", h.Name, h)
		}
	}
	if report.Saturated {
		t.Error("Default town should have room for every decoration")
	}
}

func TestAnalyze_Saturated(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Seed = "crowded"
	count := 10000
	cfg.DecorationCount = &count

	report, err := Analyze(cfg)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if !report.Saturated {
		t.Error("Expected the interior to fill up")
	}
	if report.Stats.FreeInterior != 0 {
		t.Errorf("Expected no free interior left, got %d", report.Stats.FreeInterior)
	}

	var out bytes.Buffer
	report.Print(&out)
	if !strings.Contains(out.String(), "could not be placed") {
		t.Errorf("Expected saturation warning, got:\n%s", out.String())
	}
}

func TestAnalyze_InvalidLayout(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Hotspots[1].AnchorX = cfg.Hotspots[0].AnchorX
	cfg.Hotspots[1].AnchorY = cfg.Hotspots[0].AnchorY

	if _, err := Analyze(cfg); err == nil {
		t.Error("Expected overlapping buildings to fail construction")
	}
}

func TestReachableAlongPaths_OffPath(t *testing.T) {
	m, err := world.Build(world.DefaultLayout(), nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if got := reachableAlongPaths(m, world.Cell{Col: 0, Row: 0}); got.Size() != 0 {
		t.Errorf("Expected nothing reachable from the border, got %d cells", got.Size())
	}
	spawn := world.CellAt(m.Spawn, m.TileSize)
	if got := reachableAlongPaths(m, spawn); got.Size() != len(m.Paths) {
		t.Errorf("Expected the whole network (%d cells) reachable, got %d", len(m.Paths), got.Size())
	}
}

func TestPrint(t *testing.T) {
	report := &Report{
		Name:  "Test",
		Seed:  "s",
		Stats: world.Stats{Cols: 10, Rows: 8, TileSize: 40, Hotspots: 1},
		Hotspots: []HotspotReport{
			{Name: "bank", Label: "Bank", Access: world.Cell{Col: 3, Row: 4}},
		},
		Unreachable: 1,
	}

	var out bytes.Buffer
	report.Print(&out)
	text := out.String()
	for _, want := range []string{"Grid: 10 x 8 tiles of 40px", "Bank: access (3, 4)", "CRITICAL: 1 buildings"} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected %q in output, got:\n%s", want, text)
		}
	}
}

func TestConfigFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.yaml", "a.json", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.json"), 0755); err != nil {
		t.Fatal(err)
	}

	paths, err := configFiles(dir)
	if err != nil {
		t.Fatalf("configFiles failed: %v", err)
	}
	if len(paths) != 2 || filepath.Base(paths[0]) != "a.json" || filepath.Base(paths[1]) != "b.yaml" {
		t.Errorf("Expected [a.json b.yaml], got %v", paths)
	}

	if _, err := configFiles(filepath.Join(dir, "missing")); err == nil {
		t.Error("Expected error for a missing directory")
	}
}
