package rules

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	r, err := Load("")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if r.LevelStep != 1000 || r.LevelUpBonus != 100 {
		t.Fatalf("unexpected defaults: step=%d bonus=%d", r.LevelStep, r.LevelUpBonus)
	}
	if len(r.Achievements) == 0 {
		t.Fatal("defaults must include achievements")
	}
}

func TestLoad_ReadsYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	data := `levelStep: 500
levelUpBonus: 50
achievements:
  - id: sprinter
    name: Sprinter
    description: Log 5 calls
    metric: calls_logged
    threshold: 5
    xpReward: 75
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	r, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if r.LevelStep != 500 || r.LevelUpBonus != 50 {
		t.Fatalf("unexpected levels: step=%d bonus=%d", r.LevelStep, r.LevelUpBonus)
	}
	if len(r.Achievements) != 1 || r.Achievements[0].Metric != MetricCallsLogged {
		t.Fatalf("unexpected achievements: %+v", r.Achievements)
	}
}

func TestLoad_RejectsUnknownMetric(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	data := `achievements:
  - id: bad
    name: Bad
    metric: deals_ghosted
    threshold: 1
    xpReward: 10
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("unknown metrics must be rejected")
	}
}

func TestLoad_RejectsDuplicateIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	data := `achievements:
  - id: twin
    name: One
    metric: calls_logged
    threshold: 1
    xpReward: 10
  - id: twin
    name: Two
    metric: calls_logged
    threshold: 2
    xpReward: 10
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("duplicate achievement ids must be rejected")
	}
}
