// Package rules defines the configurable gamification rules: level step,
// level-up bonus, and achievement definitions. Rules load from a YAML file
// when one is configured and fall back to compiled defaults otherwise.
package rules

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Metric identifies an aggregate stat an achievement predicate reads.
type Metric string

const (
	MetricCallsLogged        Metric = "calls_logged"
	MetricTasksCompleted     Metric = "tasks_completed"
	MetricLeadsCreated       Metric = "leads_created"
	MetricLeadsClosed        Metric = "leads_closed"
	MetricTrainingsCompleted Metric = "trainings_completed"
	MetricCurrentStreak      Metric = "current_streak"
	MetricTotalXP            Metric = "total_xp"
)

// IsKnownMetric reports whether m is one of the supported metrics.
func IsKnownMetric(m Metric) bool {
	switch m {
	case MetricCallsLogged, MetricTasksCompleted, MetricLeadsCreated,
		MetricLeadsClosed, MetricTrainingsCompleted, MetricCurrentStreak, MetricTotalXP:
		return true
	}
	return false
}

// Achievement is one unlockable badge. The predicate is "metric >= threshold".
type Achievement struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Metric      Metric `yaml:"metric" json:"metric"`
	Threshold   int    `yaml:"threshold" json:"threshold"`
	XPReward    int    `yaml:"xpReward" json:"xpReward"`
}

// Rules is the full gamification rule set.
type Rules struct {
	LevelStep    int           `yaml:"levelStep"`
	LevelUpBonus int           `yaml:"levelUpBonus"`
	Achievements []Achievement `yaml:"achievements"`
}

// Default returns the compiled-in rule set.
func Default() Rules {
	return Rules{
		LevelStep:    1000,
		LevelUpBonus: 100,
		Achievements: []Achievement{
			{ID: "first-contact", Name: "First Contact", Description: "Log your first call", Metric: MetricCallsLogged, Threshold: 1, XPReward: 50},
			{ID: "call-machine", Name: "Call Machine", Description: "Log 50 calls", Metric: MetricCallsLogged, Threshold: 50, XPReward: 250},
			{ID: "pipeline-builder", Name: "Pipeline Builder", Description: "Create 25 leads", Metric: MetricLeadsCreated, Threshold: 25, XPReward: 150},
			{ID: "first-close", Name: "Closer", Description: "Close your first deal", Metric: MetricLeadsClosed, Threshold: 1, XPReward: 250},
			{ID: "deal-machine", Name: "Deal Machine", Description: "Close 10 deals", Metric: MetricLeadsClosed, Threshold: 10, XPReward: 500},
			{ID: "task-master", Name: "Task Master", Description: "Complete 20 tasks", Metric: MetricTasksCompleted, Threshold: 20, XPReward: 150},
			{ID: "week-streak", Name: "On Fire", Description: "Keep a 7 day streak", Metric: MetricCurrentStreak, Threshold: 7, XPReward: 300},
			{ID: "month-streak", Name: "Unstoppable", Description: "Keep a 30 day streak", Metric: MetricCurrentStreak, Threshold: 30, XPReward: 1000},
			{ID: "quick-study", Name: "Quick Study", Description: "Complete 5 trainings", Metric: MetricTrainingsCompleted, Threshold: 5, XPReward: 200},
			{ID: "point-collector", Name: "Point Collector", Description: "Earn 5000 total XP", Metric: MetricTotalXP, Threshold: 5000, XPReward: 500},
		},
	}
}

// Load reads rules from path. An empty path returns the defaults. Missing
// level values in the file fall back to the defaults; achievements must
// reference known metrics.
func Load(path string) (Rules, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("reading gamification rules: %w", err)
	}

	var r Rules
	if err := yaml.Unmarshal(data, &r); err != nil {
		return Rules{}, fmt.Errorf("parsing gamification rules: %w", err)
	}

	defaults := Default()
	if r.LevelStep <= 0 {
		r.LevelStep = defaults.LevelStep
	}
	if r.LevelUpBonus <= 0 {
		r.LevelUpBonus = defaults.LevelUpBonus
	}
	if len(r.Achievements) == 0 {
		r.Achievements = defaults.Achievements
	}

	seen := make(map[string]bool, len(r.Achievements))
	for _, a := range r.Achievements {
		if a.ID == "" {
			return Rules{}, fmt.Errorf("gamification rules: achievement with empty id")
		}
		if seen[a.ID] {
			return Rules{}, fmt.Errorf("gamification rules: duplicate achievement id %q", a.ID)
		}
		seen[a.ID] = true
		if !IsKnownMetric(a.Metric) {
			return Rules{}, fmt.Errorf("gamification rules: achievement %q uses unknown metric %q", a.ID, a.Metric)
		}
		if a.Threshold <= 0 {
			return Rules{}, fmt.Errorf("gamification rules: achievement %q needs a positive threshold", a.ID)
		}
		if a.XPReward < 0 {
			return Rules{}, fmt.Errorf("gamification rules: achievement %q has a negative reward", a.ID)
		}
	}

	return r, nil
}
