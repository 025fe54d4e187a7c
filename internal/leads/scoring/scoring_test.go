package scoring

import (
	"testing"

	"hampstead_backend/internal/rules"
)

func testRules() *rules.ScoringRules {
	return &rules.ScoringRules{
		Budget: rules.AxisRules{
			Default: 10,
			Weights: map[string]int{
				"200000_plus":   30,
				"100000-200000": 27,
				"50000-100000":  23,
				"25000-50000":   18,
				"10000-25000":   12,
				"under_10000":   6,
				"not_sure":      15,
			},
		},
		Timeline: rules.AxisRules{
			Default: 10,
			Weights: map[string]int{
				"asap":        25,
				"1-3_months":  22,
				"3-6_months":  16,
				"6-12_months": 10,
				"flexible":    14,
			},
		},
		ProjectType: rules.AxisRules{
			Default: 10,
			Weights: map[string]int{
				"full_renovation": 20,
				"extension":       19,
				"loft_conversion": 18,
				"kitchen":         16,
				"bathroom":        14,
				"electrical":      12,
				"plumbing":        12,
				"flooring":        10,
				"landscaping":     10,
				"other":           10,
				"painting":        8,
			},
		},
		Location: rules.LocationRules{
			PremiumPrefixes: []string{"NW3", "NW6", "NW8", "NW11", "N6", "N2", "N10"},
			PremiumPoints:   25,
			NorthPoints:     20,
			WestPoints:      18,
			Default:         12,
		},
		Qualification: rules.QualificationRules{Hot: 80, Warm: 50},
	}
}

func newTestEngine() *Engine {
	return NewEngine(testRules(), nil)
}

func TestScorePremiumLead(t *testing.T) {
	result := newTestEngine().Score(Input{
		BudgetRange: "200000_plus",
		Timeline:    "asap",
		Postcode:    "NW3 1AA",
		ProjectType: "full_renovation",
	})

	if result.BudgetScore != 30 || result.TimelineScore != 25 ||
		result.LocationScore != 25 || result.ProjectScore != 20 {
		t.Fatalf("component scores = %d/%d/%d/%d, want 30/25/25/20",
			result.BudgetScore, result.TimelineScore, result.LocationScore, result.ProjectScore)
	}
	if result.TotalScore != 100 {
		t.Fatalf("total = %d, want 100", result.TotalScore)
	}
	if result.Qualification != QualificationHot {
		t.Fatalf("qualification = %q, want hot", result.Qualification)
	}
}

func TestScoreLowValueLead(t *testing.T) {
	result := newTestEngine().Score(Input{
		BudgetRange: "under_10000",
		Timeline:    "flexible",
		Postcode:    "SE1 1AA",
		ProjectType: "painting",
	})

	if result.BudgetScore != 6 || result.TimelineScore != 14 ||
		result.LocationScore != 12 || result.ProjectScore != 8 {
		t.Fatalf("component scores = %d/%d/%d/%d, want 6/14/12/8",
			result.BudgetScore, result.TimelineScore, result.LocationScore, result.ProjectScore)
	}
	if result.TotalScore != 40 {
		t.Fatalf("total = %d, want 40", result.TotalScore)
	}
	if result.Qualification != QualificationCold {
		t.Fatalf("qualification = %q, want cold", result.Qualification)
	}
}

func TestQualificationBoundaries(t *testing.T) {
	tests := []struct {
		name      string
		input     Input
		wantTotal int
		want      string
	}{
		{
			name:      "49 is cold",
			input:     Input{BudgetRange: "under_10000", Timeline: "6-12_months", Postcode: "NW3 1AA", ProjectType: "painting"},
			wantTotal: 49,
			want:      QualificationCold,
		},
		{
			name:      "50 is warm",
			input:     Input{BudgetRange: "under_10000", Timeline: "3-6_months", Postcode: "SE1 1AA", ProjectType: "kitchen"},
			wantTotal: 50,
			want:      QualificationWarm,
		},
		{
			name:      "79 is warm",
			input:     Input{BudgetRange: "100000-200000", Timeline: "3-6_months", Postcode: "W4 5AA", ProjectType: "loft_conversion"},
			wantTotal: 79,
			want:      QualificationWarm,
		},
		{
			name:      "80 is hot",
			input:     Input{BudgetRange: "200000_plus", Timeline: "3-6_months", Postcode: "W4 5AA", ProjectType: "kitchen"},
			wantTotal: 80,
			want:      QualificationHot,
		},
	}

	engine := newTestEngine()
	for _, tt := range tests {
		result := engine.Score(tt.input)
		if result.TotalScore != tt.wantTotal {
			t.Fatalf("%s: total = %d, want %d", tt.name, result.TotalScore, tt.wantTotal)
		}
		if result.Qualification != tt.want {
			t.Fatalf("%s: qualification = %q, want %q", tt.name, result.Qualification, tt.want)
		}
	}
}

func TestLocationPrefixWithAndWithoutSpace(t *testing.T) {
	engine := newTestEngine()

	spaced := engine.Score(Input{BudgetRange: "not_sure", Timeline: "asap", Postcode: "NW3 1QE", ProjectType: "kitchen"})
	compact := engine.Score(Input{BudgetRange: "not_sure", Timeline: "asap", Postcode: "NW31QE", ProjectType: "kitchen"})

	if spaced.LocationScore != 25 || compact.LocationScore != 25 {
		t.Fatalf("location scores = %d/%d, want 25/25", spaced.LocationScore, compact.LocationScore)
	}
}

func TestLocationBands(t *testing.T) {
	tests := []struct {
		postcode string
		want     int
	}{
		{"NW3 1AA", 25},
		{"NW11 6XY", 25},
		{"N2 8AB", 25},
		{"N10 3CD", 25},
		{"N1 9GU", 20},   // north, not premium
		{"NW2 3AB", 20},  // NW but not a premium district
		{"W4 5AA", 18},   // west
		{"SW11 2EF", 18}, // south west
		{"SE1 1AA", 12},
		{"E14 9GE", 12},
		{"lowercase nospace", 12},
	}

	engine := newTestEngine()
	for _, tt := range tests {
		result := engine.Score(Input{BudgetRange: "not_sure", Timeline: "asap", Postcode: tt.postcode, ProjectType: "kitchen"})
		if result.LocationScore != tt.want {
			t.Fatalf("location score for %q = %d, want %d", tt.postcode, result.LocationScore, tt.want)
		}
	}
}

func TestUnknownValuesScoreDefaults(t *testing.T) {
	result := newTestEngine().Score(Input{
		BudgetRange: "a_million_maybe",
		Timeline:    "someday",
		Postcode:    "SE1 1AA",
		ProjectType: "moat_digging",
	})

	if result.BudgetScore != 10 || result.TimelineScore != 10 || result.ProjectScore != 10 {
		t.Fatalf("default scores = %d/%d/%d, want 10/10/10",
			result.BudgetScore, result.TimelineScore, result.ProjectScore)
	}
}

func TestScoreBounds(t *testing.T) {
	r := testRules()
	engine := NewEngine(r, nil)

	budgets := make([]string, 0, len(r.Budget.Weights))
	for v := range r.Budget.Weights {
		budgets = append(budgets, v)
	}
	timelines := make([]string, 0, len(r.Timeline.Weights))
	for v := range r.Timeline.Weights {
		timelines = append(timelines, v)
	}
	projects := make([]string, 0, len(r.ProjectType.Weights))
	for v := range r.ProjectType.Weights {
		projects = append(projects, v)
	}
	postcodes := []string{"NW3 1AA", "N1 9GU", "W4 5AA", "SE1 1AA"}

	min, max := 1000, -1000
	for _, b := range budgets {
		for _, tl := range timelines {
			for _, pc := range postcodes {
				for _, p := range projects {
					total := engine.Score(Input{BudgetRange: b, Timeline: tl, Postcode: pc, ProjectType: p}).TotalScore
					if total < min {
						min = total
					}
					if total > max {
						max = total
					}
				}
			}
		}
	}

	if min != 36 {
		t.Fatalf("minimum total = %d, want 36", min)
	}
	if max != 100 {
		t.Fatalf("maximum total = %d, want 100", max)
	}
}
