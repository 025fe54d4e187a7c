// Package scoring implements the lead qualification engine: a deterministic
// weighted sum over four categorical axes, bucketed into hot/warm/cold.
package scoring

import (
	"strings"

	"hampstead_backend/internal/rules"
	"hampstead_backend/platform/logger"
)

// Qualification levels, ordered by follow-up priority.
const (
	QualificationHot  = "hot"
	QualificationWarm = "warm"
	QualificationCold = "cold"
)

// Input carries the four scored axes of a lead submission.
type Input struct {
	BudgetRange string
	Timeline    string
	Postcode    string
	ProjectType string
}

// Result is the scoring breakdown for a lead.
type Result struct {
	TotalScore    int    `json:"total_score"`
	BudgetScore   int    `json:"budget_score"`
	TimelineScore int    `json:"timeline_score"`
	LocationScore int    `json:"location_score"`
	ProjectScore  int    `json:"project_score"`
	Qualification string `json:"qualification"`
}

// Engine scores leads against an immutable rule table. It is pure and safe
// for concurrent use.
type Engine struct {
	rules *rules.ScoringRules
	log   *logger.Logger
}

// NewEngine creates a scoring engine over loaded rule tables.
func NewEngine(r *rules.ScoringRules, log *logger.Logger) *Engine {
	return &Engine{rules: r, log: log}
}

// Score calculates the lead score. It never fails: values outside the rule
// table fall back to the per-axis default and are logged for visibility.
func (e *Engine) Score(in Input) Result {
	budget := e.axisPoints(e.rules.Budget, "budget_range", in.BudgetRange)
	timeline := e.axisPoints(e.rules.Timeline, "timeline", in.Timeline)
	location := e.scoreLocation(in.Postcode)
	project := e.axisPoints(e.rules.ProjectType, "project_type", in.ProjectType)

	total := budget + timeline + location + project

	qualification := QualificationCold
	switch {
	case total >= e.rules.Qualification.Hot:
		qualification = QualificationHot
	case total >= e.rules.Qualification.Warm:
		qualification = QualificationWarm
	}

	return Result{
		TotalScore:    total,
		BudgetScore:   budget,
		TimelineScore: timeline,
		LocationScore: location,
		ProjectScore:  project,
		Qualification: qualification,
	}
}

func (e *Engine) axisPoints(axis rules.AxisRules, name, value string) int {
	points, found := axis.Points(value)
	if !found && e.log != nil {
		e.log.RuleDefaultApplied(name, value)
	}
	return points
}

// scoreLocation scores the postcode prefix: premium Hampstead-area prefixes,
// then north London, then west and south west, then everywhere else.
func (e *Engine) scoreLocation(postcode string) int {
	prefix := locationPrefix(postcode)

	for _, premium := range e.rules.Location.PremiumPrefixes {
		if strings.HasPrefix(prefix, premium) {
			return e.rules.Location.PremiumPoints
		}
	}

	switch {
	case strings.HasPrefix(prefix, "N"):
		return e.rules.Location.NorthPoints
	case strings.HasPrefix(prefix, "W"), strings.HasPrefix(prefix, "SW"):
		return e.rules.Location.WestPoints
	default:
		return e.rules.Location.Default
	}
}

// locationPrefix extracts the scored prefix: the token before the space when
// present, otherwise the first three characters, uppercased.
func locationPrefix(postcode string) string {
	if idx := strings.IndexByte(postcode, ' '); idx >= 0 {
		return strings.ToUpper(postcode[:idx])
	}
	if len(postcode) > 3 {
		return strings.ToUpper(postcode[:3])
	}
	return strings.ToUpper(postcode)
}
