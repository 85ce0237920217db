// Package scoring implements the idea viability heuristic.
//
// Score is a pure function: it lower-cases the idea text, checks it against a
// handful of fixed keyword categories using plain substring containment, and
// turns the matches into four bounded scores plus risk and opportunity
// statements. No tokenization is done, so "ai" matches inside "maintain" and
// "class" inside "classic". That looseness is part of the contract.
package scoring

import "strings"

const (
	baselineScore = 5
	minScore      = 0
	maxScore      = 10

	// complexityRiskAt is the technical complexity score from which the
	// complexity risk statement is emitted.
	complexityRiskAt = 7
)

// Category names a keyword group.
type Category string

const (
	CategoryEducation Category = "education"
	CategoryCommerce  Category = "commerce"
	CategoryB2B       Category = "b2b"
	CategoryContent   Category = "content"
	CategoryAI        Category = "ai"
)

// Keywords holds the literal substrings for each category.
var Keywords = map[Category][]string{
	CategoryEducation: {"teacher", "student", "lesson", "school", "course", "class"},
	CategoryCommerce:  {"buy", "sell", "shop", "e-commerce", "payment", "checkout", "store"},
	CategoryB2B:       {"enterprise", "team", "workflow", "crm", "erp", "dashboard"},
	CategoryContent:   {"blog", "post", "article", "newsletter", "content"},
	CategoryAI:        {"ai", "machine learning", "gpt", "model", "chatbot", "assistant"},
}

// Scores are the four viability dimensions, each within [0,10].
type Scores struct {
	MarketFeasibility     int `json:"market_feasibility" example:"7"`
	TargetAudience        int `json:"target_audience" example:"5"`
	MonetizationPotential int `json:"monetization_potential" example:"6"`
	TechnicalComplexity   int `json:"technical_complexity" example:"7"`
}

// Assessment is the transient result of scoring an idea.
type Assessment struct {
	Scores          Scores   `json:"scores"`
	Risks           []string `json:"risks"`
	Opportunities   []string `json:"opportunities"`
	Recommendations []string `json:"recommendations"`
	Summary         string   `json:"summary"`
}

// Statements emitted by the rules below.
const (
	RiskComplexity     = "High technical complexity may increase time-to-market and cost."
	RiskRegulatory     = "Regulatory compliance (privacy/health/finance) may be required."
	RiskNetworkEffects = "Network effects are hard to achieve without significant traction."
	RiskFallback       = "Go-to-market and user acquisition remain key risks."

	OpportunityAI        = "Leverage AI differentiation for personalization and automation."
	OpportunityB2B       = "B2B sales with clear ROI can support premium pricing."
	OpportunityCommerce  = "Direct monetization via subscriptions and transactions."
	OpportunityEducation = "Large educator communities enable organic distribution."
	OpportunityFallback  = "Opportunity to differentiate with excellent UX and speed."

	Summary = "Balanced opportunity with manageable risk. Start lean, validate with a prototype, " +
		"and iterate based on user feedback."
)

// Recommendations returns the fixed recommendation list. A fresh slice is
// returned on every call so callers cannot mutate shared state.
func Recommendations() []string {
	return []string{
		"Start with a focused niche to validate demand quickly.",
		"Ship an MVP with 1-2 killer workflows before expanding scope.",
		"Define 1-2 monetization experiments (subscription tiers, usage-based).",
		"Add analytics to learn from early usage.",
	}
}

// Matches reports, per category, whether any of its keywords occurs in text.
// Matching is case-insensitive substring containment over the whole text.
func Matches(text string) map[Category]bool {
	t := strings.ToLower(text)
	out := make(map[Category]bool, len(Keywords))
	for cat := range Keywords {
		out[cat] = containsAny(t, Keywords[cat]...)
	}
	return out
}

// Score assesses an idea. Empty or blank text is accepted and yields the
// baseline scores with the fallback risk and opportunity.
func Score(text string) Assessment {
	t := strings.ToLower(text)
	hit := Matches(t)

	s := Scores{
		MarketFeasibility:     baselineScore,
		TargetAudience:        baselineScore,
		MonetizationPotential: baselineScore,
		TechnicalComplexity:   baselineScore,
	}
	if hit[CategoryAI] {
		s.MarketFeasibility += 2
		s.MonetizationPotential++
		s.TechnicalComplexity += 2
	}
	if hit[CategoryB2B] {
		s.TargetAudience += 2
		s.MonetizationPotential += 2
	}
	if hit[CategoryCommerce] {
		s.MonetizationPotential += 3
	}
	if hit[CategoryEducation] {
		s.MarketFeasibility++
		s.TargetAudience++
	}
	if hit[CategoryContent] {
		s.MarketFeasibility++
	}
	s = s.clamped()

	var risks []string
	if s.TechnicalComplexity >= complexityRiskAt {
		risks = append(risks, RiskComplexity)
	}
	if containsAny(t, "privacy", "health", "finance") {
		risks = append(risks, RiskRegulatory)
	}
	if containsAny(t, "viral", "social network") {
		risks = append(risks, RiskNetworkEffects)
	}
	if len(risks) == 0 {
		risks = []string{RiskFallback}
	}

	var opps []string
	if hit[CategoryAI] {
		opps = append(opps, OpportunityAI)
	}
	if hit[CategoryB2B] {
		opps = append(opps, OpportunityB2B)
	}
	if hit[CategoryCommerce] {
		opps = append(opps, OpportunityCommerce)
	}
	if hit[CategoryEducation] {
		opps = append(opps, OpportunityEducation)
	}
	if len(opps) == 0 {
		opps = []string{OpportunityFallback}
	}

	return Assessment{
		Scores:          s,
		Risks:           risks,
		Opportunities:   opps,
		Recommendations: Recommendations(),
		Summary:         Summary,
	}
}

func (s Scores) clamped() Scores {
	return Scores{
		MarketFeasibility:     clamp(s.MarketFeasibility),
		TargetAudience:        clamp(s.TargetAudience),
		MonetizationPotential: clamp(s.MonetizationPotential),
		TechnicalComplexity:   clamp(s.TechnicalComplexity),
	}
}

func clamp(v int) int {
	return max(minScore, min(maxScore, v))
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
