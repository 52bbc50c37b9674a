package analytics

import (
	"math"
	"sort"
	"strings"

	"github.com/alexanderramin/horizon/internal/domain"
)

const (
	exactMatchWeight  = 40.0
	proficiencyWeight = 30.0
	experienceWeight  = 20.0
	primaryWeight     = 10.0

	proficiencyGapPenalty = 10.0
)

// MatchBreakdown itemizes the components of a match score.
type MatchBreakdown struct {
	Exact       float64 `json:"exact"`
	Proficiency float64 `json:"proficiency"`
	Experience  float64 `json:"experience"`
	Primary     float64 `json:"primary"`
	Score       int     `json:"score"`
}

// ScoreMatch rates how well a capability covers a requirement on a 0-100 scale.
func ScoreMatch(c *domain.Capability, r *domain.Requirement) MatchBreakdown {
	var b MatchBreakdown

	matching := 0
	for _, pair := range [][2]string{
		{c.Application, r.Application},
		{c.Technology, r.Technology},
		{c.Role, r.Role},
	} {
		if sameField(pair[0], pair[1]) {
			matching++
		}
	}
	b.Exact = float64(matching) / 3 * exactMatchWeight

	gap := r.Proficiency.Rank() - c.Proficiency.Rank()
	if gap <= 0 {
		b.Proficiency = proficiencyWeight
	} else {
		b.Proficiency = math.Max(0, proficiencyWeight-proficiencyGapPenalty*float64(gap))
	}

	// Years of experience are not tracked; the component is always awarded.
	b.Experience = experienceWeight

	if c.IsPrimary {
		b.Primary = primaryWeight
	}

	total := math.Round(b.Exact + b.Proficiency + b.Experience + b.Primary)
	b.Score = int(math.Max(0, math.Min(100, total)))
	return b
}

// MatchScore is ScoreMatch reduced to the final score.
func MatchScore(c *domain.Capability, r *domain.Requirement) int {
	return ScoreMatch(c, r).Score
}

func sameField(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// Suggestion pairs a resource capability with a requirement it could fill.
type Suggestion struct {
	RequirementID int64          `json:"requirementId"`
	ResourceID    int64          `json:"resourceId"`
	CapabilityID  int64          `json:"capabilityId"`
	Breakdown     MatchBreakdown `json:"breakdown"`
}

// RankSuggestions scores every capability against every requirement and
// orders the pairs best first. Pairs scoring below minScore are dropped.
func RankSuggestions(caps []*domain.Capability, reqs []*domain.Requirement, minScore int) []Suggestion {
	var out []Suggestion
	for _, r := range reqs {
		for _, c := range caps {
			b := ScoreMatch(c, r)
			if b.Score < minScore {
				continue
			}
			out = append(out, Suggestion{
				RequirementID: r.ID,
				ResourceID:    c.ResourceID,
				CapabilityID:  c.ID,
				Breakdown:     b,
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Breakdown.Score != out[j].Breakdown.Score {
			return out[i].Breakdown.Score > out[j].Breakdown.Score
		}
		if out[i].RequirementID != out[j].RequirementID {
			return out[i].RequirementID < out[j].RequirementID
		}
		return out[i].CapabilityID < out[j].CapabilityID
	})
	return out
}
