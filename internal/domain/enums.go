package domain

// Role is a user's platform role.
type Role string

const (
	RoleViewer        Role = "viewer"
	RolePlanner       Role = "planner"
	RoleDomainManager Role = "domain_manager"
	RoleAdministrator Role = "administrator"
)

// ValidRoles is the canonical set of accepted role strings.
var ValidRoles = map[Role]bool{
	RoleViewer: true, RolePlanner: true, RoleDomainManager: true, RoleAdministrator: true,
}

type ScenarioStatus string

const (
	ScenarioPlanned   ScenarioStatus = "planned"
	ScenarioPublished ScenarioStatus = "published"
)

type HealthStatus string

const (
	HealthGreen  HealthStatus = "Green"
	HealthYellow HealthStatus = "Yellow"
	HealthRed    HealthStatus = "Red"
)

// ValidHealthStatuses is the canonical set of accepted health strings.
var ValidHealthStatuses = map[HealthStatus]bool{
	HealthGreen: true, HealthYellow: true, HealthRed: true,
}

// Proficiency is an ordered skill level.
type Proficiency string

const (
	ProficiencyBeginner     Proficiency = "Beginner"
	ProficiencyIntermediate Proficiency = "Intermediate"
	ProficiencyAdvanced     Proficiency = "Advanced"
	ProficiencyExpert       Proficiency = "Expert"
)

// Rank orders proficiency levels from 1 (Beginner) to 4 (Expert).
// Unknown values rank 0.
func (p Proficiency) Rank() int {
	switch p {
	case ProficiencyBeginner:
		return 1
	case ProficiencyIntermediate:
		return 2
	case ProficiencyAdvanced:
		return 3
	case ProficiencyExpert:
		return 4
	default:
		return 0
	}
}

func (p Proficiency) IsValid() bool {
	return p.Rank() > 0
}

// EntityKind tags the target of a polymorphic reference.
type EntityKind string

const (
	KindProject   EntityKind = "project"
	KindMilestone EntityKind = "milestone"
)

func (k EntityKind) IsValid() bool {
	return k == KindProject || k == KindMilestone
}

// Anchor selects which edge of the referenced entity a dependency attaches to.
type Anchor string

const (
	AnchorStart Anchor = "start"
	AnchorEnd   Anchor = "end"
)

func (a Anchor) IsValid() bool {
	return a == AnchorStart || a == AnchorEnd
}

type DependencyType string

const (
	DependencyFS DependencyType = "FS"
	DependencySS DependencyType = "SS"
	DependencyFF DependencyType = "FF"
	DependencySF DependencyType = "SF"
)

func (d DependencyType) IsValid() bool {
	switch d {
	case DependencyFS, DependencySS, DependencyFF, DependencySF:
		return true
	default:
		return false
	}
}

// RiskBand buckets a 0-100 risk score.
type RiskBand string

const (
	RiskLow    RiskBand = "Low"
	RiskMedium RiskBand = "Medium"
	RiskHigh   RiskBand = "High"
)
