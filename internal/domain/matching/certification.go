package matching

import (
	"interpreter-booking/internal/domain/job"
	"interpreter-booking/internal/domain/user"
)

// certRule maps a certification requirement onto the superset of translator
// levels that satisfy it. The table is consulted in order and the first hit
// wins; the source system expressed this as scattered if/elseif chains with
// a duplicated, unreachable branch for both/normal, which this table
// replaces.
type certRule struct {
	name     string
	matches  func(job.CertificationRequirement) bool
	superset []user.CertificationLevel
}

var allLevels = []user.CertificationLevel{
	user.LevelCertified,
	user.LevelCertifiedLaw,
	user.LevelCertifiedHealth,
	user.LevelLayman,
	user.LevelReadCourses,
}

var certifiedLevels = []user.CertificationLevel{
	user.LevelCertified,
	user.LevelCertifiedLaw,
	user.LevelCertifiedHealth,
}

var laymanLevels = []user.CertificationLevel{
	user.LevelLayman,
	user.LevelReadCourses,
}

var certRules = []certRule{
	{
		name: "any",
		matches: func(r job.CertificationRequirement) bool {
			return r == job.CertAny
		},
		superset: allLevels,
	},
	{
		name: "certified",
		matches: func(r job.CertificationRequirement) bool {
			return r == job.CertCertified || r == job.CertBoth
		},
		superset: certifiedLevels,
	},
	{
		name: "law",
		matches: func(r job.CertificationRequirement) bool {
			return r == job.CertLaw || r == job.CertNLaw
		},
		superset: []user.CertificationLevel{user.LevelCertifiedLaw},
	},
	{
		name: "health",
		matches: func(r job.CertificationRequirement) bool {
			return r == job.CertHealth || r == job.CertNHealth
		},
		superset: []user.CertificationLevel{user.LevelCertifiedHealth},
	},
	{
		name: "layman",
		matches: func(r job.CertificationRequirement) bool {
			return r == job.CertNormal
		},
		superset: laymanLevels,
	},
}

// LevelsFor resolves the certification superset for a requirement and
// reports which rule fired. Unknown requirements fall back to the full
// superset, matching the source's behavior for null.
func LevelsFor(req job.CertificationRequirement) ([]user.CertificationLevel, string) {
	for _, r := range certRules {
		if r.matches(req) {
			return r.superset, r.name
		}
	}
	return allLevels, "fallback"
}
