package ats

// DefaultDomain is used whenever a domain has no keyword list of its own.
const DefaultDomain = "IT"

type domainKeywords struct {
	domain   string
	keywords []string
}

// domainTable is ordered so that listings are deterministic.
var domainTable = []domainKeywords{
	{"IT", []string{
		"software", "development", "api", "database", "programming", "cloud",
		"system", "architecture", "agile", "testing", "deployment", "code",
		"git", "devops", "CI/CD", "microservices", "frontend", "backend",
	}},
	{"Management", []string{
		"operations", "leadership", "kpi", "process", "strategy", "team",
		"budget", "efficiency", "optimization", "planning", "stakeholder",
		"project", "coordination", "delegation", "analytics", "roi",
	}},
	{"Sports", []string{
		"competition", "training", "performance", "tournament", "fitness",
		"athlete", "team", "coaching", "discipline", "endurance", "strategy",
		"championship", "athletic", "sports", "conditioning", "technique",
	}},
	{"Culinary", []string{
		"cuisine", "kitchen", "chef", "cooking", "recipe", "menu", "food",
		"preparation", "culinary", "restaurant", "dining", "service",
		"plating", "flavor", "ingredients", "sanitation", "safety",
	}},
	{"Arts", []string{
		"design", "creative", "visual", "portfolio", "illustration", "graphic",
		"art", "aesthetic", "composition", "color", "typography", "branding",
		"ui/ux", "sketch", "photoshop", "illustrator", "creative direction",
	}},
	{"Teaching", []string{
		"education", "curriculum", "instruction", "classroom", "student",
		"lesson", "assessment", "pedagogy", "learning", "teaching", "mentor",
		"evaluation", "development", "engagement", "differentiation",
	}},
	{"Education", []string{
		"education", "curriculum", "instruction", "classroom", "student",
		"lesson", "assessment", "pedagogy", "learning", "teaching", "academic",
		"educational", "training", "workshop", "seminar",
	}},
	{"Music", []string{
		"performance", "composition", "music", "instrument", "orchestra",
		"recording", "production", "concert", "repertoire", "rehearsal",
		"arrangement", "theory", "notation", "audio", "mixing",
	}},
	{"Healthcare", []string{
		"patient", "medical", "clinical", "healthcare", "treatment", "diagnosis",
		"nursing", "care", "health", "wellness", "therapy", "physician",
		"hospital", "emergency", "medication", "documentation",
	}},
	{"Security", []string{
		"security", "surveillance", "protection", "safety", "monitoring",
		"patrol", "emergency", "prevention", "response", "investigation",
		"compliance", "risk", "threat", "incident", "protocol",
	}},
	{"Academic", []string{
		"research", "academic", "publication", "thesis", "dissertation",
		"analysis", "methodology", "data", "study", "scholar", "conference",
		"peer-review", "journal", "findings", "hypothesis", "theoretical",
	}},
	{"Project Management", []string{
		"project", "management", "planning", "execution", "delivery", "scope",
		"timeline", "milestone", "risk", "stakeholder", "agile", "scrum",
		"budget", "resources", "coordination", "pmi", "gantt",
	}},
}

// KeywordsFor returns a copy of the keyword list for domain and whether the
// domain is known. Unknown domains get the IT list.
func KeywordsFor(domain string) ([]string, bool) {
	for _, d := range domainTable {
		if d.domain == domain {
			return append([]string(nil), d.keywords...), true
		}
	}
	return append([]string(nil), domainTable[0].keywords...), false
}

// Domains lists the known domains in table order
func Domains() []string {
	out := make([]string, 0, len(domainTable))
	for _, d := range domainTable {
		out = append(out, d.domain)
	}
	return out
}

// IsKnownDomain reports whether domain has its own keyword list
func IsKnownDomain(domain string) bool {
	_, ok := KeywordsFor(domain)
	return ok
}
