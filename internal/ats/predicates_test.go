package ats

import "testing"

func TestPredicates(t *testing.T) {
	tests := []struct {
		name string
		fn   func(string) bool
		in   string
		want bool
	}{
		{"summary metrics digit", HasSummaryMetrics, "5+ years", true},
		{"summary metrics none", HasSummaryMetrics, "many years", false},
		{"role keyword", HasRoleKeyword, "Senior Data ANALYST", true},
		{"role keyword none", HasRoleKeyword, "Chef de cuisine", false},
		{"summary action verb", HasSummaryActionVerb, "Delivered three launches", true},
		{"summary action verb none", HasSummaryActionVerb, "Passionate about food", false},
		{"generic phrase", IsGenericSummary, "A Detail-Oriented hard worker", true},
		{"generic phrase none", IsGenericSummary, "Shipped a payments platform", false},
		{"experience percent", HasExperienceMetrics, "grew revenue 25%", true},
		{"experience counted unit", HasExperienceMetrics, "mentored 4 people", true},
		{"experience currency", HasExperienceMetrics, "saved $300 per order", true},
		{"experience change verb", HasExperienceMetrics, "Reduced churn", true},
		{"experience bare number", HasExperienceMetrics, "ran 3 kitchens", false},
		{"experience action verb", HasExperienceActionVerb, "Launched a new menu", true},
		{"experience action verb none", HasExperienceActionVerb, "Was part of the crew", false},
		{"weak verb", HasWeakVerb, "Responsible for onboarding", true},
		{"weak verb involved", HasWeakVerb, "involved in audits", true},
		{"weak verb none", HasWeakVerb, "Owned onboarding", false},
		{"weak verb long s", HasWeakVerb, "aſſisted the team", false},
		{"weak verb kelvin sign", HasWeakVerb, "wor\u212Aed on billing", false},
		{"role keyword long s", HasRoleKeyword, "ſpecialiſt", false},
		{"email valid", IsValidEmail, "name@domain.com", true},
		{"email no tld", IsValidEmail, "name@domain", false},
		{"email two ats", IsValidEmail, "a@b@c.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(tt.in); got != tt.want {
				t.Errorf("%s(%q) = %v, want %v", tt.name, tt.in, got, tt.want)
			}
		})
	}
}

func TestContainsDomainKeyword(t *testing.T) {
	keywords, _ := KeywordsFor("IT")

	if !ContainsDomainKeyword("Set up CI/CD pipelines", keywords) {
		t.Error("expected CI/CD to match case-insensitively")
	}
	if ContainsDomainKeyword("Plated desserts", keywords) {
		t.Error("expected no IT keyword in a culinary sentence")
	}
}

func TestCountSkillOverlap(t *testing.T) {
	keywords, _ := KeywordsFor("IT")
	skills := []string{"GitHub Actions", "Cloud Architecture", "Baking"}

	// git, cloud, architecture
	if got := countSkillOverlap(skills, keywords); got != 3 {
		t.Errorf("countSkillOverlap() = %d, want 3", got)
	}
}
