// Package insights holds the per-domain career guidance and the rule-based
// salary estimator.
package insights

import "resumeaudit/internal/types"

const defaultDomain = "IT"

type careerEntry struct {
	strengths []string
	improve   []string
}

var teachingInsight = careerEntry{
	strengths: []string{
		"Knowledge sharing and mentorship",
		"Long-term societal contribution",
		"Stable career progression",
		"Academic specialization pathways",
	},
	improve: []string{
		"Adopt modern teaching tools",
		"Develop digital learning content",
	},
}

var careerTable = map[string]careerEntry{
	"IT": {
		strengths: []string{
			"Strong logical and analytical thinking",
			"High demand across industries",
			"Opportunities for remote/global work",
			"Continuous learning & innovation environment",
		},
		improve: []string{
			"Build real-world projects portfolio",
			"Improve system design & architecture knowledge",
		},
	},
	"Management": {
		strengths: []string{
			"Leadership and decision-making opportunities",
			"Strategic impact on business growth",
			"Cross-functional collaboration exposure",
			"High career progression potential",
		},
		improve: []string{
			"Develop data-driven decision skills",
			"Strengthen stakeholder communication",
		},
	},
	"Arts": {
		strengths: []string{
			"Creative self-expression and originality",
			"Portfolio-driven recognition",
			"Freelance and independent career options",
			"Growing digital content demand",
		},
		improve: []string{
			"Build consistent personal brand",
			"Expand commercial design skills",
		},
	},
	"Culinary": {
		strengths: []string{
			"Hands-on creative profession",
			"Global career mobility",
			"Entrepreneurship opportunities",
			"High demand in hospitality sector",
		},
		improve: []string{
			"Learn modern plating & presentation",
			"Develop kitchen management skills",
		},
	},
	"Sports": {
		strengths: []string{
			"Performance-driven recognition",
			"Strong discipline & teamwork",
			"Coaching and mentoring pathways",
			"Health & fitness industry growth",
		},
		improve: []string{
			"Document achievements professionally",
			"Develop sports analytics awareness",
		},
	},
	"Healthcare": {
		strengths: []string{
			"High social impact profession",
			"Stable global demand",
			"Respected and trusted career",
			"Diverse specialization options",
		},
		improve: []string{
			"Improve patient communication skills",
			"Stay updated with medical technology",
		},
	},
	"Education": teachingInsight,
	"Teaching":  teachingInsight,
	"Music": {
		strengths: []string{
			"Creative performance career",
			"Global audience reach",
			"Multiple revenue streams",
			"Artistic identity development",
		},
		improve: []string{
			"Build digital presence",
			"Expand genre versatility",
		},
	},
	"Security": {
		strengths: []string{
			"Critical organizational role",
			"High demand in digital era",
			"Strong risk management impact",
			"Government & corporate opportunities",
		},
		improve: []string{
			"Upgrade cybersecurity tools knowledge",
			"Gain certifications",
		},
	},
	"Academic": {
		strengths: []string{
			"Research and innovation focus",
			"Thought leadership opportunities",
			"Global collaboration",
			"Publication-driven recognition",
		},
		improve: []string{
			"Increase research publications",
			"Strengthen grant writing skills",
		},
	},
	"Project Management": {
		strengths: []string{
			"Cross-functional team coordination",
			"Strategic planning impact",
			"Budget and timeline management",
			"High organizational value",
		},
		improve: []string{
			"Master agile methodologies",
			"Develop stakeholder negotiation skills",
		},
	},
}

// Career returns the insight for domain, falling back to IT. The returned
// domain is the one whose table was used.
func Career(domain string) types.CareerInsight {
	entry, ok := careerTable[domain]
	if !ok {
		domain = defaultDomain
		entry = careerTable[defaultDomain]
	}
	return types.CareerInsight{
		Domain:    domain,
		Strengths: append([]string(nil), entry.strengths...),
		Improve:   append([]string(nil), entry.improve...),
	}
}
