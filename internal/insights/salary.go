package insights

import (
	"math"
	"strings"

	"resumeaudit/internal/types"
)

// Salary figures are in lakhs of rupees per annum.
const (
	Currency = "INR"
	Unit     = "LPA"

	defaultRole = "default"

	experienceStep = 0.05
	skillStep      = 0.02
	maxSkillBonus  = 0.15
	degreeBonus    = 0.1
)

type salaryRange struct {
	role     string
	min, max float64
}

type salaryBands struct {
	roles    []salaryRange
	fallback salaryRange
}

var salaryTable = map[string]salaryBands{
	"IT": {
		roles: []salaryRange{
			{"Software Engineer", 6, 25},
			{"Frontend Developer", 5, 20},
			{"Backend Developer", 6, 22},
			{"Full Stack Developer", 7, 28},
			{"DevOps Engineer", 8, 30},
			{"Data Scientist", 10, 35},
			{"Product Manager", 12, 40},
		},
		fallback: salaryRange{defaultRole, 4, 18},
	},
	"Management": {
		roles: []salaryRange{
			{"Operations Manager", 8, 25},
			{"Project Manager", 10, 30},
			{"General Manager", 12, 35},
			{"Business Analyst", 6, 18},
			{"HR Manager", 7, 20},
		},
		fallback: salaryRange{defaultRole, 6, 20},
	},
	"Culinary": {
		roles: []salaryRange{
			{"Head Chef", 5, 15},
			{"Sous Chef", 3, 8},
			{"Executive Chef", 8, 20},
			{"Pastry Chef", 3, 10},
		},
		fallback: salaryRange{defaultRole, 2.5, 8},
	},
	"Arts": {
		roles: []salaryRange{
			{"Art Director", 6, 18},
			{"Graphic Designer", 3, 12},
			{"Illustrator", 3, 10},
			{"Creative Director", 8, 25},
		},
		fallback: salaryRange{defaultRole, 2.5, 10},
	},
	"Education": {
		roles: []salaryRange{
			{"High School Teacher", 3, 8},
			{"College Professor", 6, 18},
			{"Special Education", 3.5, 9},
			{"Principal", 8, 20},
		},
		fallback: salaryRange{defaultRole, 3, 8},
	},
	"Teaching": {
		roles: []salaryRange{
			{"High School Teacher", 3, 8},
			{"College Professor", 6, 18},
			{"Curriculum Developer", 5, 12},
			{"Academic Coordinator", 4, 10},
		},
		fallback: salaryRange{defaultRole, 3, 8},
	},
	"Music": {
		roles: []salaryRange{
			{"Music Director", 4, 15},
			{"Music Teacher", 2.5, 7},
			{"Sound Engineer", 3, 10},
			{"Music Producer", 5, 18},
		},
		fallback: salaryRange{defaultRole, 2.5, 8},
	},
	"Sports": {
		roles: []salaryRange{
			{"Sports Coach", 3, 12},
			{"Fitness Trainer", 2, 8},
			{"Sports Manager", 5, 15},
			{"Physiotherapist", 4, 12},
		},
		fallback: salaryRange{defaultRole, 2.5, 10},
	},
	"Academic": {
		roles: []salaryRange{
			{"Researcher", 6, 20},
			{"Lecturer", 5, 15},
			{"PhD Scholar", 3, 8},
			{"Dean", 12, 30},
		},
		fallback: salaryRange{defaultRole, 4, 15},
	},
	"Security": {
		roles: []salaryRange{
			{"Security Officer", 3, 10},
			{"Security Manager", 5, 15},
			{"Security Analyst", 6, 18},
			{"Chief Security Officer", 10, 25},
		},
		fallback: salaryRange{defaultRole, 3, 12},
	},
	"Healthcare": {
		roles: []salaryRange{
			{"Nurse", 3, 10},
			{"Doctor", 8, 40},
			{"Healthcare Administrator", 6, 20},
			{"Medical Officer", 7, 25},
		},
		fallback: salaryRange{defaultRole, 4, 15},
	},
	"Dance": {
		roles: []salaryRange{
			{"Dance Instructor", 2, 6},
			{"Choreographer", 3, 12},
			{"Ballet Master", 4, 15},
			{"Dance Director", 5, 18},
		},
		fallback: salaryRange{defaultRole, 2, 6},
	},
	"Project Management": {
		roles: []salaryRange{
			{"Project Manager", 10, 30},
			{"Program Manager", 12, 35},
			{"PMO Lead", 15, 40},
			{"Scrum Master", 8, 20},
		},
		fallback: salaryRange{defaultRole, 8, 25},
	},
}

// EstimateSalary computes a salary band for resume in domain. An empty
// domain uses the résumé's own; an unknown one uses IT.
func EstimateSalary(resume types.ResumeRecord, domain string) types.SalaryEstimate {
	if domain == "" {
		domain = resume.Domain
	}
	bands, ok := salaryTable[domain]
	if !ok {
		domain = defaultDomain
		bands = salaryTable[defaultDomain]
	}

	base := matchRole(bands, resume.Role)

	advanced := hasAdvancedDegree(resume.Education)
	multiplier := 1 + float64(len(resume.Experience))*experienceStep
	multiplier += math.Min(float64(len(resume.Skills))*skillStep, maxSkillBonus)
	if advanced {
		multiplier += degreeBonus
	}

	low := round1(base.min * multiplier)
	high := round1(base.max * multiplier)

	return types.SalaryEstimate{
		Domain:      domain,
		MatchedRole: base.role,
		Currency:    Currency,
		Unit:        Unit,
		Min:         low,
		Max:         high,
		Mid:         round1((low + high) / 2),
		Multiplier:  multiplier,
		Factors: types.SalaryFactors{
			Experience:     len(resume.Experience),
			Skills:         len(resume.Skills),
			AdvancedDegree: advanced,
		},
	}
}

// matchRole picks the first table role contained in the résumé role
func matchRole(bands salaryBands, role string) salaryRange {
	role = strings.ToLower(role)
	for _, r := range bands.roles {
		if strings.Contains(role, strings.ToLower(r.role)) {
			return r
		}
	}
	return bands.fallback
}

func hasAdvancedDegree(education []types.Education) bool {
	for _, e := range education {
		degree := strings.ToLower(e.Degree)
		if strings.Contains(degree, "master") || strings.Contains(degree, "phd") {
			return true
		}
	}
	return false
}

func round1(x float64) float64 {
	return math.Floor(x*10+0.5) / 10
}
