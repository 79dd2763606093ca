package insights

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"resumeaudit/internal/types"
)

const (
	minJobMatch      = 50
	skillsMatchBonus = 5
	skillsForBonus   = 5

	defaultSearchRole     = "software-engineer"
	defaultSearchLocation = "bangalore"

	noRoleMessage = "Add your target role to see relevant job opportunities"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

var jobTable = map[string][]types.JobListing{
	"IT": {
		{Title: "Senior Software Engineer", Company: "Infosys", Location: "Bangalore, India", Type: "Full-time", Match: 95},
		{Title: "Full Stack Developer", Company: "TCS", Location: "Hyderabad, India", Type: "Full-time", Match: 92},
		{Title: "Frontend Developer", Company: "Wipro", Location: "Pune, India", Type: "Full-time", Match: 88},
		{Title: "Backend Engineer", Company: "Razorpay", Location: "Bangalore, India", Type: "Full-time", Match: 85},
		{Title: "DevOps Engineer", Company: "Paytm", Location: "Noida, India", Type: "Full-time", Match: 82},
		{Title: "Software Architect", Company: "HCL Technologies", Location: "Chennai, India", Type: "Full-time", Match: 80},
		{Title: "React Developer", Company: "Zomato", Location: "Gurugram, India", Type: "Full-time", Match: 78},
		{Title: "Tech Lead", Company: "Flipkart", Location: "Bangalore, India", Type: "Full-time", Match: 75},
		{Title: "Junior Developer", Company: "Freshworks", Location: "Chennai, India", Type: "Full-time", Match: 72},
		{Title: "API Developer", Company: "CRED", Location: "Bangalore, India", Type: "Full-time", Match: 70},
		{Title: "Mobile Developer", Company: "Dream11", Location: "Mumbai, India", Type: "Full-time", Match: 68},
	},
	"Culinary": {
		{Title: "Head Chef", Company: "Taj Hotels", Location: "Mumbai, India", Type: "Full-time", Match: 95},
		{Title: "Sous Chef", Company: "ITC Hotels", Location: "Delhi, India", Type: "Full-time", Match: 90},
		{Title: "Executive Chef", Company: "Oberoi Hotels", Location: "Bangalore, India", Type: "Full-time", Match: 88},
		{Title: "Pastry Chef", Company: "Leela Palace", Location: "Udaipur, India", Type: "Full-time", Match: 85},
		{Title: "Line Cook", Company: "Social Offline", Location: "Pune, India", Type: "Full-time", Match: 80},
		{Title: "Catering Chef", Company: "Foodhall", Location: "Mumbai, India", Type: "Full-time", Match: 78},
		{Title: "Private Chef", Company: "Elite Catering", Location: "Delhi, India", Type: "Full-time", Match: 75},
		{Title: "Kitchen Manager", Company: "Zomato Kitchen", Location: "Gurugram, India", Type: "Full-time", Match: 72},
		{Title: "Recipe Developer", Company: "MTR Foods", Location: "Bangalore, India", Type: "Contract", Match: 70},
		{Title: "Culinary Instructor", Company: "IHM Delhi", Location: "Delhi, India", Type: "Full-time", Match: 68},
		{Title: "Food Stylist", Company: "Food Network India", Location: "Mumbai, India", Type: "Freelance", Match: 65},
	},
	"Arts": {
		{Title: "Senior Art Director", Company: "Ogilvy India", Location: "Mumbai, India", Type: "Full-time", Match: 95},
		{Title: "Graphic Designer", Company: "Lenskart", Location: "Bangalore, India", Type: "Full-time", Match: 90},
		{Title: "Creative Director", Company: "DDB Mudra", Location: "Mumbai, India", Type: "Full-time", Match: 88},
		{Title: "Illustrator", Company: "Tinkle Comics", Location: "Delhi, India", Type: "Contract", Match: 85},
		{Title: "UX Designer", Company: "Swiggy", Location: "Bangalore, India", Type: "Full-time", Match: 82},
		{Title: "Brand Designer", Company: "CRED", Location: "Bangalore, India", Type: "Full-time", Match: 80},
		{Title: "Motion Designer", Company: "TVF Media", Location: "Mumbai, India", Type: "Full-time", Match: 78},
		{Title: "Exhibition Designer", Company: "National Gallery", Location: "Delhi, India", Type: "Full-time", Match: 75},
		{Title: "Art Teacher", Company: "Srishti School", Location: "Bangalore, India", Type: "Full-time", Match: 72},
		{Title: "Gallery Manager", Company: "Kochi Biennale", Location: "Kochi, India", Type: "Full-time", Match: 70},
		{Title: "Digital Artist", Company: "Zynga India", Location: "Bangalore, India", Type: "Full-time", Match: 68},
	},
	"Teaching": {
		{Title: "High School Teacher", Company: "DPS Schools", Location: "Delhi, India", Type: "Full-time", Match: 95},
		{Title: "College Professor", Company: "IIT Bombay", Location: "Mumbai, India", Type: "Full-time", Match: 92},
		{Title: "Special Education", Company: "Ryan International", Location: "Pune, India", Type: "Full-time", Match: 88},
		{Title: "Curriculum Developer", Company: "Byju's", Location: "Bangalore, India", Type: "Full-time", Match: 85},
		{Title: "ESL Teacher", Company: "British Council", Location: "Delhi, India", Type: "Full-time", Match: 82},
		{Title: "Principal", Company: "Kendriya Vidyalaya", Location: "Chennai, India", Type: "Full-time", Match: 80},
		{Title: "Online Instructor", Company: "Unacademy", Location: "Remote", Type: "Part-time", Match: 78},
		{Title: "Academic Advisor", Company: "BITS Pilani", Location: "Pilani, India", Type: "Full-time", Match: 75},
		{Title: "Tutor", Company: "Vedantu", Location: "Bangalore, India", Type: "Part-time", Match: 72},
		{Title: "Department Head", Company: "St. Xavier's College", Location: "Mumbai, India", Type: "Full-time", Match: 70},
		{Title: "Education Consultant", Company: "ETS India", Location: "Remote", Type: "Contract", Match: 68},
	},
	"Dance": {
		{Title: "Bharatanatyam Instructor", Company: "Kalakshetra", Location: "Chennai, India", Type: "Full-time", Match: 95},
		{Title: "Choreographer", Company: "Bollywood Productions", Location: "Mumbai, India", Type: "Contract", Match: 92},
		{Title: "Dance Director", Company: "Shiamak Davar Institute", Location: "Mumbai, India", Type: "Full-time", Match: 88},
		{Title: "Hip Hop Teacher", Company: "Dance Paradise", Location: "Bangalore, India", Type: "Part-time", Match: 85},
		{Title: "Contemporary Dancer", Company: "Attakkalari", Location: "Bangalore, India", Type: "Full-time", Match: 82},
		{Title: "Dance Therapist", Company: "Fortis Healthcare", Location: "Delhi, India", Type: "Full-time", Match: 80},
		{Title: "Kathak Master", Company: "Sangeet Natak Akademi", Location: "Delhi, India", Type: "Full-time", Match: 78},
		{Title: "Fitness Instructor", Company: "Cult.fit", Location: "Bangalore, India", Type: "Part-time", Match: 75},
		{Title: "Backup Dancer", Company: "Sony TV", Location: "Mumbai, India", Type: "Contract", Match: 72},
		{Title: "Dance Judge", Company: "Dance India Dance", Location: "Mumbai, India", Type: "Freelance", Match: 70},
		{Title: "Studio Owner", Company: "Independent", Location: "Pune, India", Type: "Self-employed", Match: 68},
	},
}

// Jobs lists sample openings for domain ranked by match. An empty domain
// uses the résumé's own; an unknown one uses IT. More than five skills add
// a fixed bonus to every match, and no match drops below 50.
func Jobs(resume types.ResumeRecord, domain string) types.JobAlerts {
	if domain == "" {
		domain = resume.Domain
	}
	listings, ok := jobTable[domain]
	if !ok {
		domain = defaultDomain
		listings = jobTable[defaultDomain]
	}

	alerts := types.JobAlerts{Domain: domain, Role: resume.Role, Jobs: []types.JobListing{}}
	if strings.TrimSpace(resume.Role) == "" {
		alerts.Message = noRoleMessage
		return alerts
	}

	bonus := 0
	if len(resume.Skills) > skillsForBonus {
		bonus = skillsMatchBonus
	}

	jobs := slices.Clone(listings)
	for i := range jobs {
		jobs[i].Match = max(minJobMatch, jobs[i].Match+bonus)
	}
	slices.SortStableFunc(jobs, func(a, b types.JobListing) int { return b.Match - a.Match })

	alerts.Jobs = jobs
	alerts.SearchURL = searchURL(resume.Role, resume.Location)
	return alerts
}

// searchURL builds a Naukri search link from role and location slugs
func searchURL(role, location string) string {
	return fmt.Sprintf("https://www.naukri.com/%s-jobs-in-%s",
		slug(role, defaultSearchRole), slug(location, defaultSearchLocation))
}

func slug(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return strings.ToLower(whitespaceRe.ReplaceAllString(s, "-"))
}
