package types

// ResumeRecord is the structured résumé that every analyzer reads.
// JSON keys are camelCase and always emitted: keyword coverage scans the
// serialized record, keys included.
type ResumeRecord struct {
	Name         string       `json:"name"`
	Role         string       `json:"role"`
	Email        string       `json:"email"`
	Phone        string       `json:"phone"`
	Location     string       `json:"location"`
	Summary      string       `json:"summary"`
	Skills       []string     `json:"skills"`
	Experience   []Experience `json:"experience"`
	Education    []Education  `json:"education"`
	Projects     []Project    `json:"projects"`
	Domain       string       `json:"domain"`
	ProfileImage *string      `json:"profileImage"`
	ID           *string      `json:"id"`
}

// Experience is a single role entry
type Experience struct {
	Role        string `json:"role"`
	Company     string `json:"company"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
}

// Education is a single degree entry
type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
}

// Project is a single portfolio project
type Project struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tech        []string `json:"tech"`
	Link        string   `json:"link"`
}

// HasProfileImage reports whether a profile photo is attached
func (r ResumeRecord) HasProfileImage() bool {
	return r.ProfileImage != nil && *r.ProfileImage != ""
}

// ATS issue severities and types
const (
	SeverityHigh   = "high"
	SeverityMedium = "medium"
	SeverityLow    = "low"

	IssueCritical = "critical"
	IssueWarning  = "warning"
	IssueInfo     = "info"
)

// ATSIssue is an actionable finding produced by the ATS analyzer
type ATSIssue struct {
	Section  string `json:"section"`
	Type     string `json:"type"`
	Severity string `json:"severity"`
	Msg      string `json:"msg"`
	Fix      string `json:"fix"`
	Impact   int    `json:"impact"`
}

// SectionScores holds the rounded per-section contributions
type SectionScores struct {
	Summary    int `json:"summary"`
	Experience int `json:"experience"`
	Skills     int `json:"skills"`
	Keywords   int `json:"keywords"`
	Education  int `json:"education"`
	Formatting int `json:"formatting"`
}

// ATSResult is the output of an ATS analysis
type ATSResult struct {
	Score           int           `json:"score"`
	KeywordScore    int           `json:"keywordScore"` // 0-100 keyword match percentage
	Issues          []ATSIssue    `json:"issues"`
	SectionScores   SectionScores `json:"sectionScores"`
	Strengths       []string      `json:"strengths"`
	MatchedKeywords []string      `json:"matchedKeywords"`
}

// ScoreInfo is the display band for an ATS score
type ScoreInfo struct {
	Label   string `json:"label"`
	Color   string `json:"color"`
	Message string `json:"message"`
}

// ATSReport bundles a result with its display band
type ATSReport struct {
	File   string    `json:"file,omitempty"`
	Domain string    `json:"domain"`
	Result ATSResult `json:"result"`
	Info   ScoreInfo `json:"info"`
}

// AuditReport is a combined ATS and bias analysis of one file
type AuditReport struct {
	File string     `json:"file"`
	ATS  ATSReport  `json:"ats"`
	Bias BiasReport `json:"bias"`
}

// Bias severities and categories
const (
	BiasHigh     = "high"
	BiasModerate = "moderate"
	BiasMild     = "mild"
	BiasNone     = "none"

	BiasGender  = "gender"
	BiasAge     = "age"
	BiasPassive = "passive"
	BiasPhoto   = "photo"
)

// BiasIssue is a flagged word or phrase with its suggested replacement
type BiasIssue struct {
	Word        string `json:"word"`
	Replacement string `json:"replacement"`
	Type        string `json:"type"`
	Severity    string `json:"severity"`
	Description string `json:"description,omitempty"`
}

// BiasResult is the output of a bias analysis
type BiasResult struct {
	Score      int         `json:"score"`
	Issues     int         `json:"issues"`
	IssuesList []BiasIssue `json:"issuesList"`
}

// BiasStatus is the display level derived from the issue list
type BiasStatus struct {
	Label string `json:"label"`
	Level string `json:"level"`
	Color string `json:"color"`
}

// BiasReport bundles a result with its status and score label
type BiasReport struct {
	Result     BiasResult `json:"result"`
	Status     BiasStatus `json:"status"`
	ScoreLabel string     `json:"scoreLabel"`
}

// DebiasReport is the rewritten résumé together with its re-analysis
type DebiasReport struct {
	Resume ResumeRecord `json:"resume"`
	Before BiasResult   `json:"before"`
	After  BiasResult   `json:"after"`
}

// CareerInsight lists the strengths and growth areas of a domain
type CareerInsight struct {
	Domain    string   `json:"domain"`
	Strengths []string `json:"strengths"`
	Improve   []string `json:"improve"`
}

// SalaryFactors records the inputs that adjusted a salary estimate
type SalaryFactors struct {
	Experience     int  `json:"experience"`
	Skills         int  `json:"skills"`
	AdvancedDegree bool `json:"advancedDegree"`
}

// SalaryEstimate is a rule-based salary band
type SalaryEstimate struct {
	Domain      string        `json:"domain"`
	MatchedRole string        `json:"matchedRole"`
	Currency    string        `json:"currency"`
	Unit        string        `json:"unit"`
	Min         float64       `json:"min"`
	Max         float64       `json:"max"`
	Mid         float64       `json:"mid"`
	Multiplier  float64       `json:"multiplier"`
	Factors     SalaryFactors `json:"factors"`
}

// JobListing is one sample opening with its match percentage
type JobListing struct {
	Title    string `json:"title"`
	Company  string `json:"company"`
	Location string `json:"location"`
	Type     string `json:"type"`
	Match    int    `json:"match"`
}

// JobAlerts lists sample openings for a domain, best match first. Jobs is
// empty and Message set when the résumé names no target role.
type JobAlerts struct {
	Domain    string       `json:"domain"`
	Role      string       `json:"role"`
	SearchURL string       `json:"searchUrl,omitempty"`
	Message   string       `json:"message,omitempty"`
	Jobs      []JobListing `json:"jobs"`
}

// AdviceInput is the input for the résumé assistant
type AdviceInput struct {
	Resume   ResumeRecord `json:"resume"`
	Question string       `json:"question"`
}

// AdviceOutput is the assistant's answer
type AdviceOutput struct {
	Answer string `json:"answer"`
	Domain string `json:"domain"`
}
