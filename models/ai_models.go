package models

// Verdict values the model is asked to choose between.
const (
	VerdictLikelyImpulsive = "likely_impulsive"
	VerdictBorderline      = "borderline"
	VerdictConsidered      = "considered"
)

// Suggested transaction statuses derived from a verdict.
const (
	StatusDraft     = "DRAFT"
	StatusInCoolOff = "IN_COOL_OFF"
	StatusAvoided   = "AVOIDED"
	StatusPurchased = "PURCHASED"
)

// AnalysisItem is a detected or user-declared purchase candidate. It lives
// only for the duration of one analysis request/response cycle.
type AnalysisItem struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Currency string  `json:"currency,omitempty"`
}

// SurveyAnswers are the structured reflection answers from the web survey.
type SurveyAnswers struct {
	Necessity      string `json:"necessity,omitempty"`
	HowLongWanted  string `json:"howLongWanted,omitempty"`
	UsageFrequency string `json:"usageFrequency,omitempty"`
	Feeling        string `json:"feeling,omitempty"`
	FitsBudget     string `json:"fitsBudget,omitempty"`
}

// UnifiedAnalysisInput carries the optional fields from both origins (manual
// web survey vs scraped extension context) plus an optional profile snapshot.
// The composer tolerates any subset being absent.
type UnifiedAnalysisInput struct {
	Item          string         `json:"item,omitempty"`
	Price         string         `json:"price,omitempty"`
	Description   string         `json:"description,omitempty"`
	Reason        string         `json:"reason,omitempty"`
	DetectedItems []AnalysisItem `json:"detectedItems,omitempty"`
	PageContext   string         `json:"pageContext,omitempty"`
	Profile       *Profile       `json:"-"`
	Survey        *SurveyAnswers `json:"surveyAnswers,omitempty"`
}

// CoolOff is a suggested waiting period before completing a purchase.
type CoolOff struct {
	Recommended bool   `json:"recommended"`
	Delay       string `json:"delay"`
	Reason      string `json:"reason,omitempty"`
}

// Alternative is a cheaper or saner substitute suggested by the model.
type Alternative struct {
	Name string `json:"name"`
	Note string `json:"note,omitempty"`
}

// AnalysisResult is the canonical response shape every presentation surface
// consumes, regardless of which wire layout the model emitted.
type AnalysisResult struct {
	Items             []AnalysisItem `json:"items"`
	Verdict           string         `json:"verdict"`
	SuggestedStatus   string         `json:"suggestedStatus"`
	ImpulseScore      int            `json:"impulseScore"`
	RegretRisk        string         `json:"regretRisk"`
	Summary           string         `json:"summary"`
	KeyReasons        []string       `json:"keyReasons"`
	UsageRealityCheck string         `json:"usageRealityCheck,omitempty"`
	OpportunityCost   string         `json:"opportunityCost,omitempty"`
	CoolOff           *CoolOff       `json:"coolOff,omitempty"`
	Alternatives      []Alternative  `json:"alternatives,omitempty"`
	Confidence        *float64       `json:"confidence,omitempty"`
}
