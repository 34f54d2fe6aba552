package domain

type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNeutral  SentimentLabel = "neutral"
	SentimentNegative SentimentLabel = "negative"
)

type Dimension string

const (
	DimLogistics Dimension = "logistics"
	DimQuality   Dimension = "quality"
	DimPrice     Dimension = "price"
	DimPackaging Dimension = "packaging"
	DimService   Dimension = "service"
	DimOther     Dimension = "other"
)

// Dimensions lists every known dimension in stable report order.
var Dimensions = []Dimension{DimLogistics, DimQuality, DimPrice, DimPackaging, DimService, DimOther}

type RiskCategory string

const (
	RiskLegal     RiskCategory = "legal"
	RiskSafety    RiskCategory = "safety"
	RiskRefund    RiskCategory = "refund"
	RiskComplaint RiskCategory = "complaint"
)

var RiskCategories = []RiskCategory{RiskLegal, RiskSafety, RiskRefund, RiskComplaint}

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// SentimentResult is the overall verdict for one review.
type SentimentResult struct {
	Label      SentimentLabel `json:"label"`
	Confidence float64        `json:"confidence"`
}

// AspectScore is the sentiment for a single dimension; dimensions the text
// never mentions are omitted rather than zero-filled.
type AspectScore struct {
	Dimension  Dimension `json:"dimension"`
	Score      float64   `json:"score"` // signed, [-1,1]
	Confidence float64   `json:"confidence"`
}

// RiskFlag marks a categorized risk found in the text. A flag always carries
// at least one matched term.
type RiskFlag struct {
	Category     RiskCategory `json:"category"`
	Severity     Severity     `json:"severity"`
	MatchedTerms []string     `json:"matchedTerms"`
}

// StageError records one analysis stage's failure on one review.
type StageError struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

// Analysis stage names as recorded in StageError.Stage.
const (
	StageNormalize = "normalize"
	StageClassify  = "classify"
	StageTranslate = "translate"
	StageKeywords  = "keywords"
	StageRisk      = "risk"
)

type ItemStatus string

const (
	StatusPending     ItemStatus = "pending"
	StatusNormalizing ItemStatus = "normalizing"
	StatusAnalyzing   ItemStatus = "analyzing"
	StatusFinalized   ItemStatus = "finalized"
	StatusFailed      ItemStatus = "failed"
)

// Terminal reports whether no further processing will happen for the item.
func (s ItemStatus) Terminal() bool { return s == StatusFinalized || s == StatusFailed }

// AnalysisResult is the per-review outcome. The orchestrator finalizes it
// exactly once; the aggregator only ever reads it.
type AnalysisResult struct {
	ReviewID       string           `json:"reviewId"`
	Status         ItemStatus       `json:"status"`
	Sentiment      *SentimentResult `json:"sentiment,omitempty"`
	Aspects        []AspectScore    `json:"aspects,omitempty"`
	RiskFlags      []RiskFlag       `json:"riskFlags,omitempty"`
	TranslatedText *string          `json:"translatedText,omitempty"` // absent if translation failed
	Keywords       []string         `json:"keywords,omitempty"`       // highest salience first
	Errors         []StageError     `json:"errors,omitempty"`
}

// Partial reports whether the item finalized with at least one stage failure.
func (r AnalysisResult) Partial() bool {
	return r.Status == StatusFinalized && len(r.Errors) > 0
}
