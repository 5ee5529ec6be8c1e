package analysis

import "time"

type Kind string

const (
	KindCompare     Kind = "compare"
	KindGrundy      Kind = "grundy"
	KindDomineering Kind = "domineering"
)

// @name CompareRequest
type CompareRequest struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}

// @name Comparison
type Comparison struct {
	Left         string `json:"left" bson:"left"`
	Right        string `json:"right" bson:"right"`
	Ordering     string `json:"ordering" bson:"ordering"`
	LeftOutcome  string `json:"left_outcome" bson:"left_outcome"`
	RightOutcome string `json:"right_outcome" bson:"right_outcome"`
	LeftValue    string `json:"left_value,omitempty" bson:"left_value,omitempty"`
	RightValue   string `json:"right_value,omitempty" bson:"right_value,omitempty"`
}

// @name GrundyRequest
type GrundyRequest struct {
	Game string `json:"game"`
}

// @name GrundyResult
type GrundyResult struct {
	Game   string `json:"game" bson:"game"`
	Grundy uint   `json:"grundy" bson:"grundy"`
	Nimber string `json:"nimber" bson:"nimber"`
}

// @name DomineeringRequest
type DomineeringRequest struct {
	Rows []string `json:"rows"`
}

// @name DomineeringResult
type DomineeringResult struct {
	Rows               []string `json:"rows" bson:"rows"`
	Cells              int      `json:"cells" bson:"cells"`
	Positions          int      `json:"positions" bson:"positions"`
	Birthday           int      `json:"birthday" bson:"birthday"`
	LeftMoves          int      `json:"left_moves" bson:"left_moves"`
	RightMoves         int      `json:"right_moves" bson:"right_moves"`
	Outcome            string   `json:"outcome" bson:"outcome"`
	OutcomeDescription string   `json:"outcome_description" bson:"outcome_description"`
	Value              string   `json:"value,omitempty" bson:"value,omitempty"`
	Game               string   `json:"game" bson:"game"`
}

// @name Analysis
type Analysis struct {
	ID          string             `json:"id" bson:"_id"`
	Kind        Kind               `json:"kind" bson:"kind"`
	Input       string             `json:"input" bson:"input"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	Cached      bool               `json:"cached" bson:"-"`
	Comparison  *Comparison        `json:"comparison,omitempty" bson:"comparison,omitempty"`
	Grundy      *GrundyResult      `json:"grundy,omitempty" bson:"grundy,omitempty"`
	Domineering *DomineeringResult `json:"domineering,omitempty" bson:"domineering,omitempty"`
}

// @name AnalysisPage
type AnalysisPage struct {
	PageNum    int        `json:"page_num"`
	TotalPages int        `json:"total_pages"`
	Analyses   []Analysis `json:"analyses"`
}

// Request is one message on the live analysis socket. Exactly one of the
// request fields is expected, matching Kind.
//
// @name Request
type Request struct {
	Kind        Kind                `json:"kind"`
	Compare     *CompareRequest     `json:"compare,omitempty"`
	Grundy      *GrundyRequest      `json:"grundy,omitempty"`
	Domineering *DomineeringRequest `json:"domineering,omitempty"`
}
