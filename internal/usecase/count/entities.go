package count

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNegativePhysical = errors.New("physical count must be zero or more")
)

// DefaultHistoryLimit caps a history query when the caller gives no limit.
const DefaultHistoryLimit = 200

// RecordInput is a resolved material plus what the operator counted.
type RecordInput struct {
	Code     string
	Name     string
	Deposit  string
	SAP      int64
	Physical int64
	User     string
}

type RecordResult struct {
	Timestamp string `json:"timestamp"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	Deposit   string `json:"deposit"`
	SAP       int64  `json:"sap"`
	Physical  int64  `json:"physical"`
	Diff      int64  `json:"diff"`
	User      string `json:"user"`
}
