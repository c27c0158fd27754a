package count

import "time"

// TimestampLayout is the stored text format of Count.Timestamp (local time, second precision).
const TimestampLayout = "2006-01-02 15:04:05"

// Table: counts. Append-only; code/name/deposit/sap are a snapshot of the
// material at save time, not a reference to it.
type Count struct {
	Timestamp string `gorm:"column:timestamp;type:text" json:"timestamp"`
	Code      string `gorm:"column:code;type:text" json:"code"`
	Name      string `gorm:"column:name;type:text" json:"name"`
	Deposit   string `gorm:"column:deposit;type:text" json:"deposit"`
	SAP       int64  `gorm:"column:sap;type:integer" json:"sap"`
	Physical  int64  `gorm:"column:physical;type:integer" json:"physical"`
	Diff      int64  `gorm:"column:diff;type:integer" json:"diff"`
	User      string `gorm:"column:user;type:text" json:"user"`
}

func (Count) TableName() string { return "counts" }

// FormatTimestamp renders t in the stored layout, in t's own location.
func FormatTimestamp(t time.Time) string { return t.Format(TimestampLayout) }

// Filter narrows a history query. Empty fields are not applied.
type Filter struct {
	Code     string
	Deposit  string
	DateFrom string // inclusive, compared as text against Timestamp
	DateTo   string // inclusive, compared as text against Timestamp
	Limit    int
}
