package material

import "errors"

var (
	ErrNoMatch          = errors.New("no material matches the query")
	ErrNoDeposit        = errors.New("no deposit available for this code")
	ErrInvalidSelection = errors.New("deposit selection out of range")
	ErrOptionChanged    = errors.New("selected deposit option no longer matches the material table")
)

type LookupInput struct {
	Query        string
	Code         string // selected code; empty picks the first in sort order
	DepositIndex int    // index into LookupResult.Deposits
}

// ResolveInput names a deposit option by its (code, deposit) pair and,
// optionally, the SAP balance and name the operator was shown. Without
// SAP and Name the first row of the pair is used.
type ResolveInput struct {
	Code    string
	Deposit string
	SAP     *int64
	Name    *string
}

type DepositOption struct {
	Deposit string `json:"deposit"`
	SAP     int64  `json:"sap"`
	Name    string `json:"name"`
	Label   string `json:"label"`
}

// Selection is the resolved (code, name, deposit, sap) tuple a count is saved against.
type Selection struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Deposit string `json:"deposit"`
	SAP     int64  `json:"sap"`
}

type LookupResult struct {
	Codes     []string        `json:"codes"`
	Code      string          `json:"code"`
	Deposits  []DepositOption `json:"deposits"`
	Selection *Selection      `json:"selection,omitempty"`
}

type ImportResult struct {
	Rows    int       `json:"rows"`
	Columns ColumnMap `json:"columns"`
}

type PreviewResult struct {
	Columns   []string   `json:"columns"`
	Mapping   ColumnMap  `json:"mapping"`
	Rows      [][]string `json:"rows"`
	TotalRows int        `json:"total_rows"`
}
