package material

import (
	"math"
	"strconv"
	"strings"

	materialDomain "bicocont/internal/domain/material"
)

type Field string

const (
	FieldCode    Field = "code"
	FieldName    Field = "name"
	FieldDeposit Field = "deposit"
	FieldSAP     Field = "sap"
)

// ColumnMap records which upload column feeds each canonical field.
type ColumnMap struct {
	index map[Field]int

	Mapping map[Field]string `json:"mapping"`
	// Shadowed columns matched a field that a later column took over.
	Shadowed []string `json:"shadowed,omitempty"`
	Dropped  []string `json:"dropped,omitempty"`
}

// Classify maps one header to a canonical field by keyword. Keywords are
// tried in field order code, name, deposit, sap, so "material_name" is a code.
func Classify(column string) (Field, bool) {
	lc := strings.ToLower(strings.TrimSpace(column))
	if lc == "" {
		return "", false
	}
	switch {
	case strings.Contains(lc, "code") || strings.Contains(lc, "material") || strings.HasPrefix(lc, "cod"):
		return FieldCode, true
	case strings.Contains(lc, "name") || strings.Contains(lc, "descr") || strings.Contains(lc, "texto"):
		return FieldName, true
	case strings.Contains(lc, "deposit") || strings.Contains(lc, "depósito") || strings.Contains(lc, "dep"):
		return FieldDeposit, true
	case strings.Contains(lc, "sap") || strings.Contains(lc, "saldo") || strings.Contains(lc, "quant") || strings.Contains(lc, "util"):
		return FieldSAP, true
	}
	return "", false
}

// MapColumns classifies every header. When two columns land on the same
// field the later one wins and the earlier is reported as shadowed.
func MapColumns(columns []string) ColumnMap {
	cm := ColumnMap{index: map[Field]int{}, Mapping: map[Field]string{}}
	for i, col := range columns {
		f, ok := Classify(col)
		if !ok {
			cm.Dropped = append(cm.Dropped, col)
			continue
		}
		if prev, dup := cm.index[f]; dup {
			cm.Shadowed = append(cm.Shadowed, columns[prev])
		}
		cm.index[f] = i
		cm.Mapping[f] = col
	}
	return cm
}

// Normalize projects the table onto the canonical schema. Missing fields
// become "" (text) or 0 (sap).
func Normalize(t *Table, cm ColumnMap) []materialDomain.Material {
	out := make([]materialDomain.Material, 0, len(t.Rows))
	for _, row := range t.Rows {
		out = append(out, materialDomain.Material{
			Code:    cm.cell(row, FieldCode),
			Name:    cm.cell(row, FieldName),
			Deposit: cm.cell(row, FieldDeposit),
			SAP:     ParseSAP(cm.cell(row, FieldSAP)),
		})
	}
	return out
}

func (cm ColumnMap) cell(row []string, f Field) string {
	i, ok := cm.index[f]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// ParseSAP coerces a cell to an integer balance: integers as-is, decimals
// truncated toward zero, anything else 0.
func ParseSAP(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	f = math.Trunc(f)
	if f >= math.MaxInt64 || f < math.MinInt64 {
		return 0
	}
	return int64(f)
}
