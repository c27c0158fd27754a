package material

import (
	"context"
	"fmt"
	"sort"
	"strings"

	materialDomain "bicocont/internal/domain/material"
)

// Lookup resolves free text to candidate codes, the deposits of the selected
// code and, when a deposit is selectable, the final Selection.
//
// On ErrNoDeposit and ErrInvalidSelection the partial result is still
// returned so callers can show the candidate codes.
func (u *Usecase) Lookup(ctx context.Context, in LookupInput) (*LookupResult, error) {
	all, err := u.materials(ctx)
	if err != nil {
		return nil, err
	}

	candidates := Candidates(all, in.Query)
	if len(candidates) == 0 {
		return nil, ErrNoMatch
	}

	res := &LookupResult{Codes: distinctCodes(candidates)}
	res.Code = in.Code
	if res.Code == "" {
		res.Code = res.Codes[0]
	}

	res.Deposits = depositOptions(candidates, res.Code)
	if len(res.Deposits) == 0 {
		return res, ErrNoDeposit
	}
	if in.DepositIndex < 0 || in.DepositIndex >= len(res.Deposits) {
		return res, ErrInvalidSelection
	}

	d := res.Deposits[in.DepositIndex]
	res.Selection = &Selection{Code: res.Code, Name: d.Name, Deposit: d.Deposit, SAP: d.SAP}
	return res, nil
}

// Resolve returns the row the operator picked. Code and deposit are trimmed
// and matched exactly; SAP and Name, when given, must match the same row or
// ErrOptionChanged is returned. With neither, the first row of the pair wins.
func (u *Usecase) Resolve(ctx context.Context, in ResolveInput) (*Selection, error) {
	all, err := u.materials(ctx)
	if err != nil {
		return nil, err
	}
	code := strings.TrimSpace(in.Code)
	deposit := strings.TrimSpace(in.Deposit)

	codeSeen, pairSeen := false, false
	for _, m := range all {
		if m.Code != code {
			continue
		}
		codeSeen = true
		if m.Deposit != deposit {
			continue
		}
		pairSeen = true
		if in.SAP != nil && m.SAP != *in.SAP {
			continue
		}
		if in.Name != nil && m.Name != strings.TrimSpace(*in.Name) {
			continue
		}
		return &Selection{Code: m.Code, Name: m.Name, Deposit: m.Deposit, SAP: m.SAP}, nil
	}
	switch {
	case !codeSeen:
		return nil, ErrNoMatch
	case !pairSeen:
		return nil, ErrNoDeposit
	default:
		return nil, ErrOptionChanged
	}
}

// Candidates filters by case-insensitive code substring and, only when that
// finds nothing, by name substring. An empty query keeps everything.
func Candidates(all []materialDomain.Material, query string) []materialDomain.Material {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return all
	}
	byCode := filter(all, func(m materialDomain.Material) bool {
		return strings.Contains(strings.ToLower(m.Code), q)
	})
	if len(byCode) > 0 {
		return byCode
	}
	return filter(all, func(m materialDomain.Material) bool {
		return strings.Contains(strings.ToLower(m.Name), q)
	})
}

func filter(all []materialDomain.Material, keep func(materialDomain.Material) bool) []materialDomain.Material {
	var out []materialDomain.Material
	for _, m := range all {
		if keep(m) {
			out = append(out, m)
		}
	}
	return out
}

func distinctCodes(ms []materialDomain.Material) []string {
	seen := make(map[string]struct{}, len(ms))
	out := make([]string, 0, len(ms))
	for _, m := range ms {
		if _, ok := seen[m.Code]; ok {
			continue
		}
		seen[m.Code] = struct{}{}
		out = append(out, m.Code)
	}
	sort.Strings(out)
	return out
}

// depositOptions lists distinct (deposit, sap, name) triples of code in first-seen order.
func depositOptions(ms []materialDomain.Material, code string) []DepositOption {
	type key struct {
		deposit string
		sap     int64
		name    string
	}
	seen := map[key]struct{}{}
	var out []DepositOption
	for _, m := range ms {
		if m.Code != code {
			continue
		}
		k := key{m.Deposit, m.SAP, m.Name}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, DepositOption{
			Deposit: m.Deposit,
			SAP:     m.SAP,
			Name:    m.Name,
			Label:   fmt.Sprintf("%s (SAP: %d)", m.Deposit, m.SAP),
		})
	}
	return out
}
