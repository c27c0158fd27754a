package material

import (
	"context"
	"errors"
	"reflect"
	"testing"

	domain "bicocont/internal/domain/material"
	"bicocont/internal/infrastructure/cache"
	"bicocont/internal/testutil/materialmock"
	"bicocont/internal/testutil/uowmock"
)

var sample = []domain.Material{
	{Code: "AB123", Name: "Parafuso", Deposit: "D1", SAP: 10},
	{Code: "XY9", Name: "Cabo de aço", Deposit: "D1", SAP: 3},
	{Code: "AB123", Name: "Parafuso", Deposit: "D2", SAP: 4},
	{Code: "AB100", Name: "Porca", Deposit: "", SAP: 0},
	{Code: "AB123", Name: "Parafuso", Deposit: "D1", SAP: 10}, // exact duplicate
	{Code: "AB123", Name: "Parafuso", Deposit: "D1", SAP: 99}, // same deposit, other balance
}

func newLookupUsecase(items ...domain.Material) (*Usecase, *materialmock.Repo) {
	repo := materialmock.Static(items...)
	return NewUsecase(repo, uowmock.New(), cache.NewMemory(), nil, nil), repo
}

func TestCandidates_CaseInsensitiveOnCodeAndName(t *testing.T) {
	all := []domain.Material{
		{Code: "AB123", Name: "Parafuso"},
		{Code: "ZZ1", Name: "Cabo"},
	}
	// "ab" matches a code, so the name fallback never runs and "Cabo" is not included
	got := Candidates(all, "ab")
	if len(got) != 1 || got[0].Code != "AB123" {
		t.Fatalf("code match: got %+v", got)
	}
	// "CAB" matches no code, so the name search runs
	got = Candidates(all, "CAB")
	if len(got) != 1 || got[0].Name != "Cabo" {
		t.Fatalf("name fallback: got %+v", got)
	}
}

func TestCandidates_NameFallbackWhenNoCodeMatches(t *testing.T) {
	all := []domain.Material{
		{Code: "ZZ1", Name: "Cabo"},
		{Code: "XY2", Name: "Fio"},
	}
	got := Candidates(all, "ab")
	if len(got) != 1 || got[0].Code != "ZZ1" {
		t.Fatalf("got %+v, want only Cabo", got)
	}
}

func TestCandidates_FallbackIsNotAUnion(t *testing.T) {
	all := []domain.Material{
		{Code: "CAB-1", Name: "Fio"},
		{Code: "X2", Name: "Cabo"},
	}
	got := Candidates(all, "cab")
	if len(got) != 1 || got[0].Code != "CAB-1" {
		t.Fatalf("expected only the code match, got %+v", got)
	}
}

func TestCandidates_EmptyQueryKeepsAll(t *testing.T) {
	if got := Candidates(sample, "   "); len(got) != len(sample) {
		t.Fatalf("len = %d, want %d", len(got), len(sample))
	}
}

func TestCandidates_QueryIsLiteral(t *testing.T) {
	all := []domain.Material{{Code: "A.B"}, {Code: "AXB"}}
	got := Candidates(all, "a.b")
	if len(got) != 1 || got[0].Code != "A.B" {
		t.Fatalf("got %+v", got)
	}
}

func TestLookup_DefaultsToFirstCodeAndDeposit(t *testing.T) {
	uc, _ := newLookupUsecase(sample...)

	res, err := uc.Lookup(context.Background(), LookupInput{Query: "ab"})
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if want := []string{"AB100", "AB123"}; !reflect.DeepEqual(res.Codes, want) {
		t.Fatalf("Codes = %v, want %v", res.Codes, want)
	}
	if res.Code != "AB100" {
		t.Fatalf("Code = %s", res.Code)
	}
	want := Selection{Code: "AB100", Name: "Porca", Deposit: "", SAP: 0}
	if res.Selection == nil || *res.Selection != want {
		t.Fatalf("Selection = %+v, want %+v", res.Selection, want)
	}
	if res.Deposits[0].Label != " (SAP: 0)" {
		t.Fatalf("label = %q", res.Deposits[0].Label)
	}
}

func TestLookup_DepositsDistinctInFirstSeenOrder(t *testing.T) {
	uc, _ := newLookupUsecase(sample...)

	res, err := uc.Lookup(context.Background(), LookupInput{Query: "ab", Code: "AB123", DepositIndex: 2})
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	got := make([]string, len(res.Deposits))
	for i, d := range res.Deposits {
		got[i] = d.Label
	}
	want := []string{"D1 (SAP: 10)", "D2 (SAP: 4)", "D1 (SAP: 99)"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("deposits = %v, want %v", got, want)
	}
	if res.Selection.Deposit != "D1" || res.Selection.SAP != 99 {
		t.Fatalf("Selection = %+v", res.Selection)
	}
}

func TestLookup_NoMatch(t *testing.T) {
	uc, _ := newLookupUsecase(sample...)
	_, err := uc.Lookup(context.Background(), LookupInput{Query: "nothing-like-this"})
	if !errors.Is(err, ErrNoMatch) {
		t.Fatalf("err = %v, want ErrNoMatch", err)
	}
}

func TestLookup_EmptyTableIsNoMatch(t *testing.T) {
	uc, _ := newLookupUsecase()
	_, err := uc.Lookup(context.Background(), LookupInput{})
	if !errors.Is(err, ErrNoMatch) {
		t.Fatalf("err = %v, want ErrNoMatch", err)
	}
}

func TestLookup_CodeOutsideCandidatesHasNoDeposit(t *testing.T) {
	uc, _ := newLookupUsecase(sample...)
	res, err := uc.Lookup(context.Background(), LookupInput{Query: "ab", Code: "XY9"})
	if !errors.Is(err, ErrNoDeposit) {
		t.Fatalf("err = %v, want ErrNoDeposit", err)
	}
	if res == nil || len(res.Codes) != 2 || res.Selection != nil {
		t.Fatalf("partial result = %+v", res)
	}
}

func TestLookup_DepositIndexOutOfRange(t *testing.T) {
	uc, _ := newLookupUsecase(sample...)
	for _, idx := range []int{-1, 3} {
		_, err := uc.Lookup(context.Background(), LookupInput{Query: "AB123", DepositIndex: idx})
		if !errors.Is(err, ErrInvalidSelection) {
			t.Fatalf("idx %d: err = %v, want ErrInvalidSelection", idx, err)
		}
	}
}

func TestLookup_StoreErrorPropagates(t *testing.T) {
	boom := errors.New("disk I/O error")
	repo := &materialmock.Repo{ListFn: func(context.Context) ([]domain.Material, error) { return nil, boom }}
	uc := NewUsecase(repo, uowmock.New(), cache.NewMemory(), nil, nil)

	if _, err := uc.Lookup(context.Background(), LookupInput{}); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
}

func TestLookup_MaterialsAreMemoized(t *testing.T) {
	uc, repo := newLookupUsecase(sample...)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := uc.Lookup(ctx, LookupInput{Query: "ab"}); err != nil {
			t.Fatal(err)
		}
	}
	if repo.ListCalls != 1 {
		t.Fatalf("store read %d times, want 1", repo.ListCalls)
	}
}

func TestLookup_NilCacheFallsBackToMemory(t *testing.T) {
	repo := materialmock.Static(sample...)
	uc := NewUsecase(repo, uowmock.New(), nil, nil, nil)
	_, _ = uc.Lookup(context.Background(), LookupInput{})
	_, _ = uc.Lookup(context.Background(), LookupInput{})
	if repo.ListCalls != 1 {
		t.Fatalf("store read %d times, want 1", repo.ListCalls)
	}
}

func TestResolve(t *testing.T) {
	uc, _ := newLookupUsecase(sample...)
	ctx := context.Background()
	sap := func(v int64) *int64 { return &v }
	name := func(v string) *string { return &v }

	tests := []struct {
		name    string
		in      ResolveInput
		wantSAP int64
		wantErr error
	}{
		{name: "first occurrence without option", in: ResolveInput{Code: "AB123", Deposit: "D1"}, wantSAP: 10},
		{name: "second option by sap", in: ResolveInput{Code: "AB123", Deposit: "D1", SAP: sap(99)}, wantSAP: 99},
		{name: "option by sap and name", in: ResolveInput{Code: "AB123", Deposit: "D1", SAP: sap(99), Name: name("Parafuso")}, wantSAP: 99},
		{name: "name alone is ambiguous, first wins", in: ResolveInput{Code: "AB123", Deposit: "D1", Name: name(" Parafuso ")}, wantSAP: 10},
		{name: "trims code and deposit", in: ResolveInput{Code: " AB123 ", Deposit: " D2"}, wantSAP: 4},
		{name: "stale sap", in: ResolveInput{Code: "AB123", Deposit: "D1", SAP: sap(50)}, wantErr: ErrOptionChanged},
		{name: "stale name", in: ResolveInput{Code: "AB123", Deposit: "D1", SAP: sap(10), Name: name("Porca")}, wantErr: ErrOptionChanged},
		{name: "unknown deposit", in: ResolveInput{Code: "AB123", Deposit: "D9"}, wantErr: ErrNoDeposit},
		{name: "code is exact", in: ResolveInput{Code: "ab123", Deposit: "D1"}, wantErr: ErrNoMatch},
		{name: "blank deposit row", in: ResolveInput{Code: "AB100", Deposit: "  "}, wantSAP: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel, err := uc.Resolve(ctx, tt.in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if sel.SAP != tt.wantSAP {
				t.Fatalf("sel = %+v, want sap %d", sel, tt.wantSAP)
			}
		})
	}
}
