package count

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bicocont/internal/domain/count"
	"bicocont/internal/infrastructure/metrics"
)

type Usecase struct {
	repo    count.Repository
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewUsecase(r count.Repository, m *metrics.Metrics) *Usecase {
	return &Usecase{repo: r, metrics: m, now: time.Now}
}

// WithClock replaces the local clock used for timestamps.
func (u *Usecase) WithClock(now func() time.Time) *Usecase {
	u.now = now
	return u
}

// Record stores one immutable count with diff = physical - sap.
func (u *Usecase) Record(ctx context.Context, in RecordInput) (*RecordResult, error) {
	if strings.TrimSpace(in.Code) == "" {
		return nil, fmt.Errorf("%w: code is required", ErrInvalidInput)
	}
	if in.Physical < 0 {
		return nil, ErrNegativePhysical
	}

	c := &count.Count{
		Timestamp: count.FormatTimestamp(u.now()),
		Code:      in.Code,
		Name:      in.Name,
		Deposit:   in.Deposit,
		SAP:       in.SAP,
		Physical:  in.Physical,
		Diff:      in.Physical - in.SAP,
		User:      strings.TrimSpace(in.User),
	}
	if err := u.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	u.metrics.CountRecorded()

	return &RecordResult{
		Timestamp: c.Timestamp,
		Code:      c.Code,
		Name:      c.Name,
		Deposit:   c.Deposit,
		SAP:       c.SAP,
		Physical:  c.Physical,
		Diff:      c.Diff,
		User:      c.User,
	}, nil
}

// History returns counts matching every non-empty filter field, newest first.
func (u *Usecase) History(ctx context.Context, f count.Filter) ([]count.Count, error) {
	f.Code = strings.TrimSpace(f.Code)
	f.Deposit = strings.TrimSpace(f.Deposit)
	if f.Limit <= 0 {
		f.Limit = DefaultHistoryLimit
	}
	rows, err := u.repo.Find(ctx, f)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []count.Count{}
	}
	return rows, nil
}
