package http

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	countDomain "bicocont/internal/domain/count"
	"bicocont/internal/usecase/count"
	"bicocont/internal/usecase/material"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type CountHandler struct {
	materials    *material.Usecase
	counts       *count.Usecase
	historyLimit int
	log          *zap.Logger
}

func NewCountHandler(materials *material.Usecase, counts *count.Usecase, historyLimit int, log *zap.Logger) *CountHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &CountHandler{materials: materials, counts: counts, historyLimit: historyLimit, log: log}
}

type createCountReq struct {
	Code    string `json:"code"     validate:"required,notblank,max=200"`
	Deposit string `json:"deposit"  validate:"max=200"`
	// pointer so a missing physical is told apart from a counted zero
	Physical *int64 `json:"physical" validate:"required,gte=0"`
	User     string `json:"user"     validate:"max=100"`
	// sap and name identify which option of a (code, deposit) pair was shown
	SAP  *int64  `json:"sap"`
	Name *string `json:"name" validate:"omitempty,max=200"`
}

type createCountResp struct {
	Message string `json:"message"`
	*count.RecordResult
}

// Create records a count against the (code, deposit) option the operator
// picked. The client's sap and name only select the option; the saved values
// come from the material table, and a pick that no longer exists is a 409.
func (h *CountHandler) Create(c echo.Context) error {
	var req createCountReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	ctx := c.Request().Context()

	sel, err := h.materials.Resolve(ctx, material.ResolveInput{
		Code:    req.Code,
		Deposit: req.Deposit,
		SAP:     req.SAP,
		Name:    req.Name,
	})
	if err != nil {
		switch {
		case errors.Is(err, material.ErrNoMatch), errors.Is(err, material.ErrNoDeposit):
			return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		case errors.Is(err, material.ErrOptionChanged):
			return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		}
		return internalError(c, h.log, err)
	}

	res, err := h.counts.Record(ctx, count.RecordInput{
		Code:     sel.Code,
		Name:     sel.Name,
		Deposit:  sel.Deposit,
		SAP:      sel.SAP,
		Physical: *req.Physical,
		User:     req.User,
	})
	if err != nil {
		if errors.Is(err, count.ErrInvalidInput) || errors.Is(err, count.ErrNegativePhysical) {
			return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
		}
		return internalError(c, h.log, err)
	}

	return c.JSON(http.StatusCreated, createCountResp{
		Message:      fmt.Sprintf("count saved. difference: %d (saved at %s)", res.Diff, res.Timestamp),
		RecordResult: res,
	})
}

type historyReq struct {
	Code    string `query:"code"`
	Deposit string `query:"deposit"`
	From    string `query:"from"  validate:"omitempty,datetime=2006-01-02"`
	To      string `query:"to"    validate:"omitempty,datetime=2006-01-02"`
	Limit   int    `query:"limit" validate:"gte=0,lte=100000"`
}

func (h *CountHandler) filter(req historyReq) countDomain.Filter {
	f := countDomain.Filter{
		Code:     req.Code,
		Deposit:  req.Deposit,
		DateFrom: req.From,
		Limit:    req.Limit,
	}
	// a bare date would stop at midnight; include the whole day
	if req.To != "" {
		f.DateTo = req.To + " 23:59:59"
	}
	if f.Limit == 0 {
		f.Limit = h.historyLimit
	}
	return f
}

type historyResp struct {
	Found   bool                `json:"found"`
	Message string              `json:"message,omitempty"`
	Total   int                 `json:"total"`
	Rows    []countDomain.Count `json:"rows"`
}

func (h *CountHandler) List(c echo.Context) error {
	var req historyReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	rows, err := h.counts.History(c.Request().Context(), h.filter(req))
	if err != nil {
		return internalError(c, h.log, err)
	}
	resp := historyResp{Found: len(rows) > 0, Total: len(rows), Rows: rows}
	if !resp.Found {
		resp.Message = "no records for the selected range or filter"
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *CountHandler) Export(c echo.Context) error {
	var req historyReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	rows, err := h.counts.History(c.Request().Context(), h.filter(req))
	if err != nil {
		return internalError(c, h.log, err)
	}

	var buf bytes.Buffer
	if err := count.WriteCSV(&buf, rows); err != nil {
		return internalError(c, h.log, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, count.ExportFilename))
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
