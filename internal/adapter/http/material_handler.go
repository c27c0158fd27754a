package http

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"bicocont/internal/usecase/material"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const uploadField = "file"

type MaterialHandler struct {
	uc        *material.Usecase
	maxUpload int64
	log       *zap.Logger
}

func NewMaterialHandler(uc *material.Usecase, maxUpload int64, log *zap.Logger) *MaterialHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &MaterialHandler{uc: uc, maxUpload: maxUpload, log: log}
}

type lookupReq struct {
	Query        string `query:"q"             validate:"max=200"`
	Code         string `query:"code"          validate:"max=200"`
	DepositIndex int    `query:"deposit_index" validate:"gte=0"`
}

type lookupResp struct {
	Found   bool   `json:"found"`
	Message string `json:"message,omitempty"`
	*material.LookupResult
}

func (h *MaterialHandler) Lookup(c echo.Context) error {
	var req lookupReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	res, err := h.uc.Lookup(c.Request().Context(), material.LookupInput{
		Query:        req.Query,
		Code:         req.Code,
		DepositIndex: req.DepositIndex,
	})
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, lookupResp{Found: true, LookupResult: res})
	case errors.Is(err, material.ErrNoMatch):
		return c.JSON(http.StatusOK, lookupResp{
			Message: "no material matches this code or name; import a material base or check the spelling",
		})
	case errors.Is(err, material.ErrNoDeposit):
		return c.JSON(http.StatusOK, lookupResp{Message: err.Error(), LookupResult: res})
	case errors.Is(err, material.ErrInvalidSelection):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: []FieldError{{Field: "deposit_index", Message: fmt.Sprintf("must be less than %d", len(res.Deposits))}},
		})
	default:
		return internalError(c, h.log, err)
	}
}

type importResp struct {
	Message string `json:"message"`
	*material.ImportResult
}

func (h *MaterialHandler) Import(c echo.Context) error {
	fh, ok, err := h.upload(c)
	if !ok {
		return err
	}
	f, err := fh.Open()
	if err != nil {
		return badRequest(c, "cannot read uploaded file")
	}
	defer f.Close()

	res, err := h.uc.Import(c.Request().Context(), fh.Filename, f)
	if err != nil {
		var pe *material.ParseError
		if errors.As(err, &pe) {
			return badRequest(c, "cannot read file: "+pe.Error())
		}
		return internalError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, importResp{Message: "material base updated", ImportResult: res})
}

func (h *MaterialHandler) Preview(c echo.Context) error {
	rows := material.DefaultPreviewRows
	if err := echo.QueryParamsBinder(c).Int("rows", &rows).BindError(); err != nil {
		return badRequest(c, "rows must be an integer")
	}
	if rows < 1 || rows > 100 {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: []FieldError{{Field: "rows", Message: "must be between 1 and 100"}},
		})
	}

	fh, ok, err := h.upload(c)
	if !ok {
		return err
	}
	f, err := fh.Open()
	if err != nil {
		return badRequest(c, "cannot read uploaded file")
	}
	defer f.Close()

	res, err := material.Preview(fh.Filename, f, rows)
	if err != nil {
		var pe *material.ParseError
		if errors.As(err, &pe) {
			return badRequest(c, "cannot read file: "+pe.Error())
		}
		return internalError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, res)
}

// upload returns the multipart file, or writes the error response and false.
func (h *MaterialHandler) upload(c echo.Context) (fh *multipart.FileHeader, ok bool, err error) {
	fh, err = c.FormFile(uploadField)
	if err != nil {
		return nil, false, badRequest(c, `missing multipart field "file"`)
	}
	if h.maxUpload > 0 && fh.Size > h.maxUpload {
		return nil, false, c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{
			Error: fmt.Sprintf("file exceeds %d bytes", h.maxUpload),
		})
	}
	return fh, true, nil
}
