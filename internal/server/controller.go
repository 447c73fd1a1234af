package server

import (
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/ukaji3/exsheet-go/pkg/exsheet"
	"github.com/ukaji3/exsheet-go/pkg/exsheet/grid"
	"github.com/ukaji3/exsheet-go/pkg/exsheet/models"
	"github.com/ukaji3/exsheet-go/pkg/exsheet/output"
)

// ApiController serves reads and writes. Requests are handled one at a time
// since workbooks are read and rewritten as whole files.
type ApiController struct {
	// DefaultSheet is used when a request names no sheet.
	DefaultSheet string

	mu sync.Mutex
}

type ReadRequest struct {
	Path        string `json:"path" binding:"required"`
	Sheet       string `json:"sheet"`
	Range       string `json:"range"`
	StartRow    *int   `json:"startrow"`
	StartColumn *int   `json:"startcolumn"`
	EndRow      int    `json:"endrow"`
	EndColumn   int    `json:"endcolumn"`
	Header      bool   `json:"header"`
}

type WriteRequest struct {
	Path        string          `json:"path" binding:"required"`
	Sheet       string          `json:"sheet"`
	StartRow    int             `json:"startrow"`
	StartColumn int             `json:"startcolumn"`
	Data        *models.Payload `json:"data" binding:"required"`
	Insert      bool            `json:"insert"`
}

func NewApiController(defaultSheet string) *ApiController {
	return &ApiController{DefaultSheet: defaultSheet}
}

func (api *ApiController) ReadAction(c *gin.Context) {
	request := ReadRequest{}
	if err := c.ShouldBindJSON(&request); err != nil {
		fail(c, bindStatus(err), err)
		return
	}

	sel, _ := grid.SelectionFromParams(request.Range,
		orDefault(request.StartRow, 1), orDefault(request.StartColumn, 1),
		request.EndRow, request.EndColumn)

	api.mu.Lock()
	response, err := exsheet.Read(request.Path, exsheet.ReadOptions{
		Sheet:     api.sheet(request.Sheet),
		Selection: sel,
		Header:    request.Header,
	})
	api.mu.Unlock()

	if err != nil {
		fail(c, StatusFor(err), err)
		return
	}
	respond(c, http.StatusOK, response)
}

func (api *ApiController) WriteAction(c *gin.Context) {
	request := WriteRequest{}
	if err := c.ShouldBindJSON(&request); err != nil {
		fail(c, bindStatus(err), err)
		return
	}

	api.mu.Lock()
	response, err := exsheet.Write(request.Path, exsheet.WriteOptions{
		Sheet:    api.sheet(request.Sheet),
		StartRow: request.StartRow,
		StartCol: request.StartColumn,
		Data:     *request.Data,
		Insert:   request.Insert,
	})
	api.mu.Unlock()

	if err != nil {
		fail(c, StatusFor(err), err)
		return
	}
	respond(c, http.StatusOK, response)
}

func (api *ApiController) sheet(name string) string {
	if name == "" {
		return api.DefaultSheet
	}
	return name
}

// StatusFor maps an operation error onto an HTTP status code.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, exsheet.ErrFileNotFound), errors.Is(err, exsheet.ErrSheetNotFound):
		return http.StatusNotFound
	case errors.Is(err, exsheet.ErrInvalidRange),
		errors.Is(err, exsheet.ErrInvalidAddress),
		errors.Is(err, exsheet.ErrEmptyPayloadRow),
		errors.Is(err, exsheet.ErrPayloadShape):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func bindStatus(err error) int {
	if status := StatusFor(err); status != http.StatusInternalServerError {
		return status
	}
	return http.StatusBadRequest
}

func orDefault(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

func respond(c *gin.Context, status int, v interface{}) {
	body, err := output.ToJSON(v, false)
	if err != nil {
		status = http.StatusInternalServerError
		body, _ = output.FailureToJSON(err, false)
	}
	c.Data(status, "application/json; charset=utf-8", body)
}

func fail(c *gin.Context, status int, err error) {
	respond(c, status, output.NewFailure(err))
}
