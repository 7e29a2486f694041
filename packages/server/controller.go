package server

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/Alexsander-ggo/Exsel/packages/spreadsheet"
)

// ApiController serves one sheet. every action holds mu for its whole
// duration; reading a value memoizes it, so reads take the lock too.
type ApiController struct {
	mu     sync.Mutex
	sheet  *spreadsheet.Sheet
	logger *slog.Logger
}

type CellEndpointParams struct {
	CellId string `uri:"cell_id" binding:"required"`
}

type SetCellRequest struct {
	Text *string `json:"text" binding:"required"`
}

type CellResponse struct {
	Cell  string `json:"cell"`
	Text  string `json:"text"`
	Value string `json:"value"`
}

func NewApiController(sheet *spreadsheet.Sheet, logger *slog.Logger) *ApiController {
	return &ApiController{
		sheet:  sheet,
		logger: logger,
	}
}

func (api *ApiController) GetCellAction(c *gin.Context) {
	params := CellEndpointParams{}
	if err := c.ShouldBindUri(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	api.mu.Lock()
	defer api.mu.Unlock()

	response, err := api.describe(params.CellId)
	if err != nil {
		api.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (api *ApiController) SetCellAction(c *gin.Context) {
	params := CellEndpointParams{}
	request := SetCellRequest{}

	err := c.ShouldBindUri(&params)
	if err == nil {
		err = c.ShouldBindJSON(&request)
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	api.mu.Lock()
	defer api.mu.Unlock()

	pos := spreadsheet.PositionFromString(params.CellId)
	if err := api.sheet.SetCell(pos, *request.Text); err != nil {
		api.logger.Debug("cell update rejected",
			slog.String("cell", params.CellId),
			slog.String("error", err.Error()))
		api.respondError(c, err)
		return
	}

	response, err := api.describe(params.CellId)
	if err != nil {
		api.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response)
}

func (api *ApiController) ClearCellAction(c *gin.Context) {
	params := CellEndpointParams{}
	if err := c.ShouldBindUri(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	api.mu.Lock()
	defer api.mu.Unlock()

	if err := api.sheet.ClearCell(spreadsheet.PositionFromString(params.CellId)); err != nil {
		api.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (api *ApiController) GetValuesAction(c *gin.Context) {
	api.dump(c, api.sheet.PrintValues)
}

func (api *ApiController) GetTextsAction(c *gin.Context) {
	api.dump(c, api.sheet.PrintTexts)
}

func (api *ApiController) dump(c *gin.Context, write func(io.Writer) error) {
	api.mu.Lock()
	defer api.mu.Unlock()

	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		api.respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/plain; charset=utf-8", buf.Bytes())
}

// describe reads the cell named by id. absent cells read as empty. callers
// hold mu.
func (api *ApiController) describe(id string) (*CellResponse, error) {
	cell, err := api.sheet.Cell(spreadsheet.PositionFromString(id))
	if err != nil {
		return nil, err
	}

	response := &CellResponse{Cell: id}
	if cell != nil {
		response.Text = cell.Text()
		response.Value = spreadsheet.FormatValue(cell.Value())
	}
	return response, nil
}

func (api *ApiController) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	var appErr *spreadsheet.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case spreadsheet.OutOfRange:
			status = http.StatusBadRequest
		case spreadsheet.InvalidArgument, spreadsheet.FailedPrecondition:
			status = http.StatusUnprocessableEntity
		}
	}

	if status == http.StatusInternalServerError {
		api.logger.Error("request failed", slog.String("error", err.Error()))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
