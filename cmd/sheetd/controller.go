package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/berejant/gridsheet/internal/grid"
	"github.com/berejant/gridsheet/internal/sheets"
	"github.com/berejant/gridsheet/internal/webhook"
)

// cellParams binds the {sheet}/{pos} route segments, matching
// ApiController.go's CellEndpointParams.
type cellParams struct {
	SheetID string `uri:"sheet" binding:"required"`
	Pos     string `uri:"pos" binding:"required"`
}

type sheetParams struct {
	SheetID string `uri:"sheet" binding:"required"`
}

// controller exposes the Grid over HTTP, grounded on ApiController.go: one
// method per route, uri binding first, JSON body binding second, then a
// response status chosen from the resulting error.
type controller struct {
	store      *sheets.Store
	dispatcher *webhook.Dispatcher
}

func newController(store *sheets.Store, dispatcher *webhook.Dispatcher) *controller {
	return &controller{store: store, dispatcher: dispatcher}
}

func (ctl *controller) getCell(c *gin.Context) {
	var params cellParams
	if err := c.ShouldBindUri(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pos, err := grid.ParsePosition(params.Pos)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var response CellResponse
	err = ctl.store.WithExistingSheet(params.SheetID, func(g *grid.Grid) {
		cell, _ := g.GetCell(pos)
		response = newCellResponse(pos, cell)
	})

	if errors.Is(err, sheets.ErrSheetNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, response)
}

func (ctl *controller) setCell(c *gin.Context) {
	var params cellParams
	var request SetCellRequest

	if err := c.ShouldBindUri(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pos, err := grid.ParsePosition(params.Pos)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var response CellResponse
	var setErr error
	changed := map[grid.Position]grid.Value{}

	ctl.store.WithSheet(params.SheetID, func(g *grid.Grid) {
		setErr = g.SetCell(pos, request.Value)
		cell, _ := g.GetCell(pos)
		response = newCellResponse(pos, cell)
		if setErr == nil && cell != nil {
			changed[pos] = cell.GetValue()
		}
	})

	if setErr != nil {
		response.Value = setErr.Error()
		c.JSON(http.StatusUnprocessableEntity, response)
		return
	}

	ctl.dispatcher.Notify(params.SheetID, changed, func(grid.Position) string { return response.Text })
	c.JSON(http.StatusCreated, response)
}

func (ctl *controller) clearCell(c *gin.Context) {
	var params cellParams
	if err := c.ShouldBindUri(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pos, err := grid.ParsePosition(params.Pos)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err = ctl.store.WithExistingSheet(params.SheetID, func(g *grid.Grid) {
		_ = g.ClearCell(pos)
	})
	if errors.Is(err, sheets.ErrSheetNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (ctl *controller) getSheet(c *gin.Context) {
	var params sheetParams
	if err := c.ShouldBindUri(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var response SheetResponse
	err := ctl.store.WithExistingSheet(params.SheetID, func(g *grid.Grid) {
		rows, cols := g.GetPrintableSize()
		response.Rows, response.Cols = rows, cols
		for r := 0; r < rows; r++ {
			for cc := 0; cc < cols; cc++ {
				pos := grid.Position{Row: r, Col: cc}
				cell, _ := g.GetCell(pos)
				if cell == nil {
					continue
				}
				response.Cells = append(response.Cells, newCellResponse(pos, cell))
			}
		}
	})

	if errors.Is(err, sheets.ErrSheetNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, response)
}

func (ctl *controller) subscribe(c *gin.Context) {
	var params cellParams
	var request SubscribeRequest

	if err := c.ShouldBindUri(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pos, err := grid.ParsePosition(params.Pos)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctl.dispatcher.Subscribe(params.SheetID, pos, request.WebhookURL)
	c.Status(http.StatusNoContent)
}
