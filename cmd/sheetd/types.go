package main

import "github.com/berejant/gridsheet/internal/grid"

// CellResponse mirrors contracts.Cell's {Value, Result} shape from the
// teacher, renamed to the Position-keyed vocabulary this repo uses.
type CellResponse struct {
	Position string `json:"position"`
	Text     string `json:"text"`
	Value    string `json:"value"`
}

func newCellResponse(pos grid.Position, cell *grid.Cell) CellResponse {
	if cell == nil {
		return CellResponse{Position: pos.String()}
	}
	return CellResponse{
		Position: pos.String(),
		Text:     cell.GetText(),
		Value:    cell.GetValue().String(),
	}
}

// SheetResponse mirrors contracts.CellList: a snapshot of every populated
// cell in the sheet's printable rectangle.
type SheetResponse struct {
	Rows  int            `json:"rows"`
	Cols  int            `json:"cols"`
	Cells []CellResponse `json:"cells"`
}

// SetCellRequest is the JSON body controller.setCell expects, matching
// ApiController.go's SetCellRequest field name.
type SetCellRequest struct {
	Value string `json:"value" binding:"required"`
}

// SubscribeRequest is the JSON body controller.subscribe expects.
type SubscribeRequest struct {
	WebhookURL string `json:"webhook_url"`
}
