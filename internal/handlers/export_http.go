package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
)

var exportHeaders = []string{"ID", "Name", "Description", "Price", "StockQuantity", "SoldQuantity", "ImageURL"}

// Export sends the catalog as a spreadsheet.
func (h *ProductsHTTP) Export(c *gin.Context) {
	products, err := h.S.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		writeError(c, err)
		return
	}
	header := sheet.AddRow()
	for _, name := range exportHeaders {
		header.AddCell().SetString(name)
	}
	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetInt(p.ID)
		row.AddCell().SetString(p.Name)
		row.AddCell().SetString(p.Description)
		row.AddCell().SetString(p.Price.StringFixed(2))
		row.AddCell().SetInt(p.StockQuantity)
		row.AddCell().SetInt(p.SoldQuantity)
		row.AddCell().SetString(p.ImageURL)
	}

	c.Header("Content-Disposition", "attachment; filename=products.xlsx")
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Status(http.StatusOK)
	if err := file.Write(c.Writer); err != nil {
		// headers are gone already, all that is left is the log
		slog.Error("write product export", "error", err)
	}
}
