package handler

import (
	"fmt"
	"net/http"
	"time"

	"esep-backend/internal/domain"
	"github.com/xuri/excelize/v2"
)

// export serializes the currently filtered registration list to xlsx.
// The same search/category/panchayath query parameters as the list apply.
func (h RegistrationHandler) export(w http.ResponseWriter, r *http.Request) {
	items, err := h.Store.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load registrations")
		return
	}
	filtered := domain.FilterRegistrations(items, filterFromQuery(r))

	data, err := exportRegistrationsXLSX(filtered)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to export registrations")
		return
	}

	filename := fmt.Sprintf("registrations_%s.xlsx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = w.Write(data)
}

func exportRegistrationsXLSX(items []domain.Registration) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Registrations"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	header := []string{"Customer ID", "Name", "Category", "Mobile", "Panchayath", "Ward", "Address", "Agent Details", "Status", "Fee Amount", "Registration Date"}
	for c, v := range header {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		_ = f.SetCellValue(sheet, cell, v)
	}
	for r, reg := range items {
		row := r + 2
		agent := ""
		if reg.AgentDetails != nil {
			agent = *reg.AgentDetails
		}
		values := []any{
			reg.CustomerID,
			reg.Name,
			reg.Category,
			reg.Mobile,
			reg.Panchayath,
			reg.Ward,
			reg.Address,
			agent,
			string(reg.Status),
			reg.FeeAmount,
			reg.CreatedAt.Format("02/01/2006"),
		}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 20)
	_ = f.SetColWidth(sheet, "B", "B", 24)
	_ = f.SetColWidth(sheet, "C", "C", 24)
	_ = f.SetColWidth(sheet, "D", "D", 14)
	_ = f.SetColWidth(sheet, "E", "E", 18)
	_ = f.SetColWidth(sheet, "F", "F", 10)
	_ = f.SetColWidth(sheet, "G", "G", 32)
	_ = f.SetColWidth(sheet, "H", "H", 24)
	_ = f.SetColWidth(sheet, "I", "I", 12)
	_ = f.SetColWidth(sheet, "J", "J", 12)
	_ = f.SetColWidth(sheet, "K", "K", 16)

	style, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#1F2937"}, Pattern: 1},
	})
	_ = f.SetCellStyle(sheet, "A1", "K1", style)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
