// Package export renders reports as spreadsheets.
package export

import (
	"fmt"
	"io"
	"time"

	"paxala/internal/model"

	"github.com/xuri/excelize/v2"
)

const paymentsSheet = "Payments"

var paymentHeaders = []string{"#", "Milestone", "Price", "Status", "Paid amount", "Paid on", "Deadline", "Visible"}

// WritePayments writes one row per milestone followed by the project totals.
func WritePayments(w io.Writer, project *model.Project, milestones []model.Milestone) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", paymentsSheet); err != nil {
		return err
	}

	if err := f.SetCellValue(paymentsSheet, "A1", project.Name); err != nil {
		return err
	}
	if err := f.SetSheetRow(paymentsSheet, "A3", &paymentHeaders); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(paymentsSheet, "A1", "A1", bold); err != nil {
		return err
	}
	if err := f.SetCellStyle(paymentsSheet, "A3", "H3", bold); err != nil {
		return err
	}

	row := 4
	for _, m := range milestones {
		values := []interface{}{
			m.Order + 1,
			m.Title,
			floatOrBlank(m.Price),
			string(m.PaymentStatus),
			floatOrBlank(m.PaymentAmount),
			dateOrBlank(m.PaymentDate),
			dateOrBlank(m.Deadline),
			m.IsVisible,
		}
		if err := f.SetSheetRow(paymentsSheet, fmt.Sprintf("A%d", row), &values); err != nil {
			return err
		}
		row++
	}

	summary := model.SummarizePayments(milestones)
	row++
	totals := [][]interface{}{
		{"Total price", summary.Priced},
		{"Total paid", summary.Paid},
		{"Outstanding", summary.Outstanding},
	}
	for _, t := range totals {
		if err := f.SetSheetRow(paymentsSheet, fmt.Sprintf("B%d", row), &t); err != nil {
			return err
		}
		if err := f.SetCellStyle(paymentsSheet, fmt.Sprintf("B%d", row), fmt.Sprintf("B%d", row), bold); err != nil {
			return err
		}
		row++
	}

	if err := f.SetColWidth(paymentsSheet, "B", "B", 36); err != nil {
		return err
	}

	_, err = f.WriteTo(w)
	return err
}

func floatOrBlank(v *float64) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

func dateOrBlank(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format("2006-01-02")
}
