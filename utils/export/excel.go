package export

import (
	"fmt"
	"fooddonation-backend/models"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// ContentType of the workbooks produced by ExcelWriter
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Sheet names, one per report facet
const (
	DonationsSheet = "Donations"
	FoodSheet      = "Food Items"
	NGOsSheet      = "NGOs"
)

const defaultSheet = "Sheet1"

// ExcelWriter renders custom reports as xlsx workbooks
type ExcelWriter struct{}

func NewExcelWriter() *ExcelWriter {
	return &ExcelWriter{}
}

type sheet struct {
	name   string
	header []interface{}
	rows   [][]interface{}
}

// WriteCustomReport writes one sheet per facet present in report
func (e *ExcelWriter) WriteCustomReport(report *models.CustomReport, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	sheets := buildSheets(report)
	if len(sheets) == 0 {
		sheets = []sheet{{name: "Report", header: []interface{}{"No metrics requested"}}}
	}

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, s.name); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			return err
		}
		if err := writeRows(f, s); err != nil {
			return fmt.Errorf("write sheet %s: %w", s.name, err)
		}
	}
	f.SetActiveSheet(0)

	return f.Write(w)
}

func writeRows(f *excelize.File, s sheet) error {
	rows := append([][]interface{}{s.header}, s.rows...)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(s.name, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func buildSheets(report *models.CustomReport) []sheet {
	var sheets []sheet

	if report.Donations != nil {
		s := sheet{
			name:   DonationsSheet,
			header: []interface{}{"ID", "Donor", "Donation Date", "Status", "NGO", "Items", "Total Quantity", "Carbon Footprint"},
		}
		for _, d := range *report.Donations {
			ngo := ""
			if d.NGO != nil {
				ngo = d.NGO.Name
			}
			items := make([]string, 0, len(d.FoodItems))
			for _, item := range d.FoodItems {
				items = append(items, fmt.Sprintf("%s (%g %s)", item.ItemName, item.Qty(), item.Unit))
			}
			s.rows = append(s.rows, []interface{}{
				d.ID, d.DonorName, formatTime(d.DonationDate), string(d.Status), ngo,
				strings.Join(items, ", "), d.TotalQuantity(), d.CarbonFootprint,
			})
		}
		sheets = append(sheets, s)
	}

	if report.FoodItems != nil {
		s := sheet{
			name:   FoodSheet,
			header: []interface{}{"ID", "Name", "Category", "Quantity", "Unit", "Expiry Date", "Status"},
		}
		for i := range *report.FoodItems {
			item := &(*report.FoodItems)[i]
			s.rows = append(s.rows, []interface{}{
				item.ID, item.Name, string(item.Category), item.Qty(), item.Unit, formatTime(item.ExpiryDate), string(item.Status),
			})
		}
		sheets = append(sheets, s)
	}

	if report.NGOs != nil {
		s := sheet{
			name:   NGOsSheet,
			header: []interface{}{"ID", "Name", "Email", "Phone", "Registration Number", "Status", "Service Areas", "Beneficiaries"},
		}
		for _, n := range *report.NGOs {
			s.rows = append(s.rows, []interface{}{
				n.ID, n.Name, n.Email, n.Phone, n.RegistrationNumber, string(n.Status),
				strings.Join(n.ServiceAreas, ", "), n.BeneficiariesCount,
			})
		}
		sheets = append(sheets, s)
	}

	return sheets
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
