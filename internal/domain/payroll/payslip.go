package payroll

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

// RenderPayslip lays out one salary record as an A4 PDF.
func RenderPayslip(rec SalaryRecord, emp Employee) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Payslip %s %s %d", rec.EmployeeCode, rec.Month, rec.Year), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "PAYSLIP", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("Salary period: %s %d", rec.Month, rec.Year), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	section(pdf, "Employee")
	row(pdf, "Employee ID", emp.Code)
	row(pdf, "Name", emp.Name)
	row(pdf, "Email", emp.Email)
	row(pdf, "Department", orNA(emp.Department))
	row(pdf, "Designation", orNA(emp.Designation))
	pdf.Ln(3)

	section(pdf, "Earnings")
	amount(pdf, "Basic", rec.Basic)
	amount(pdf, "HRA", rec.HRA)
	amount(pdf, "DA", rec.DA)
	amount(pdf, "Allowances", rec.Allowances)
	total(pdf, "Gross salary", rec.GrossSalary)
	pdf.Ln(3)

	section(pdf, "Deductions")
	amount(pdf, "PF", rec.PF)
	amount(pdf, "Tax", rec.Tax)
	amount(pdf, "Other deductions", rec.OtherDeductions)
	if rec.LeaveDeduction.IsPositive() {
		amount(pdf, fmt.Sprintf("Unpaid leave (%s days)", rec.LeaveDays.String()), rec.LeaveDeduction)
	}
	deductions := rec.PF.Add(rec.Tax).Add(rec.OtherDeductions).Add(rec.LeaveDeduction)
	total(pdf, "Total deductions", deductions)
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(120, 9, "Net salary", "TB", 0, "L", false, 0, "")
	pdf.CellFormat(0, 9, rec.NetSalary.StringFixed(2), "TB", 1, "R", false, 0, "")

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(0, 5, "This is a computer generated payslip and does not require a signature.", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render payslip: %w", err)
	}
	return buf.Bytes(), nil
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, title, "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
}

func row(pdf *gofpdf.Fpdf, label, value string) {
	pdf.CellFormat(50, 6, label+":", "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 6, value, "", 1, "L", false, 0, "")
}

func amount(pdf *gofpdf.Fpdf, label string, value decimal.Decimal) {
	pdf.CellFormat(120, 6, label, "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 6, value.StringFixed(2), "", 1, "R", false, 0, "")
}

func total(pdf *gofpdf.Fpdf, label string, value decimal.Decimal) {
	pdf.SetFont("Helvetica", "B", 11)
	amount(pdf, label, value)
	pdf.SetFont("Helvetica", "", 11)
}

func orNA(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}
