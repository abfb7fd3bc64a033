package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/report"
	"github.com/jung-kurt/gofpdf"
)

var tableHeader = []string{"Date", "Clock in", "Clock out", "Status", "Late", "Early", "Overtime", "Night"}

// column widths in mm, matching tableHeader
var columnWidths = []float64{24, 20, 20, 46, 18, 18, 22, 18}

func clockText(t *time.Time, loc *time.Location) string {
	if t == nil {
		return "-"
	}
	return t.In(loc).Format("15:04")
}

func recordRow(rec attendance.Record, loc *time.Location) []string {
	return []string{
		rec.Date.Format("2006-01-02"),
		clockText(rec.ClockIn, loc),
		clockText(rec.ClockOut, loc),
		string(rec.Status),
		strconv.Itoa(rec.LateMinutes),
		strconv.Itoa(rec.EarlyLeaveMinutes),
		strconv.Itoa(rec.OvertimeMinutes),
		strconv.Itoa(rec.NightShiftMinutes),
	}
}

func renderPDF(r report.MonthlyReport, loc *time.Location) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Attendance %s %s", r.Employee.EmployeeCode, r.Month), false)
	pdf.SetCreationDate(r.GeneratedAt)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Monthly Attendance Report")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Employee: %s (%s)", r.Employee.FullName, r.Employee.EmployeeCode))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Month: %s", r.Month))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Submission: %s", r.Summary.SubmissionStatus))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range tableHeader {
		pdf.CellFormat(columnWidths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, rec := range r.Records {
		for i, v := range recordRow(rec, loc) {
			align := "R"
			if i < 4 {
				align = "L"
			}
			pdf.CellFormat(columnWidths[i], 6, v, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 7, "Totals")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 10)
	totals := []string{
		fmt.Sprintf("Days recorded: %d (complete: %d)", r.Summary.Days, r.Summary.CompleteDays),
		fmt.Sprintf("Working hours: %s", attendance.Hours(r.Summary.WorkingMinutes).StringFixed(2)),
		fmt.Sprintf("Overtime hours: %s", attendance.Hours(r.Summary.OvertimeMinutes).StringFixed(2)),
		fmt.Sprintf("Night shift hours: %s", attendance.Hours(r.Summary.NightShiftMinutes).StringFixed(2)),
		fmt.Sprintf("Late: %d min, Early leave: %d min", r.Summary.LateMinutes, r.Summary.EarlyLeaveMinutes),
	}
	for _, line := range totals {
		pdf.Cell(0, 6, line)
		pdf.Ln(6)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.Cell(0, 5, "Generated at "+r.GeneratedAt.In(loc).Format(time.RFC3339))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func renderCSV(r report.MonthlyReport, loc *time.Location) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := append([]string{"Employee code"}, tableHeader...)
	header = append(header, "Working")
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, rec := range r.Records {
		row := append([]string{r.Employee.EmployeeCode}, recordRow(rec, loc)...)
		row = append(row, strconv.Itoa(rec.WorkingMinutes))
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	s := r.Summary
	total := []string{
		r.Employee.EmployeeCode, "TOTAL", "", "", string(s.SubmissionStatus),
		strconv.Itoa(s.LateMinutes),
		strconv.Itoa(s.EarlyLeaveMinutes),
		strconv.Itoa(s.OvertimeMinutes),
		strconv.Itoa(s.NightShiftMinutes),
		strconv.Itoa(s.WorkingMinutes),
	}
	if err := w.Write(total); err != nil {
		return nil, fmt.Errorf("failed to write csv totals: %w", err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
