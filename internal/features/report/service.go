package report

import (
	"context"
	"fmt"
	"time"

	"go-marketplace/internal/features/booking"

	"github.com/xuri/excelize/v2"
)

type ReportService interface {
	ExportBookings(ctx context.Context) ([]byte, string, error)
}

type ReportServiceImpl struct {
	bookings booking.BookingRepository
}

func NewReportService(bookings booking.BookingRepository) ReportService {
	return &ReportServiceImpl{
		bookings: bookings,
	}
}

var bookingColumns = []string{"ID", "Customer", "Professional", "Service", "Status", "Scheduled At", "Created At"}

// ExportBookings renders every booking into an xlsx workbook and returns the
// file bytes plus a timestamped filename.
func (s *ReportServiceImpl) ExportBookings(ctx context.Context) ([]byte, string, error) {
	items, err := s.bookings.ListAll(ctx)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Bookings"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	for i, col := range bookingColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, col)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for rowIdx, b := range items {
		values := []interface{}{
			b.ID.Hex(),
			b.CustomerID.Hex(),
			b.ProfessionalID.Hex(),
			b.Service,
			string(b.Status),
			b.ScheduledAt.Format("2006-01-02 15:04:05"),
			b.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for colIdx, val := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, val)
		}
	}

	for i := range bookingColumns {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, col, col, 22)
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("bookings_%s.xlsx", time.Now().Format("20060102_150405"))
	return buffer.Bytes(), filename, nil
}
