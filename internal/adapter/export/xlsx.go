// Package export renders reservations as spreadsheets for administrators.
package export

import (
	"fmt"
	"io"

	"github.com/srgjo27/hotel_booking/internal/core/services"
	"github.com/xuri/excelize/v2"
)

const SheetName = "Reservations"

var Columns = []string{
	"ID",
	"Room ID",
	"Room Number",
	"Room Type",
	"Occupant",
	"Check-in",
	"Check-out",
	"Status",
	"Price",
	"Discount %",
	"Check-in Confirmed",
	"Check-out Confirmed",
}

type ReservationWriter struct {
	file *excelize.File
	row  int
}

func NewReservationWriter() (*ReservationWriter, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	w := &ReservationWriter{file: f, row: 1}
	if err := w.writeHeader(); err != nil {
		_ = f.Close()
		return nil, err
	}

	return w, nil
}

func (w *ReservationWriter) writeHeader() error {
	if err := w.writeRow(toCells(Columns)); err != nil {
		return err
	}

	style, err := w.file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil
	}

	start, _ := excelize.CoordinatesToCellName(1, 1)
	end, _ := excelize.CoordinatesToCellName(len(Columns), 1)
	_ = w.file.SetCellStyle(SheetName, start, end, style)

	return nil
}

func (w *ReservationWriter) Write(v services.ReservationView) error {
	return w.writeRow([]any{
		v.ID,
		v.RoomID,
		v.RoomNumber,
		v.RoomType,
		v.OccupantID,
		v.CheckInDate,
		v.CheckOutDate,
		v.Status,
		v.Price,
		v.DiscountPercent,
		v.CheckInConfirmedByAdmin,
		v.CheckOutConfirmedByAdmin,
	})
}

func (w *ReservationWriter) writeRow(values []any) error {
	for i, val := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, w.row)
		if err != nil {
			return err
		}
		if err := w.file.SetCellValue(SheetName, cell, val); err != nil {
			return fmt.Errorf("write cell %s: %w", cell, err)
		}
	}

	w.row++
	return nil
}

func (w *ReservationWriter) WriteTo(out io.Writer) (int64, error) {
	return w.file.WriteTo(out)
}

func (w *ReservationWriter) Close() error {
	return w.file.Close()
}

// WriteReservations streams a complete workbook for views to out.
func WriteReservations(out io.Writer, views []services.ReservationView) error {
	w, err := NewReservationWriter()
	if err != nil {
		return err
	}
	defer w.Close()

	for _, v := range views {
		if err := w.Write(v); err != nil {
			return err
		}
	}

	if _, err := w.WriteTo(out); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}

	return nil
}

func toCells(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
