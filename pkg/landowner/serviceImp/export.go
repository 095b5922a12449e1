package serviceImp

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"landlink/entities"
)

const listingSheet = "Listings"

var listingHeader = []any{"Title", "Location", "Area (acres)", "Price per acre", "Soil type", "Water availability", "Status", "Listed at"}

// WriteListings renders lands as a single-sheet workbook.
func WriteListings(w io.Writer, lands []entities.Land) error {
	x := excelize.NewFile()
	defer x.Close()

	if err := x.SetSheetName("Sheet1", listingSheet); err != nil {
		return err
	}
	if err := x.SetSheetRow(listingSheet, "A1", &listingHeader); err != nil {
		return err
	}
	for i, l := range lands {
		row := []any{l.Title, l.Location, l.Area, nil, deref(l.SoilType), deref(l.WaterAvailability), l.Status, l.CreatedAt.Format("2006-01-02")}
		if l.PricePerAcre != nil {
			row[3] = *l.PricePerAcre
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := x.SetSheetRow(listingSheet, cell, &row); err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
	}
	_, err := x.WriteTo(w)
	return err
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
