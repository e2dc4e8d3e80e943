package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/renewables/energy-dashboard/internal/core/domain"
)

const sheetName = "Projects"

var columnWidths = []float64{30, 25, 15, 15, 25, 15, 10, 15, 15}

// energyTypeFills colour the Energy Type cell. Types without an entry keep
// the plain bordered style.
var energyTypeFills = map[domain.EnergyType]string{
	domain.EnergySolar:      "FFCC00",
	domain.EnergyWind:       "87CEEB",
	domain.EnergyHydro:      "00BFFF",
	domain.EnergyBiomass:    "90EE90",
	domain.EnergyGeothermal: "E6E6FA",
}

var thinBorder = []excelize.Border{
	{Type: "left", Color: "000000", Style: 1},
	{Type: "top", Color: "000000", Style: 1},
	{Type: "right", Color: "000000", Style: 1},
	{Type: "bottom", Color: "000000", Style: 1},
}

// WriteExcel writes a single-sheet workbook with a styled header row.
func WriteExcel(w io.Writer, projects []domain.Project) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}

	for i, width := range columnWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheetName, col, col, width); err != nil {
			return err
		}
	}

	styles, err := newStyles(f)
	if err != nil {
		return err
	}

	for i, h := range Header {
		if err := setCell(f, i+1, 1, h, styles.header); err != nil {
			return err
		}
	}

	for r, p := range projects {
		row := r + 2
		values := []any{p.Name, p.Owner, string(p.EnergyType), p.Capacity, p.Location, string(p.Status), p.Year, nil, nil}
		if p.Latitude != nil {
			values[7] = *p.Latitude
		}
		if p.Longitude != nil {
			values[8] = *p.Longitude
		}

		for c, v := range values {
			style := styles.cell
			if c == 2 {
				if s, ok := styles.fills[p.EnergyType]; ok {
					style = s
				}
			}
			if err := setCell(f, c+1, row, v, style); err != nil {
				return err
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

type sheetStyles struct {
	header int
	cell   int
	fills  map[domain.EnergyType]int
}

func newStyles(f *excelize.File) (sheetStyles, error) {
	var s sheetStyles
	var err error

	s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"D3D3D3"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorder,
	})
	if err != nil {
		return s, err
	}

	s.cell, err = f.NewStyle(&excelize.Style{Border: thinBorder})
	if err != nil {
		return s, err
	}

	s.fills = make(map[domain.EnergyType]int, len(energyTypeFills))
	for t, color := range energyTypeFills {
		id, err := f.NewStyle(&excelize.Style{
			Fill:   excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}},
			Border: thinBorder,
		})
		if err != nil {
			return s, err
		}
		s.fills[t] = id
	}
	return s, nil
}

// setCell styles the cell and writes v unless it is nil, so absent values
// stay empty but still carry a border.
func setCell(f *excelize.File, col, row int, v any, style int) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if v != nil {
		if err := f.SetCellValue(sheetName, cell, v); err != nil {
			return err
		}
	}
	return f.SetCellStyle(sheetName, cell, cell, style)
}
