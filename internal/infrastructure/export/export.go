// Package export renders the project collection as downloadable files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/renewables/energy-dashboard/internal/core/domain"
)

const (
	ContentTypeCSV  = "text/csv"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Header is the fixed column order shared by every format.
var Header = []string{
	"Name", "Owner", "Energy Type", "Capacity (MW)", "Location", "Status", "Year", "Latitude", "Longitude",
}

// Filename returns projects_YYYY-MM-DD.<ext> for the UTC date of now.
func Filename(ext string, now time.Time) string {
	return fmt.Sprintf("projects_%s.%s", now.UTC().Format("2006-01-02"), ext)
}

// WriteCSV writes one header row and one row per project. Quoting follows
// RFC 4180; absent coordinates are empty cells.
func WriteCSV(w io.Writer, projects []domain.Project) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, p := range projects {
		if err := cw.Write(record(p)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func record(p domain.Project) []string {
	return []string{
		p.Name,
		p.Owner,
		string(p.EnergyType),
		formatFloat(p.Capacity),
		p.Location,
		string(p.Status),
		strconv.Itoa(p.Year),
		optionalFloat(p.Latitude),
		optionalFloat(p.Longitude),
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func optionalFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return formatFloat(*f)
}
