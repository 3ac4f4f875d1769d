// Package dailymet reads daily meteorological records and writes the
// resulting snow mass balance terms as CSV.
package dailymet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/chrissnell/snowbalance/pkg/snowpack"
)

// DateLayout is the date format of the date column
const DateLayout = "2006-01-02"

// Input column names
const (
	ColumnDate              = "date"
	ColumnTempMin           = "tmin"
	ColumnTempMax           = "tmax"
	ColumnPrecipitation     = "precipitation"
	ColumnSnowCoverPrevious = "snowcover_previous"
)

var (
	// ErrInvalidType is returned for a field that does not hold a number
	// (or a date, in the date column)
	ErrInvalidType = errors.New("invalid field type")

	// ErrMissingColumn is returned when the header lacks a required column
	ErrMissingColumn = errors.New("missing column")

	// ErrDuplicateColumn is returned when the header names a column twice
	ErrDuplicateColumn = errors.New("duplicate column")
)

// Record is one day of input
type Record struct {
	Date time.Time
	snowpack.Day
}

// ReadCSV reads daily records. The first row is a header naming the
// columns in any order; column names are case-insensitive.
func ReadCSV(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("no header row: %w", ErrMissingColumn)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		if _, ok := columns[name]; ok {
			return nil, fmt.Errorf("%q: %w", name, ErrDuplicateColumn)
		}
		columns[name] = i
	}
	for _, name := range []string{ColumnDate, ColumnTempMin, ColumnTempMax, ColumnPrecipitation, ColumnSnowCoverPrevious} {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("%q: %w", name, ErrMissingColumn)
		}
	}

	var records []Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		line, _ := reader.FieldPos(0)

		rec, err := parseRecord(row, columns)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}

	return records, nil
}

func parseRecord(row []string, columns map[string]int) (Record, error) {
	var rec Record

	date := strings.TrimSpace(row[columns[ColumnDate]])
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return rec, fmt.Errorf("column %s: %q is not a %s date: %w", ColumnDate, date, DateLayout, ErrInvalidType)
	}
	rec.Date = t

	fields := []struct {
		column string
		dst    *float64
	}{
		{ColumnTempMin, &rec.TempMin},
		{ColumnTempMax, &rec.TempMax},
		{ColumnPrecipitation, &rec.Precipitation},
		{ColumnSnowCoverPrevious, &rec.SnowCoverPrevious},
	}
	for _, f := range fields {
		raw := strings.TrimSpace(row[columns[f.column]])
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return rec, fmt.Errorf("column %s: %q is not a number: %w", f.column, raw, ErrInvalidType)
		}
		*f.dst = v
	}

	return rec, nil
}

// Columns splits records into per-variable series
func Columns(records []Record) (precipitation, tempMin, tempMax, snowCoverPrevious []float64) {
	precipitation = make([]float64, len(records))
	tempMin = make([]float64, len(records))
	tempMax = make([]float64, len(records))
	snowCoverPrevious = make([]float64, len(records))

	for i, r := range records {
		precipitation[i] = r.Precipitation
		tempMin[i] = r.TempMin
		tempMax[i] = r.TempMax
		snowCoverPrevious[i] = r.SnowCoverPrevious
	}
	return
}

// WriteCSV writes one row of terms per record
func WriteCSV(w io.Writer, records []Record, terms snowpack.SeriesTerms) error {
	if len(terms.Snowfall) != len(records) || len(terms.Melt) != len(records) || len(terms.Sublimation) != len(records) {
		return fmt.Errorf("%d records but %d terms: %w", len(records), len(terms.Snowfall), snowpack.ErrShapeMismatch)
	}

	writer := csv.NewWriter(w)

	header := []string{ColumnDate, "snowfall", "melt", "sublimation"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for i, r := range records {
		row := []string{
			r.Date.Format(DateLayout),
			strconv.FormatFloat(terms.Snowfall[i], 'f', -1, 64),
			strconv.FormatFloat(terms.Melt[i], 'f', -1, 64),
			strconv.FormatFloat(terms.Sublimation[i], 'f', -1, 64),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
