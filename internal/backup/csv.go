// Package backup moves catalog data in and out of the process: CSV bulk
// import for the seed catalog and JSON snapshots for backup and restore.
// Everything here runs outside the serving loop.
package backup

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/madirex/funko-server/internal/core/domain"
)

// CSV column layout: id, number, name, model, price, release date.
const csvFields = 6

// ReadCSV parses the seed catalog. A missing or unreadable file is an error;
// individual rows that fail to parse are logged and skipped so one bad row
// does not abort a bulk load. A header row is detected and ignored.
func ReadCSV(path string, log zerolog.Logger) ([]domain.Funko, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var funkos []domain.Funko
	for row := 1; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Warn().Err(err).Int("row", row).Msg("skipping unreadable csv row")
			continue
		}
		funko, err := parseRow(record)
		if err != nil {
			if row == 1 {
				continue // header row
			}
			log.Warn().Err(err).Int("row", row).Msg("skipping malformed csv row")
			continue
		}
		funkos = append(funkos, *funko)
	}
	return funkos, nil
}

func parseRow(record []string) (*domain.Funko, error) {
	if len(record) != csvFields {
		return nil, fmt.Errorf("expected %d fields, got %d", csvFields, len(record))
	}
	number, err := strconv.ParseInt(strings.TrimSpace(record[1]), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("number: %w", err)
	}
	model, err := domain.ParseModel(record[3])
	if err != nil {
		return nil, err
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(record[4]), 64)
	if err != nil {
		return nil, fmt.Errorf("price: %w", err)
	}
	released, err := time.Parse("2006-01-02", strings.TrimSpace(record[5]))
	if err != nil {
		return nil, fmt.Errorf("release date: %w", err)
	}

	funko := domain.Funko{
		ID:          strings.TrimSpace(record[0]),
		Number:      number,
		Name:        strings.TrimSpace(record[2]),
		Model:       model,
		Price:       price,
		ReleaseDate: domain.Date{Time: released},
		UpdatedAt:   time.Now().UTC(),
	}
	if err := domain.ValidateFunko(funko); err != nil {
		return nil, err
	}
	return &funko, nil
}
