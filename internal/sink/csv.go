// Package sink writes pipeline results to files and PostgreSQL.
package sink

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/k12safe/leadgen-cli/internal/district"
)

// leadColumns is the flattened one-row-per-contact projection.
var leadColumns = []string{
	"district_name", "domain", "enrollment",
	"full_name", "first_name", "last_name", "title",
	"email", "phone", "linkedin_url", "persona",
}

// WriteLeadsCSV writes one row per contact across the enriched districts.
func WriteLeadsCSV(path string, districts []district.District) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "sink: create %s", path)
	}
	defer f.Close() //nolint:errcheck

	w := csv.NewWriter(f)
	if err := w.Write(leadColumns); err != nil {
		return eris.Wrap(err, "sink: write header")
	}

	rows := 0
	for _, d := range districts {
		for _, c := range d.Contacts {
			row := []string{
				d.Name, d.Domain, strconv.Itoa(d.Enrollment),
				c.FullName, c.FirstName, c.LastName, c.Title,
				c.Email, c.Phone, c.LinkedInURL, string(c.Persona),
			}
			if err := w.Write(row); err != nil {
				return eris.Wrapf(err, "sink: write row for %s", c.FullName)
			}
			rows++
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return eris.Wrapf(err, "sink: flush %s", path)
	}

	zap.L().Info("sink: leads csv written",
		zap.String("path", path),
		zap.Int("rows", rows))
	return nil
}

// clayColumns is the trimmed projection for Clay table import.
var clayColumns = []string{"name", "domain", "website", "city", "enrollment"}

// WriteClayCSV writes the import-ready district projection for Clay.
func WriteClayCSV(path string, districts []district.District) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "sink: create %s", path)
	}
	defer f.Close() //nolint:errcheck

	w := csv.NewWriter(f)
	if err := w.Write(clayColumns); err != nil {
		return eris.Wrap(err, "sink: write header")
	}

	for _, d := range districts {
		row := []string{d.Name, d.Domain, d.Website, d.City, strconv.Itoa(d.Enrollment)}
		if err := w.Write(row); err != nil {
			return eris.Wrapf(err, "sink: write row for %s", d.Name)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return eris.Wrapf(err, "sink: flush %s", path)
	}

	zap.L().Info("sink: clay import csv written",
		zap.String("path", path),
		zap.Int("rows", len(districts)))
	return nil
}

// districtColumns is the discovery-output projection.
var districtColumns = []string{"name", "domain", "website", "city", "state", "enrollment"}

// WriteDistrictsCSV writes one row per district.
func WriteDistrictsCSV(path string, districts []district.District) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "sink: create %s", path)
	}
	defer f.Close() //nolint:errcheck

	w := csv.NewWriter(f)
	if err := w.Write(districtColumns); err != nil {
		return eris.Wrap(err, "sink: write header")
	}

	for _, d := range districts {
		row := []string{d.Name, d.Domain, d.Website, d.City, d.State, strconv.Itoa(d.Enrollment)}
		if err := w.Write(row); err != nil {
			return eris.Wrapf(err, "sink: write row for %s", d.Name)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return eris.Wrapf(err, "sink: flush %s", path)
	}

	zap.L().Info("sink: districts csv written",
		zap.String("path", path),
		zap.Int("rows", len(districts)))
	return nil
}
