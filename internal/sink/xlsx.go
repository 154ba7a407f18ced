package sink

import (
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"

	"github.com/k12safe/leadgen-cli/internal/district"
)

// WriteLeadsXLSX writes the flattened lead rows to a spreadsheet with one
// Leads sheet, header row first.
func WriteLeadsXLSX(path string, districts []district.District) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Leads")
	if err != nil {
		return eris.Wrap(err, "sink: add sheet")
	}

	header := sheet.AddRow()
	for _, col := range leadColumns {
		header.AddCell().SetString(col)
	}

	rows := 0
	for _, d := range districts {
		for _, c := range d.Contacts {
			row := sheet.AddRow()
			for _, v := range []string{
				d.Name, d.Domain, strconv.Itoa(d.Enrollment),
				c.FullName, c.FirstName, c.LastName, c.Title,
				c.Email, c.Phone, c.LinkedInURL, string(c.Persona),
			} {
				row.AddCell().SetString(v)
			}
			rows++
		}
	}

	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "sink: save %s", path)
	}

	zap.L().Info("sink: xlsx written",
		zap.String("path", path),
		zap.Int("rows", rows))
	return nil
}
