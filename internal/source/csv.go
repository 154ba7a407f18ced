package source

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/k12safe/leadgen-cli/internal/district"
)

// SourceCSV is the provenance tag for records loaded from a local CSV file.
const SourceCSV = "csv"

// LoadDistricts reads district records from a CSV file. Column binding is
// header driven; the name column may be titled either district_name or name,
// and unrecognized columns are ignored. Rows without a name are skipped.
func LoadDistricts(path string) ([]district.District, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "source: open %s", path)
	}
	defer f.Close() //nolint:errcheck

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, eris.Wrapf(err, "source: read header from %s", path)
	}

	idx := make(map[string]int, len(header))
	for i, col := range header {
		idx[strings.ToLower(strings.TrimSpace(col))] = i
	}

	field := func(row []string, names ...string) string {
		for _, n := range names {
			if i, ok := idx[n]; ok && i < len(row) {
				return strings.TrimSpace(row[i])
			}
		}
		return ""
	}

	var out []district.District
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrapf(err, "source: read row from %s", path)
		}

		name := field(row, "district_name", "name")
		if name == "" {
			continue
		}

		d := district.District{
			Name:    name,
			Domain:  field(row, "domain"),
			Website: field(row, "website"),
			City:    field(row, "city"),
			State:   field(row, "state"),
			Sources: []string{SourceCSV},
		}
		if raw := field(row, "enrollment"); raw != "" {
			if n, err := strconv.Atoi(strings.ReplaceAll(raw, ",", "")); err == nil {
				d.Enrollment = n
			}
		}
		out = append(out, d)
	}
	return out, nil
}
