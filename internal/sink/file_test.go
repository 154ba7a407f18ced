package sink

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/k12safe/leadgen-cli/internal/district"
)

func sampleDistricts() []district.District {
	return []district.District{
		{
			Name:       "Leander ISD",
			Domain:     "leanderisd.org",
			Website:    "https://www.leanderisd.org",
			City:       "Leander",
			State:      "TX",
			Enrollment: 42000,
			Contacts: []district.Contact{
				{
					FullName:    "Dr. Bruce Gearing",
					FirstName:   "Bruce",
					LastName:    "Gearing",
					Title:       "Superintendent",
					Persona:     district.PersonaSuperintendent,
					Email:       "bruce.gearing@leanderisd.org",
					Phone:       "(512) 570-0000",
					LinkedInURL: "https://linkedin.com/in/bruce-gearing",
				},
				{
					FullName: "Shā Rogers",
					Title:    "Chief of Safety & Security",
					Persona:  district.PersonaSafetyDirector,
					Email:    "sha.rogers@leanderisd.org",
				},
			},
		},
		{
			Name:       "Frisco ISD",
			Domain:     "friscoisd.org",
			State:      "TX",
			Enrollment: 67000,
		},
	}
}

func TestWriteLeadsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leads.csv")
	require.NoError(t, WriteLeadsCSV(path, sampleDistricts()))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	// Header plus one row per contact; the contactless district adds none.
	require.Len(t, rows, 3)
	assert.Equal(t, leadColumns, rows[0])
	assert.Equal(t, "Leander ISD", rows[1][0])
	assert.Equal(t, "42000", rows[1][2])
	assert.Equal(t, "bruce.gearing@leanderisd.org", rows[1][7])
	assert.Equal(t, "superintendent", rows[1][10])
	assert.Equal(t, "safety_director", rows[2][10])
}

func TestWriteDistrictsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "districts.csv")
	require.NoError(t, WriteDistrictsCSV(path, sampleDistricts()))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, districtColumns, rows[0])
	assert.Equal(t, []string{"Leander ISD", "leanderisd.org", "https://www.leanderisd.org", "Leander", "TX", "42000"}, rows[1])
	assert.Equal(t, "Frisco ISD", rows[2][0])
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leads.json")
	require.NoError(t, WriteJSON(path, sampleDistricts()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got []district.District
	require.NoError(t, json.Unmarshal(data, &got))

	require.Len(t, got, 2)
	require.Len(t, got[0].Contacts, 2)
	assert.Equal(t, "Dr. Bruce Gearing", got[0].Contacts[0].FullName)
	assert.Equal(t, district.PersonaSuperintendent, got[0].Contacts[0].Persona)
}

func TestWriteLeadsXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leads.xlsx")
	require.NoError(t, WriteLeadsXLSX(path, sampleDistricts()))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)

	require.Len(t, f.Sheets, 1)
	sheet := f.Sheets[0]
	assert.Equal(t, "Leads", sheet.Name)
	require.Len(t, sheet.Rows, 3)
	assert.Equal(t, "district_name", sheet.Rows[0].Cells[0].String())
	assert.Equal(t, "Dr. Bruce Gearing", sheet.Rows[1].Cells[3].String())
	assert.Equal(t, "safety_director", sheet.Rows[2].Cells[10].String())
}
