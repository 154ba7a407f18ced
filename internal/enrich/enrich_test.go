package enrich

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/k12safe/leadgen-cli/internal/district"
	"github.com/k12safe/leadgen-cli/internal/fuse"
	"github.com/k12safe/leadgen-cli/internal/resolve"
	"github.com/k12safe/leadgen-cli/internal/sink"
	"github.com/k12safe/leadgen-cli/pkg/clay"
)

type mockClayClient struct {
	mock.Mock
}

func (m *mockClayClient) FindPeople(ctx context.Context, req clay.PeopleSearchRequest) ([]clay.Person, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]clay.Person), args.Error(1)
}

func (m *mockClayClient) EnrichPerson(ctx context.Context, req clay.EnrichRequest) (*clay.Enrichment, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clay.Enrichment), args.Error(1)
}

func TestRunEnrichesAndClassifies(t *testing.T) {
	mc := new(mockClayClient)
	mc.On("FindPeople", mock.Anything, clay.PeopleSearchRequest{
		CompanyDomain: "friscoisd.org",
		Titles:        DefaultTargetTitles,
		Limit:         10,
	}).Return([]clay.Person{
		{FullName: "Dr. Mike Waldrip", FirstName: "Mike", LastName: "Waldrip", Title: "Superintendent"},
		{FullName: "Pat Chief", Title: "Chief of Police"},
	}, nil)
	mc.On("EnrichPerson", mock.Anything, clay.EnrichRequest{
		FullName: "Dr. Mike Waldrip", FirstName: "Mike", LastName: "Waldrip",
		Title: "Superintendent", CompanyDomain: "friscoisd.org",
	}).Return(&clay.Enrichment{Email: "mike.waldrip@friscoisd.org", Phone: "469"}, nil)
	mc.On("EnrichPerson", mock.Anything, clay.EnrichRequest{
		FullName: "Pat Chief", FirstName: "Pat", LastName: "Chief",
		Title: "Chief of Police", CompanyDomain: "friscoisd.org",
	}).Return(&clay.Enrichment{Email: "pat.chief@friscoisd.org"}, nil)

	e := NewEngine(mc)
	got, summary, err := e.Run(context.Background(), []district.District{
		{Name: "Frisco ISD", Domain: "friscoisd.org"},
	})
	require.NoError(t, err)

	require.Len(t, got, 1)
	require.Len(t, got[0].Contacts, 2)

	sup := got[0].Contacts[0]
	assert.Equal(t, district.PersonaSuperintendent, sup.Persona)
	assert.Equal(t, "mike.waldrip@friscoisd.org", sup.Email)
	assert.Equal(t, "Mike", sup.FirstName)

	safety := got[0].Contacts[1]
	assert.Equal(t, district.PersonaSafetyDirector, safety.Persona)
	// Name split fills missing first/last from the full name.
	assert.Equal(t, "Pat", safety.FirstName)
	assert.Equal(t, "Chief", safety.LastName)

	assert.Equal(t, 1, summary.Districts)
	assert.Equal(t, 2, summary.Contacts)
	assert.Equal(t, 1, summary.Superintendents)
	assert.Equal(t, 1, summary.SafetyDirectors)
	mc.AssertExpectations(t)
}

func TestRunSkipsDistrictWithoutDomain(t *testing.T) {
	mc := new(mockClayClient)

	e := NewEngine(mc)
	got, summary, err := e.Run(context.Background(), []district.District{
		{Name: "No Domain ISD"},
	})
	require.NoError(t, err)

	// The district stays in the output with an empty contact list.
	require.Len(t, got, 1)
	assert.Equal(t, "No Domain ISD", got[0].Name)
	assert.Empty(t, got[0].Contacts)
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 0, summary.Districts)
	mc.AssertNotCalled(t, "FindPeople", mock.Anything, mock.Anything)
}

func TestRunKeepsDistrictWithoutContacts(t *testing.T) {
	mc := new(mockClayClient)
	mc.On("FindPeople", mock.Anything, mock.Anything).Return([]clay.Person{}, nil)

	e := NewEngine(mc)
	got, summary, err := e.Run(context.Background(), []district.District{
		{Name: "Quiet ISD", Domain: "quietisd.org", Enrollment: 900},
	})
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "Quiet ISD", got[0].Name)
	assert.Equal(t, 900, got[0].Enrollment)
	assert.Empty(t, got[0].Contacts)
	assert.Equal(t, 1, summary.Districts)
	assert.Equal(t, 0, summary.Contacts)
}

func TestRunSearchFailureContinues(t *testing.T) {
	mc := new(mockClayClient)
	mc.On("FindPeople", mock.Anything, mock.MatchedBy(func(r clay.PeopleSearchRequest) bool {
		return r.CompanyDomain == "broken.org"
	})).Return(nil, eris.New("clay: HTTP 500"))
	mc.On("FindPeople", mock.Anything, mock.MatchedBy(func(r clay.PeopleSearchRequest) bool {
		return r.CompanyDomain == "leanderisd.org"
	})).Return([]clay.Person{
		{FullName: "Dr. Bruce Gearing", FirstName: "Bruce", LastName: "Gearing", Title: "Superintendent"},
	}, nil)
	mc.On("EnrichPerson", mock.Anything, mock.Anything).
		Return(&clay.Enrichment{Email: "bruce.gearing@leanderisd.org"}, nil)

	e := NewEngine(mc)
	got, summary, err := e.Run(context.Background(), []district.District{
		{Name: "Broken ISD", Domain: "broken.org"},
		{Name: "Leander ISD", Domain: "leanderisd.org"},
	})
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "Broken ISD", got[0].Name)
	assert.Empty(t, got[0].Contacts)
	assert.Equal(t, "Leander ISD", got[1].Name)
	require.Len(t, got[1].Contacts, 1)
	assert.Equal(t, 2, summary.Districts)
	assert.Equal(t, 1, summary.Contacts)
}

func TestRunEnrichFailureKeepsContactWithoutChannels(t *testing.T) {
	mc := new(mockClayClient)
	mc.On("FindPeople", mock.Anything, mock.Anything).Return([]clay.Person{
		{FullName: "Dr. Mike Waldrip", FirstName: "Mike", LastName: "Waldrip", Title: "Superintendent"},
	}, nil)
	mc.On("EnrichPerson", mock.Anything, mock.Anything).
		Return(nil, eris.New("clay: HTTP 429"))

	e := NewEngine(mc)
	got, summary, err := e.Run(context.Background(), []district.District{
		{Name: "Frisco ISD", Domain: "friscoisd.org"},
	})
	require.NoError(t, err)

	require.Len(t, got, 1)
	require.Len(t, got[0].Contacts, 1)
	c := got[0].Contacts[0]
	assert.Empty(t, c.Email)
	assert.Equal(t, district.PersonaSuperintendent, c.Persona)
	assert.Equal(t, 1, summary.Contacts)
}

func TestEngineOptions(t *testing.T) {
	mc := new(mockClayClient)
	mc.On("FindPeople", mock.Anything, clay.PeopleSearchRequest{
		CompanyDomain: "friscoisd.org",
		Titles:        []string{"Superintendent"},
		Limit:         3,
	}).Return([]clay.Person{}, nil)

	e := NewEngine(mc, WithTargetTitles([]string{"Superintendent"}), WithSearchLimit(3))
	_, _, err := e.Run(context.Background(), []district.District{
		{Name: "Frisco ISD", Domain: "friscoisd.org"},
	})
	require.NoError(t, err)
	mc.AssertExpectations(t)
}

func TestStubClientDemoRun(t *testing.T) {
	e := NewEngine(&StubClayClient{})

	districts := DemoDistricts()
	require.Len(t, districts, 10)
	// Sorted by enrollment descending.
	assert.Equal(t, "Frisco ISD", districts[0].Name)

	got, summary, err := e.Run(context.Background(), districts)
	require.NoError(t, err)

	assert.Equal(t, 10, summary.Districts)
	assert.Equal(t, 11, summary.Contacts)
	assert.Equal(t, 10, summary.Superintendents)
	assert.Equal(t, 1, summary.SafetyDirectors)

	for _, d := range got {
		for _, c := range d.Contacts {
			assert.NotEmpty(t, c.Email, "%s has no email", c.FullName)
			assert.NotEmpty(t, c.Persona)
		}
	}
}

// Two name-only stubs flow through fusion, override-based domain
// resolution, enrichment, and the CSV sink.
func TestPipelineStubEndToEnd(t *testing.T) {
	fused := fuse.Merge([]district.District{
		{Name: "Leander ISD"},
		{Name: "Frisco ISD"},
	})
	districts := fuse.Records(fused)
	require.Len(t, districts, 2)

	r := resolve.New(resolve.Config{})
	for i := range districts {
		domain, ok := r.Override(districts[i].Name)
		require.True(t, ok, districts[i].Name)
		districts[i].Domain = domain
	}

	mc := new(mockClayClient)
	for _, d := range districts {
		domain := d.Domain
		mc.On("FindPeople", mock.Anything, mock.MatchedBy(func(r clay.PeopleSearchRequest) bool {
			return r.CompanyDomain == domain
		})).Return([]clay.Person{
			{FullName: "Pat Lee", FirstName: "Pat", LastName: "Lee", Title: "Superintendent"},
		}, nil)
	}
	mc.On("EnrichPerson", mock.Anything, mock.MatchedBy(func(r clay.EnrichRequest) bool {
		return r.CompanyDomain == "leanderisd.org"
	})).Return(&clay.Enrichment{Email: "pat.lee@leanderisd.org"}, nil)
	mc.On("EnrichPerson", mock.Anything, mock.MatchedBy(func(r clay.EnrichRequest) bool {
		return r.CompanyDomain == "friscoisd.org"
	})).Return(&clay.Enrichment{Email: "pat.lee@friscoisd.org"}, nil)

	e := NewEngine(mc)
	enriched, _, err := e.Run(context.Background(), districts)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "leads.csv")
	require.NoError(t, sink.WriteLeadsCSV(path, enriched))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	header := rows[0]
	emailCol, personaCol := -1, -1
	for i, h := range header {
		switch h {
		case "email":
			emailCol = i
		case "persona":
			personaCol = i
		}
	}
	require.GreaterOrEqual(t, emailCol, 0)
	require.GreaterOrEqual(t, personaCol, 0)
	for _, row := range rows[1:] {
		assert.NotEmpty(t, row[emailCol])
		assert.Equal(t, "superintendent", row[personaCol])
	}
}

func TestSplitName(t *testing.T) {
	tests := []struct {
		full, first, last string
	}{
		{"Dr. Bruce Gearing", "Bruce", "Gearing"},
		{"Shā Rogers", "Shā", "Rogers"},
		{"Cher", "Cher", ""},
		{"Mary Jo van Dyke", "Mary", "Jo van Dyke"},
		{"", "", ""},
	}
	for _, tt := range tests {
		first, last := splitName(tt.full)
		assert.Equal(t, tt.first, first, tt.full)
		assert.Equal(t, tt.last, last, tt.full)
	}
}
