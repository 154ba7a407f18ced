package clay

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, Client) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClient("test-api-key", WithBaseURL(srv.URL), WithRateLimit(1000))
	return srv, c
}

func TestFindPeople(t *testing.T) {
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantCount  int
		wantErr    bool
		wantAPIErr bool
		wantStatus int
	}{
		{
			name: "happy path",
			handler: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/people/search", r.URL.Path)
				assert.Equal(t, "Bearer test-api-key", r.Header.Get("Authorization"))
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

				var req PeopleSearchRequest
				require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.Equal(t, "friscoisd.org", req.CompanyDomain)
				assert.Contains(t, req.Titles, "Superintendent")
				assert.Equal(t, 5, req.Limit)

				w.WriteHeader(http.StatusOK)
				json.NewEncoder(w).Encode(peopleSearchResponse{People: []Person{
					{FullName: "Dr. Mike Waldrip", Title: "Superintendent", Domain: "friscoisd.org"},
					{FullName: "Jane Ops", Title: "Chief Operations Officer", Domain: "friscoisd.org"},
				}})
			},
			wantCount: 2,
		},
		{
			name: "auth error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"Unauthorized"}`))
			},
			wantErr:    true,
			wantAPIErr: true,
			wantStatus: 401,
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"error":"internal server error"}`))
			},
			wantErr:    true,
			wantAPIErr: true,
			wantStatus: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, c := newTestServer(t, tt.handler)
			people, err := c.FindPeople(context.Background(), PeopleSearchRequest{
				CompanyDomain: "friscoisd.org",
				Titles:        []string{"Superintendent"},
				Limit:         5,
			})

			if tt.wantErr {
				require.Error(t, err)
				if tt.wantAPIErr {
					var apiErr *APIError
					require.ErrorAs(t, err, &apiErr)
					assert.Equal(t, tt.wantStatus, apiErr.StatusCode)
				}
				return
			}

			require.NoError(t, err)
			assert.Len(t, people, tt.wantCount)
			assert.Equal(t, "Dr. Mike Waldrip", people[0].FullName)
		})
	}
}

func TestEnrichPerson(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/people/enrich", r.URL.Path)

		var req EnrichRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Dr. Mike Waldrip", req.FullName)
		assert.Equal(t, "Mike", req.FirstName)
		assert.Equal(t, "Waldrip", req.LastName)
		assert.Equal(t, "Superintendent", req.Title)
		assert.Equal(t, "friscoisd.org", req.CompanyDomain)

		json.NewEncoder(w).Encode(Enrichment{
			Email:       "mwaldrip@friscoisd.org",
			Phone:       "469-633-6000",
			LinkedInURL: "https://linkedin.com/in/mikewaldrip",
		})
	})

	got, err := c.EnrichPerson(context.Background(), EnrichRequest{
		FullName:      "Dr. Mike Waldrip",
		FirstName:     "Mike",
		LastName:      "Waldrip",
		Title:         "Superintendent",
		CompanyDomain: "friscoisd.org",
	})
	require.NoError(t, err)
	assert.Equal(t, "mwaldrip@friscoisd.org", got.Email)
	assert.Equal(t, "469-633-6000", got.Phone)
}

func TestEnrichPersonNotFound(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"no match"}`))
	})

	_, err := c.EnrichPerson(context.Background(), EnrichRequest{FullName: "Nobody"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient("k").(*httpClient)
	assert.Equal(t, defaultBaseURL, c.baseURL)
	assert.NotNil(t, c.http)
	assert.NotNil(t, c.limiter)
}
