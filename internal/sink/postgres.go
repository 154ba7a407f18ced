package sink

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/k12safe/leadgen-cli/internal/district"
)

// Pool is the subset of pgxpool.Pool the sink needs. pgxmock satisfies it
// in tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS districts (
	id            SERIAL PRIMARY KEY,
	district_name TEXT NOT NULL,
	domain        TEXT NOT NULL UNIQUE,
	website       TEXT,
	city          TEXT,
	state         TEXT,
	enrollment    INTEGER,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS leads (
	id           SERIAL PRIMARY KEY,
	district_id  INTEGER NOT NULL REFERENCES districts(id),
	full_name    TEXT NOT NULL,
	first_name   TEXT,
	last_name    TEXT,
	title        TEXT,
	email        TEXT NOT NULL UNIQUE,
	phone        TEXT,
	linkedin_url TEXT,
	persona      TEXT NOT NULL,
	enriched_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_leads_persona ON leads(persona);
CREATE INDEX IF NOT EXISTS idx_leads_district ON leads(district_id);
`

// Migrate creates the districts and leads tables if they do not exist.
func Migrate(ctx context.Context, pool Pool) error {
	if _, err := pool.Exec(ctx, postgresMigration); err != nil {
		return eris.Wrap(err, "sink: run migration")
	}
	return nil
}

const upsertDistrictSQL = `
INSERT INTO districts (district_name, domain, website, city, state, enrollment)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (domain) DO UPDATE SET
	district_name = EXCLUDED.district_name,
	enrollment = EXCLUDED.enrollment,
	updated_at = now()
RETURNING id`

// UpsertDistrict inserts or updates a district keyed by domain and returns
// its id. Districts without a domain cannot be keyed and are rejected.
func UpsertDistrict(ctx context.Context, pool Pool, d district.District) (int64, error) {
	if d.Domain == "" {
		return 0, eris.New("sink: district has no domain")
	}

	var id int64
	err := pool.QueryRow(ctx, upsertDistrictSQL,
		d.Name, d.Domain, d.Website, d.City, d.State, d.Enrollment,
	).Scan(&id)
	if err != nil {
		return 0, eris.Wrapf(err, "sink: upsert district %s", d.Name)
	}
	return id, nil
}

const upsertLeadSQL = `
INSERT INTO leads (
	district_id, full_name, first_name, last_name,
	title, email, phone, linkedin_url, persona
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (email) DO UPDATE SET
	title = EXCLUDED.title,
	phone = EXCLUDED.phone,
	linkedin_url = EXCLUDED.linkedin_url`

// UpsertLead inserts or updates a lead keyed by email. On conflict only the
// volatile fields update; name and persona keep their original values.
func UpsertLead(ctx context.Context, pool Pool, districtID int64, c district.Contact) error {
	if c.Email == "" {
		return eris.New("sink: lead has no email")
	}

	_, err := pool.Exec(ctx, upsertLeadSQL,
		districtID, c.FullName, c.FirstName, c.LastName,
		c.Title, c.Email, c.Phone, c.LinkedInURL, string(c.Persona),
	)
	if err != nil {
		return eris.Wrapf(err, "sink: upsert lead %s", c.Email)
	}
	return nil
}

// SaveDistricts upserts every district and its contacts. A failed contact is
// logged and skipped; a failed district skips its contacts too.
func SaveDistricts(ctx context.Context, pool Pool, districts []district.District) error {
	saved := 0
	for _, d := range districts {
		if d.Domain == "" {
			zap.L().Debug("sink: district without domain skipped",
				zap.String("district", d.Name))
			continue
		}

		id, err := UpsertDistrict(ctx, pool, d)
		if err != nil {
			zap.L().Warn("sink: district upsert failed",
				zap.String("district", d.Name),
				zap.Error(err))
			continue
		}

		for _, c := range d.Contacts {
			if c.Email == "" {
				zap.L().Debug("sink: lead without email skipped",
					zap.String("contact", c.FullName))
				continue
			}
			if err := UpsertLead(ctx, pool, id, c); err != nil {
				zap.L().Warn("sink: lead upsert failed",
					zap.String("contact", c.FullName),
					zap.Error(err))
			}
		}
		saved++
	}

	zap.L().Info("sink: districts saved to postgres", zap.Int("districts", saved))
	return nil
}
