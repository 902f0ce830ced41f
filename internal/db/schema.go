package db

import (
	"context"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS admin_users (
	id BIGSERIAL PRIMARY KEY,
	username TEXT UNIQUE NOT NULL,
	password TEXT NOT NULL,
	role TEXT NOT NULL,
	permissions TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'active',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS panchayaths (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	district TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (name, district)
);

CREATE TABLE IF NOT EXISTS categories (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	actual_fee BIGINT NOT NULL DEFAULT 0,
	offer_fee BIGINT NOT NULL DEFAULT 0,
	image TEXT NOT NULL DEFAULT '',
	features TEXT[] NOT NULL DEFAULT '{}',
	is_active BOOLEAN NOT NULL DEFAULT TRUE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS registrations (
	id BIGSERIAL PRIMARY KEY,
	customer_id TEXT NOT NULL,
	name TEXT NOT NULL,
	address TEXT NOT NULL,
	mobile TEXT NOT NULL,
	panchayath TEXT NOT NULL,
	ward TEXT NOT NULL,
	category TEXT NOT NULL,
	agent_details TEXT,
	status TEXT NOT NULL DEFAULT 'pending',
	fee_amount BIGINT NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS registrations_mobile_idx ON registrations (mobile);
CREATE INDEX IF NOT EXISTS registrations_customer_id_idx ON registrations (customer_id);
`

// InitSchema creates the tables on first run. One registration per mobile
// number is checked at submit time, not enforced by a unique index.
func (p *Postgres) InitSchema(ctx context.Context) error {
	if _, err := p.Pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}
