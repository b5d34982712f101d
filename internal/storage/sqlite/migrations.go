package sqlite

import "database/sql"

// schema contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist, and leave databases created by
// earlier versions of the tool untouched.
// IMPORTANT: person must be created BEFORE phone due to the foreign key constraint.
const schema = `
CREATE TABLE IF NOT EXISTS person (
    person_id INTEGER PRIMARY KEY AUTOINCREMENT,
    first_name TEXT NOT NULL,
    last_name TEXT NOT NULL,
    birthday TEXT,
    email TEXT,
    address_line1 TEXT,
    address_line2 TEXT,
    city TEXT,
    prov TEXT,
    country TEXT,
    postcode TEXT
);

CREATE TABLE IF NOT EXISTS phone (
    phone_id INTEGER PRIMARY KEY AUTOINCREMENT,
    person_id INTEGER NOT NULL,
    number TEXT NOT NULL,
    label TEXT NOT NULL CHECK (label IN ('CELL', 'HOME', 'WORK', 'OTHER')),
    FOREIGN KEY (person_id) REFERENCES person(person_id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS user (
    username TEXT PRIMARY KEY,
    password_hash TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_phone_person_id ON phone(person_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
