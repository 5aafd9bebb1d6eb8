package sqlite

import "database/sql"

// schema sets up the database. Amounts are stored as base-10 TEXT because
// they are 128-bit; comparisons happen in Go, never in SQL. group_members and
// debts cascade when their group is deleted; expenses deliberately do not:
// an expense record outlives its group and stays readable by ID.
const schema = `
CREATE TABLE IF NOT EXISTS counters (
    name TEXT PRIMARY KEY,
    value INTEGER NOT NULL
);

INSERT OR IGNORE INTO counters (name, value) VALUES ('group_count', 0);
INSERT OR IGNORE INTO counters (name, value) VALUES ('expense_count', 0);

CREATE TABLE IF NOT EXISTS groups (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    creator TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS group_members (
    group_id INTEGER NOT NULL,
    position INTEGER NOT NULL,
    party TEXT NOT NULL,
    PRIMARY KEY (group_id, party),
    FOREIGN KEY (group_id) REFERENCES groups(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS expenses (
    id INTEGER PRIMARY KEY,
    group_id INTEGER NOT NULL,
    description TEXT NOT NULL,
    amount TEXT NOT NULL,
    paid_by TEXT NOT NULL,
    timestamp INTEGER NOT NULL,
    settled INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS expense_splits (
    expense_id INTEGER NOT NULL,
    position INTEGER NOT NULL,
    party TEXT NOT NULL,
    PRIMARY KEY (expense_id, party),
    FOREIGN KEY (expense_id) REFERENCES expenses(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS debts (
    group_id INTEGER NOT NULL,
    debtor TEXT NOT NULL,
    creditor TEXT NOT NULL,
    amount TEXT NOT NULL,
    PRIMARY KEY (group_id, debtor, creditor),
    FOREIGN KEY (group_id) REFERENCES groups(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS users (
    party TEXT PRIMARY KEY,
    display_name TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_group_members_party ON group_members(party);
CREATE INDEX IF NOT EXISTS idx_expenses_group_id ON expenses(group_id);
CREATE INDEX IF NOT EXISTS idx_expense_splits_expense_id ON expense_splits(expense_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
