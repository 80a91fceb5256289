package sqlite

import "database/sql"

// schema sets up the ledger tables. It runs on startup to ensure tables exist.
// Decimal columns are TEXT; dates are RFC 3339 TEXT in UTC.
const schema = `
CREATE TABLE IF NOT EXISTS accounts (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    type TEXT NOT NULL,
    current_balance TEXT NOT NULL,
    user_id TEXT NOT NULL,
    is_active INTEGER NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS transactions (
    id TEXT PRIMARY KEY,
    date TEXT NOT NULL,
    type TEXT NOT NULL,
    amount TEXT NOT NULL,
    category TEXT NOT NULL DEFAULT '',
    account_id TEXT NOT NULL,
    to_account_id TEXT NOT NULL DEFAULT '',
    user_id TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    tax_amount TEXT NOT NULL DEFAULT '0',
    is_debt INTEGER NOT NULL DEFAULT 0,
    debt_id TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS assets (
    id TEXT PRIMARY KEY,
    date TEXT NOT NULL,
    metal_type TEXT NOT NULL,
    grams TEXT NOT NULL,
    total_cash_paid TEXT NOT NULL,
    tax_deducted TEXT NOT NULL,
    invested_value TEXT NOT NULL,
    user_id TEXT NOT NULL,
    UNIQUE (user_id, metal_type)
);

CREATE TABLE IF NOT EXISTS settings (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

INSERT OR IGNORE INTO settings (key, value) VALUES ('user_a_name', 'User A');
INSERT OR IGNORE INTO settings (key, value) VALUES ('user_b_name', 'User B');

CREATE INDEX IF NOT EXISTS idx_transactions_debt_id ON transactions(debt_id);
CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
