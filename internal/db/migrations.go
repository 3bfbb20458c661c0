package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "pgcrypto";`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'user_role') THEN
			CREATE TYPE user_role AS ENUM ('admin', 'user');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'executor_org_type') THEN
			CREATE TYPE executor_org_type AS ENUM ('ip', 'ooo');
		END IF;
	END
	$$;`,
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		username VARCHAR(80) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		role user_role NOT NULL DEFAULT 'user',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_users_username ON users (username);`,
	`CREATE TABLE IF NOT EXISTS executor_profiles (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		profile_name VARCHAR(200) NOT NULL,
		org_type executor_org_type NOT NULL DEFAULT 'ip',
		full_name VARCHAR(500) NOT NULL,
		short_name VARCHAR(200) NOT NULL DEFAULT '',
		legal_address TEXT NOT NULL DEFAULT '',
		postal_address TEXT NOT NULL DEFAULT '',
		inn VARCHAR(12) NOT NULL DEFAULT '',
		ogrn VARCHAR(15) NOT NULL DEFAULT '',
		bank_account VARCHAR(20) NOT NULL DEFAULT '',
		bank_name VARCHAR(200) NOT NULL DEFAULT '',
		bik VARCHAR(9) NOT NULL DEFAULT '',
		corr_account VARCHAR(20) NOT NULL DEFAULT '',
		email VARCHAR(120) NOT NULL DEFAULT '',
		phone VARCHAR(50) NOT NULL DEFAULT '',
		is_default BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_executor_profiles_name ON executor_profiles (profile_name);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_executor_profiles_default ON executor_profiles (is_default) WHERE is_default;`,
	`CREATE TABLE IF NOT EXISTS contract_history (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		inn VARCHAR(12) NOT NULL,
		company_name TEXT NOT NULL DEFAULT '',
		filename TEXT NOT NULL,
		contract_number TEXT NOT NULL DEFAULT '',
		contract_date TEXT NOT NULL DEFAULT '',
		services TEXT NOT NULL DEFAULT '',
		pricing_services JSONB NOT NULL DEFAULT '[]'::jsonb,
		packing_percentage TEXT NOT NULL DEFAULT '',
		prepayment_amount TEXT NOT NULL DEFAULT '',
		bank_details TEXT NOT NULL DEFAULT '',
		executor_profile_id UUID REFERENCES executor_profiles(id) ON DELETE SET NULL,
		executor_name TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	// поля формы хранятся как есть, длину не ограничиваем
	`ALTER TABLE contract_history
		ALTER COLUMN company_name TYPE TEXT,
		ALTER COLUMN filename TYPE TEXT,
		ALTER COLUMN contract_number TYPE TEXT,
		ALTER COLUMN contract_date TYPE TEXT,
		ALTER COLUMN packing_percentage TYPE TEXT,
		ALTER COLUMN prepayment_amount TYPE TEXT,
		ALTER COLUMN executor_name TYPE TEXT;`,
	`CREATE INDEX IF NOT EXISTS idx_contract_history_user_created ON contract_history (user_id, created_at DESC);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
