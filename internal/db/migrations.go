package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'service_order_status') THEN
			CREATE TYPE service_order_status AS ENUM (
				'draft', 'assigned', 'in_progress', 'pending_approval', 'accepted', 'done', 'cancelled'
			);
		END IF;
	END
	$$;`,
	`CREATE TABLE IF NOT EXISTS partners (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(255) NOT NULL,
		phone VARCHAR(32),
		street VARCHAR(255),
		city VARCHAR(128),
		state_name VARCHAR(128),
		country_name VARCHAR(128)
	);`,
	`CREATE TABLE IF NOT EXISTS equipment (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(255) NOT NULL,
		serial_number VARCHAR(64)
	);`,
	`CREATE TABLE IF NOT EXISTS service_types (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(128) NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS employees (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(255) NOT NULL,
		user_id UUID,
		is_technician BOOLEAN NOT NULL DEFAULT FALSE,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		max_daily_orders INTEGER NOT NULL DEFAULT 4
	);`,
	`ALTER TABLE employees ADD COLUMN IF NOT EXISTS max_daily_orders INTEGER NOT NULL DEFAULT 4;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_employees_max_daily_orders') THEN
			ALTER TABLE employees ADD CONSTRAINT chk_employees_max_daily_orders
				CHECK (NOT is_technician OR max_daily_orders > 0);
		END IF;
	END
	$$;`,
	`CREATE INDEX IF NOT EXISTS idx_employees_user_id ON employees (user_id) WHERE is_technician;`,
	`CREATE TABLE IF NOT EXISTS service_orders (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(32) NOT NULL,
		partner_id UUID NOT NULL REFERENCES partners(id) ON DELETE RESTRICT,
		equipment_id UUID REFERENCES equipment(id) ON DELETE SET NULL,
		service_type_id UUID REFERENCES service_types(id) ON DELETE SET NULL,
		technician_id UUID REFERENCES employees(id) ON DELETE SET NULL,
		status service_order_status NOT NULL DEFAULT 'draft',
		priority VARCHAR(1) NOT NULL DEFAULT '0' CHECK (priority IN ('0', '1', '2', '3')),
		scheduled_date TIMESTAMPTZ,
		duration DOUBLE PRECISION NOT NULL DEFAULT 1,
		start_date TIMESTAMPTZ,
		end_date TIMESTAMPTZ,
		reported_fault TEXT,
		diagnosis TEXT,
		work_performed TEXT,
		total_amount NUMERIC(14, 2) NOT NULL DEFAULT 0,
		currency_code VARCHAR(3) NOT NULL DEFAULT 'USD',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uniq_service_orders_name ON service_orders (name);`,
	`CREATE INDEX IF NOT EXISTS idx_service_orders_technician_id ON service_orders (technician_id);`,
	`CREATE INDEX IF NOT EXISTS idx_service_orders_status ON service_orders (status);`,
	`CREATE INDEX IF NOT EXISTS idx_service_orders_scheduled_date ON service_orders (scheduled_date);`,
	`CREATE TABLE IF NOT EXISTS service_order_status_log (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		service_order_id UUID NOT NULL REFERENCES service_orders(id) ON DELETE CASCADE,
		old_status service_order_status,
		new_status service_order_status NOT NULL,
		note TEXT,
		changed_by UUID,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_service_order_status_log_order_id ON service_order_status_log (service_order_id);`,
	`CREATE OR REPLACE FUNCTION set_row_updated_at()
	RETURNS TRIGGER AS $$
	BEGIN
		NEW.updated_at = NOW();
		RETURN NEW;
	END;
	$$ LANGUAGE plpgsql;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_trigger WHERE tgname = 'trg_service_orders_updated_at') THEN
			CREATE TRIGGER trg_service_orders_updated_at
				BEFORE UPDATE ON service_orders
				FOR EACH ROW
				EXECUTE PROCEDURE set_row_updated_at();
		END IF;
	END
	$$;`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
