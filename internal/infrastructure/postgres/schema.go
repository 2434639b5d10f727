package postgres

import (
	"context"
	"fmt"
)

// Schema DDL del catálogo, ubicaciones, ítems y libro de movimientos.
// Idempotente: se puede ejecutar en cada arranque.
const Schema = `
CREATE TABLE IF NOT EXISTS generic_products (
    id               UUID PRIMARY KEY,
    seq              BIGINT GENERATED ALWAYS AS IDENTITY UNIQUE,
    name             TEXT NOT NULL,
    normalized_name  TEXT NOT NULL,
    category         TEXT,
    image_url        TEXT,
    created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_generic_products_normalized ON generic_products(normalized_name);
CREATE INDEX IF NOT EXISTS idx_generic_products_name ON generic_products(name);

CREATE TABLE IF NOT EXISTS locations (
    id           UUID PRIMARY KEY,
    user_id      TEXT NOT NULL,
    name         TEXT NOT NULL,
    description  TEXT,
    created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_locations_user_name ON locations(user_id, lower(name));

CREATE TABLE IF NOT EXISTS stock_items (
    id                  UUID PRIMARY KEY,
    user_id             TEXT NOT NULL,
    generic_product_id  UUID NOT NULL REFERENCES generic_products(id),
    location_id         UUID REFERENCES locations(id) ON DELETE SET NULL,
    quantity            NUMERIC(14,3) NOT NULL CHECK (quantity >= 0),
    unit                TEXT NOT NULL CHECK (unit IN ('UN','G','KG','ML','L')),
    expiry_date         DATE,
    notes               TEXT,
    created_at          TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_stock_items_user ON stock_items(user_id);

CREATE TABLE IF NOT EXISTS stock_movements (
    id                UUID PRIMARY KEY,
    item_id           UUID NOT NULL REFERENCES stock_items(id) ON DELETE CASCADE,
    kind              TEXT NOT NULL CHECK (kind IN ('ENTRADA','SAIDA','TRANSFERENCIA')),
    quantity          NUMERIC(14,3) NOT NULL CHECK (quantity > 0),
    from_location_id  UUID,
    to_location_id    UUID,
    reason            TEXT,
    created_at        TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_stock_movements_item ON stock_movements(item_id, created_at);
`

// trigramDDL habilita pg_trgm y el índice GIN de similitud. Requiere permisos de
// CREATE EXTENSION; si falla el servicio sigue con el puntuador en proceso.
const trigramDDL = `
CREATE EXTENSION IF NOT EXISTS pg_trgm;
CREATE INDEX IF NOT EXISTS idx_generic_products_trgm ON generic_products USING gin (normalized_name gin_trgm_ops);
`

// Migrate ejecuta Schema.
func Migrate(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("postgres migrate: %w", err)
	}
	return nil
}

// EnableTrigram intenta instalar pg_trgm y su índice.
func EnableTrigram(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, trigramDDL); err != nil {
		return fmt.Errorf("habilitar pg_trgm: %w", err)
	}
	return nil
}

// ProbeTrigram indica si la extensión pg_trgm está instalada (similarity() disponible).
func ProbeTrigram(ctx context.Context, q Querier) (bool, error) {
	var ok bool
	err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM pg_extension WHERE extname = 'pg_trgm')`).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("probe pg_trgm: %w", err)
	}
	return ok, nil
}
