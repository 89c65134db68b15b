package compstore

// Schema creates the snapshot tables. Safe to run more than once.
const Schema = `
CREATE TABLE IF NOT EXISTS product (
    id  INTEGER PRIMARY KEY AUTOINCREMENT,
    url TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS comp_snapshot (
    product_id  INTEGER NOT NULL REFERENCES product (id),
    grade       TEXT    NOT NULL,
    time        INTEGER NOT NULL,
    count       INTEGER NOT NULL,
    median      REAL    NOT NULL,
    mean        REAL    NOT NULL,
    min         REAL    NOT NULL,
    max         REAL    NOT NULL,
    latest_sale REAL    NOT NULL
);

CREATE INDEX IF NOT EXISTS comp_snapshot_product_time
    ON comp_snapshot (product_id, time);
`
