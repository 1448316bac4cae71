package loader

// schemaSQL はアプリが使用する全テーブルの定義です。
// orders の自然キーには意図的にUNIQUE制約を張っていません。重複判定は
// 取込トランザクション内の事前検索で行います（同時実行は運用上想定外）。
const schemaSQL = `
CREATE TABLE IF NOT EXISTS companies (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	corporation_code TEXT NOT NULL DEFAULT '',
	corporation_name TEXT NOT NULL DEFAULT '',
	company_code     TEXT NOT NULL DEFAULT '',
	company_name     TEXT NOT NULL DEFAULT '',
	active           INTEGER NOT NULL DEFAULT 1
);
CREATE INDEX IF NOT EXISTS idx_companies_code ON companies (company_code);
CREATE INDEX IF NOT EXISTS idx_companies_name ON companies (company_name);

CREATE TABLE IF NOT EXISTS departments (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	department_code TEXT NOT NULL DEFAULT '',
	department_name TEXT NOT NULL DEFAULT '',
	active          INTEGER NOT NULL DEFAULT 1
);
CREATE INDEX IF NOT EXISTS idx_departments_code ON departments (department_code);

CREATE TABLE IF NOT EXISTS users (
	id                 INTEGER PRIMARY KEY AUTOINCREMENT,
	user_code          TEXT NOT NULL DEFAULT '',
	user_name          TEXT NOT NULL DEFAULT '',
	employee_type_code TEXT NOT NULL DEFAULT '',
	employee_type_name TEXT NOT NULL DEFAULT '',
	active             INTEGER NOT NULL DEFAULT 1
);
CREATE INDEX IF NOT EXISTS idx_users_code ON users (user_code);

CREATE TABLE IF NOT EXISTS suppliers (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	supplier_code TEXT NOT NULL DEFAULT '',
	supplier_name TEXT NOT NULL DEFAULT '',
	active        INTEGER NOT NULL DEFAULT 1
);
CREATE INDEX IF NOT EXISTS idx_suppliers_code ON suppliers (supplier_code);

CREATE TABLE IF NOT EXISTS products (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	product_code  TEXT NOT NULL DEFAULT '',
	product_name  TEXT NOT NULL DEFAULT '',
	category_code TEXT NOT NULL DEFAULT '',
	category_name TEXT NOT NULL DEFAULT '',
	active        INTEGER NOT NULL DEFAULT 1
);
CREATE INDEX IF NOT EXISTS idx_products_code ON products (product_code);

CREATE TABLE IF NOT EXISTS import_batches (
	batch_id     TEXT PRIMARY KEY,
	source_label TEXT NOT NULL DEFAULT '',
	started_at   TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS orders (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	batch_id         TEXT NOT NULL REFERENCES import_batches (batch_id),
	company_id       INTEGER REFERENCES companies (id),
	department_id    INTEGER REFERENCES departments (id),
	user_id          INTEGER REFERENCES users (id),
	supplier_id      INTEGER REFERENCES suppliers (id),
	product_id       INTEGER REFERENCES products (id),
	delivery_date    TEXT NOT NULL,
	delivery_time    TEXT,
	office_name      TEXT NOT NULL DEFAULT '',
	user_code        TEXT NOT NULL DEFAULT '',
	user_name        TEXT NOT NULL DEFAULT '',
	product_code     TEXT NOT NULL DEFAULT '',
	product_name     TEXT NOT NULL DEFAULT '',
	quantity         INTEGER NOT NULL DEFAULT 1,
	unit_price       NUMERIC NOT NULL DEFAULT 0,
	total_amount     NUMERIC NOT NULL DEFAULT 0,
	notes            TEXT NOT NULL DEFAULT '',
	cooperation_code TEXT NOT NULL DEFAULT '',
	created_at       TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_orders_natural_key
	ON orders (user_code, delivery_date, product_code, cooperation_code);
CREATE INDEX IF NOT EXISTS idx_orders_batch ON orders (batch_id);

CREATE TABLE IF NOT EXISTS import_logs (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	batch_id        TEXT NOT NULL,
	source_label    TEXT NOT NULL DEFAULT '',
	total_rows      INTEGER NOT NULL DEFAULT 0,
	success_rows    INTEGER NOT NULL DEFAULT 0,
	error_rows      INTEGER NOT NULL DEFAULT 0,
	duplicate_rows  INTEGER NOT NULL DEFAULT 0,
	new_companies   INTEGER NOT NULL DEFAULT 0,
	new_departments INTEGER NOT NULL DEFAULT 0,
	new_users       INTEGER NOT NULL DEFAULT 0,
	new_suppliers   INTEGER NOT NULL DEFAULT 0,
	new_products    INTEGER NOT NULL DEFAULT 0,
	status          TEXT NOT NULL DEFAULT 'completed',
	notes           TEXT NOT NULL DEFAULT '',
	created_at      TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_import_logs_batch ON import_logs (batch_id);
`
