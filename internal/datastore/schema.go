package datastore

// sqliteSchema mirrors the books migration of the web application.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS books (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	isbn VARCHAR(13) NOT NULL UNIQUE,
	isbn_10 VARCHAR(10),
	title TEXT NOT NULL,
	subtitle TEXT,
	contributor TEXT,
	content TEXT,
	imprint TEXT,
	publisher TEXT,
	image_url TEXT,
	price INTEGER,
	published_date TEXT,
	audience_type INTEGER NOT NULL DEFAULT 99,
	audience_code INTEGER NOT NULL DEFAULT 99,
	c_code CHAR(4) NOT NULL DEFAULT '9999',
	subject_text TEXT,
	amazon_url TEXT,
	honto_url TEXT,
	created_at TEXT,
	updated_at TEXT
);
CREATE INDEX IF NOT EXISTS books_isbn_10_index ON books (isbn_10);
CREATE INDEX IF NOT EXISTS books_title_index ON books (title);
CREATE INDEX IF NOT EXISTS books_publisher_index ON books (publisher);
CREATE INDEX IF NOT EXISTS books_published_date_index ON books (published_date);
`

// postgresSchema is sqliteSchema in PostgreSQL types.
var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS books (
		id BIGSERIAL PRIMARY KEY,
		isbn VARCHAR(13) NOT NULL UNIQUE,
		isbn_10 VARCHAR(10),
		title TEXT NOT NULL,
		subtitle TEXT,
		contributor TEXT,
		content TEXT,
		imprint TEXT,
		publisher TEXT,
		image_url TEXT,
		price INTEGER,
		published_date DATE,
		audience_type INTEGER NOT NULL DEFAULT 99,
		audience_code INTEGER NOT NULL DEFAULT 99,
		c_code CHAR(4) NOT NULL DEFAULT '9999',
		subject_text TEXT,
		amazon_url TEXT,
		honto_url TEXT,
		created_at TIMESTAMPTZ,
		updated_at TIMESTAMPTZ
	)`,
	`CREATE INDEX IF NOT EXISTS books_isbn_10_index ON books (isbn_10)`,
	`CREATE INDEX IF NOT EXISTS books_title_index ON books (title)`,
	`CREATE INDEX IF NOT EXISTS books_publisher_index ON books (publisher)`,
	`CREATE INDEX IF NOT EXISTS books_published_date_index ON books (published_date)`,
}
