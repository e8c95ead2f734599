package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed catalog data if DB is empty (idempotent)
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	// Ensure admin/test users exist (idempotent; safe to run every start)
	if err := seedUsers(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Categories
CREATE TABLE IF NOT EXISTS categories(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  slug TEXT NOT NULL UNIQUE,
  description TEXT DEFAULT '',
  image TEXT DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);

-- Products
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  category_id TEXT NOT NULL REFERENCES categories(id) ON DELETE RESTRICT,
  slug TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  description TEXT DEFAULT '',
  price NUMERIC NOT NULL CHECK (price >= 0),
  compare_at_price NUMERIC NOT NULL DEFAULT 0,
  active INTEGER NOT NULL DEFAULT 1,
  featured INTEGER NOT NULL DEFAULT 0,
  is_new INTEGER NOT NULL DEFAULT 0,
  bestseller INTEGER NOT NULL DEFAULT 0,
  stock_quantity INTEGER NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_products_category   ON products(category_id);
CREATE INDEX IF NOT EXISTS idx_products_featured   ON products(featured);
CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at);

CREATE TABLE IF NOT EXISTS product_images(
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
  url TEXT NOT NULL,
  alt TEXT DEFAULT '',
  position INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_product_images_product ON product_images(product_id);

-- Variants: one row per purchasable (size, color)
CREATE TABLE IF NOT EXISTS product_variants(
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
  size TEXT NOT NULL,
  color TEXT NOT NULL,
  color_hex TEXT DEFAULT '',
  sku TEXT DEFAULT '',
  price NUMERIC NOT NULL DEFAULT 0,
  stock_quantity INTEGER NOT NULL DEFAULT 0 CHECK (stock_quantity >= 0),
  UNIQUE(product_id, size, color)
);
CREATE INDEX IF NOT EXISTS idx_variants_product ON product_variants(product_id);

-- Addresses (created fresh per order, no dedup)
CREATE TABLE IF NOT EXISTS addresses(
  id TEXT PRIMARY KEY,
  first_name TEXT NOT NULL,
  last_name TEXT NOT NULL,
  email TEXT NOT NULL,
  phone TEXT DEFAULT '',
  address1 TEXT NOT NULL,
  city TEXT NOT NULL,
  postal_code TEXT NOT NULL,
  country TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);

-- Orders
CREATE TABLE IF NOT EXISTS orders(
  id TEXT PRIMARY KEY,
  order_number TEXT NOT NULL UNIQUE,
  status TEXT NOT NULL DEFAULT 'PENDING'
    CHECK (status IN ('PENDING','CONFIRMED','PROCESSING','SHIPPED','DELIVERED','CANCELLED')),
  payment_status TEXT NOT NULL DEFAULT 'PENDING'
    CHECK (payment_status IN ('PENDING','PAID','FAILED','REFUNDED')),
  payment_method TEXT NOT NULL DEFAULT 'POK',
  subtotal NUMERIC NOT NULL,
  shipping_cost NUMERIC NOT NULL DEFAULT 0,
  tax NUMERIC NOT NULL DEFAULT 0,
  total NUMERIC NOT NULL,
  currency TEXT NOT NULL DEFAULT 'EUR',
  shipping_address_id TEXT NOT NULL REFERENCES addresses(id),
  billing_address_id TEXT NOT NULL REFERENCES addresses(id),
  pok_order_id TEXT DEFAULT '',
  pok_payment_url TEXT DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at);

CREATE TABLE IF NOT EXISTS order_items(
  order_id  TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL REFERENCES products(id),
  variant_id TEXT DEFAULT '',
  quantity INTEGER NOT NULL CHECK (quantity >= 1),
  price NUMERIC NOT NULL,
  PRIMARY KEY (order_id, product_id, variant_id)
);

-- Newsletter
CREATE TABLE IF NOT EXISTS newsletter_subscribers(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  active INTEGER NOT NULL DEFAULT 1,
  subscribed_at TEXT DEFAULT CURRENT_TIMESTAMP,
  unsubscribed_at TEXT DEFAULT ''
);

-- Hero slides (home page)
CREATE TABLE IF NOT EXISTS hero_slides(
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  subtitle TEXT DEFAULT '',
  image TEXT DEFAULT '',
  cta_label TEXT DEFAULT '',
  cta_href TEXT DEFAULT '',
  position INTEGER NOT NULL DEFAULT 0,
  active INTEGER NOT NULL DEFAULT 1
);

-- Admin users & sessions
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  first_name TEXT NOT NULL,
  last_name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('CUSTOMER','ADMIN')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,
  user_id TEXT NULL REFERENCES users(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM categories`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo categories/products/variants")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO categories(id,name,slug,description) VALUES
	  ('cat-bikinis','Bikinis','bikinis','Two-piece swimwear for the modern woman'),
	  ('cat-one-pieces','One Pieces','one-pieces','Elegant one-piece swimsuits')`)

	tx.MustExec(`INSERT INTO products(id,category_id,slug,name,description,price,compare_at_price,active,featured,is_new,bestseller,stock_quantity) VALUES
	  ('p-riviera','cat-bikinis','riviera-bikini-set','Riviera Bikini Set','Timeless triangle bikini in ribbed fabric.',89,119,1,1,1,0,24),
	  ('p-aegean','cat-one-pieces','aegean-one-piece','Aegean One Piece','Sculpting one piece with a low back.',119,0,1,1,0,1,18),
	  ('p-santorini','cat-bikinis','santorini-bandeau-set','Santorini Bandeau Set','Bandeau top with high-cut bottoms.',95,0,1,0,1,0,12),
	  ('p-capri','cat-bikinis','capri-sport-bikini','Capri Sport Bikini','Sporty cut for swim and play.',79,0,1,0,0,1,30)`)

	tx.MustExec(`INSERT INTO product_images(id,product_id,url,alt,position) VALUES
	  ('img-riviera-1','p-riviera','/images/products/riviera-bikini-set-1.jpg','Riviera Bikini Set front',0),
	  ('img-riviera-2','p-riviera','/images/products/riviera-bikini-set-2.jpg','Riviera Bikini Set back',1),
	  ('img-aegean-1','p-aegean','/images/products/aegean-one-piece-1.jpg','Aegean One Piece front',0),
	  ('img-aegean-2','p-aegean','/images/products/aegean-one-piece-2.jpg','Aegean One Piece back',1),
	  ('img-santorini-1','p-santorini','/images/products/santorini-bandeau-set-1.jpg','Santorini Bandeau Set',0),
	  ('img-capri-1','p-capri','/images/products/capri-sport-bikini-1.jpg','Capri Sport Bikini',0)`)

	tx.MustExec(`INSERT INTO product_variants(id,product_id,size,color,color_hex,sku,stock_quantity) VALUES
	  ('v-riviera-s-black','p-riviera','S','Black','#1a1a1a','RIV-S-BLK',8),
	  ('v-riviera-m-black','p-riviera','M','Black','#1a1a1a','RIV-M-BLK',10),
	  ('v-riviera-l-black','p-riviera','L','Black','#1a1a1a','RIV-L-BLK',6),
	  ('v-riviera-s-sand','p-riviera','S','Sand','#d8c3a5','RIV-S-SND',4),
	  ('v-riviera-m-sand','p-riviera','M','Sand','#d8c3a5','RIV-M-SND',0),
	  ('v-aegean-s-ivory','p-aegean','S','Ivory','#f5f0e8','AEG-S-IVY',6),
	  ('v-aegean-m-ivory','p-aegean','M','Ivory','#f5f0e8','AEG-M-IVY',7),
	  ('v-aegean-l-ivory','p-aegean','L','Ivory','#f5f0e8','AEG-L-IVY',5),
	  ('v-santorini-s-terra','p-santorini','S','Terracotta','#c96f4a','SAN-S-TER',6),
	  ('v-santorini-m-terra','p-santorini','M','Terracotta','#c96f4a','SAN-M-TER',6),
	  ('v-capri-s-navy','p-capri','S','Navy','#1f2a44','CAP-S-NVY',10),
	  ('v-capri-m-navy','p-capri','M','Navy','#1f2a44','CAP-M-NVY',12),
	  ('v-capri-l-navy','p-capri','L','Navy','#1f2a44','CAP-L-NVY',8)`)

	tx.MustExec(`INSERT INTO hero_slides(id,title,subtitle,image,cta_label,cta_href,position,active) VALUES
	  ('slide-1','Summer 2024','The new collection has arrived','/images/hero/slide-1.jpg','Shop Now','/shop',0,1),
	  ('slide-2','Essentials','Pieces you will wear all season','/images/hero/slide-2.jpg','Discover','/collections',1,1)`)

	return tx.Commit()
}

// seedUsers ensures the admin and a test customer exist (idempotent).
func seedUsers(db *sqlx.DB) error {
	type u struct {
		ID, Email, First, Last, Role, Hash string
	}
	mk := func(id, email, first, last, role, raw string) u {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return u{ID: id, Email: email, First: first, Last: last, Role: role, Hash: string(h)}
	}

	users := []u{
		mk("u-admin", "admin@delphine.com", "Admin", "User", "ADMIN", "admin123"),
		mk("u-test", "test@example.com", "Test", "User", "CUSTOMER", "test123"),
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, x := range users {
		if _, err := tx.Exec(`
			INSERT INTO users(id,email,first_name,last_name,password_hash,role)
			VALUES(?,?,?,?,?,?)
			ON CONFLICT(email) DO NOTHING
		`, x.ID, x.Email, x.First, x.Last, x.Hash, x.Role); err != nil {
			return err
		}
	}

	return tx.Commit()
}
