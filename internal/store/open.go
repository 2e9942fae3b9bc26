package store

import (
	"fmt"
	"path/filepath"

	"github.com/opugacodez/frutaria/internal/model"
)

// Options selects a backend. Driver is one of json, sqlite, postgres or
// mysql. DataDir holds the JSON files; DSN is the sqlite file path or the
// database connection string.
type Options struct {
	Driver  string
	DataDir string
	DSN     string
}

// Stores bundles the three collections the API works on.
type Stores struct {
	Users    *Collection[model.User]
	Products *Collection[model.Product]
	Carts    *Collection[model.Cart]

	close func() error
}

func Open(opts Options) (*Stores, error) {
	switch opts.Driver {
	case "", "json":
		return openJSON(opts.DataDir)
	case "sqlite":
		return openSQLite(opts.DSN)
	case "postgres", "mysql":
		return openGorm(opts.Driver, opts.DSN)
	default:
		return nil, fmt.Errorf("unknown store driver %q", opts.Driver)
	}
}

func (s *Stores) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

func newStores(users Backend[model.User], products Backend[model.Product], carts Backend[model.Cart]) *Stores {
	return &Stores{
		Users:    NewCollection("users", users, func(u *model.User, id int) { u.ID = id }),
		Products: NewCollection("products", products, func(p *model.Product, id int) { p.ID = id }),
		Carts:    NewCollection("carts", carts, func(c *model.Cart, id int) { c.ID = id }),
	}
}

func openJSON(dir string) (*Stores, error) {
	if dir == "" {
		dir = "./data"
	}
	users, err := OpenJSONFile[model.User](filepath.Join(dir, "users.json"))
	if err != nil {
		return nil, err
	}
	products, err := OpenJSONFile[model.Product](filepath.Join(dir, "products.json"))
	if err != nil {
		return nil, err
	}
	carts, err := OpenJSONFile[model.Cart](filepath.Join(dir, "carts.json"))
	if err != nil {
		return nil, err
	}
	return newStores(users, products, carts), nil
}

func openSQLite(path string) (*Stores, error) {
	if path == "" {
		path = "./data/frutaria.db"
	}
	docs, err := OpenSQLite(path)
	if err != nil {
		return nil, err
	}
	users, err := NewSQLiteCollection[model.User](docs, "users")
	if err != nil {
		docs.Close()
		return nil, err
	}
	products, err := NewSQLiteCollection[model.Product](docs, "products")
	if err != nil {
		docs.Close()
		return nil, err
	}
	carts, err := NewSQLiteCollection[model.Cart](docs, "carts")
	if err != nil {
		docs.Close()
		return nil, err
	}
	s := newStores(users, products, carts)
	s.close = docs.Close
	return s, nil
}

func openGorm(driver, dsn string) (*Stores, error) {
	db, err := OpenGorm(driver, dsn)
	if err != nil {
		return nil, err
	}
	s := newStores(NewGormTable[model.User](db), NewGormTable[model.Product](db), NewGormTable[model.Cart](db))
	s.close = func() error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return s, nil
}
