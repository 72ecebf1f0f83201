// Package store keeps saved bank styles, page names and display settings in SQLite.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rook-computer/deckgfx/internal/graphics"
	"github.com/rook-computer/deckgfx/internal/logging"
)

const component = "store"

// ErrNotFound is returned when a bank, page or setting has never been saved.
var ErrNotFound = errors.New("not found")

// ErrOutOfRange is returned for coordinates outside the grid.
var ErrOutOfRange = errors.New("coordinate out of range")

const schema = `
create table if not exists banks(page int not null, bank int not null, style text not null, primary key (page, bank));
create table if not exists pages(page int primary key, name text not null);
create table if not exists userconfig(key text primary key, value text not null);`

// Store is the SQLite backed configuration store.
type Store struct {
	db         *sql.DB
	maxButtons int
}

// Open opens or creates the database at path. ":memory:" gives a private in-memory store.
func Open(path string, maxButtons int) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// a single connection keeps ":memory:" databases shared and serialises writers
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	if maxButtons <= 0 {
		maxButtons = graphics.DefaultMaxButtons
	}
	return &Store{db: db, maxButtons: maxButtons}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) checkCoordinate(page, bank int) error {
	if page < 1 || page > graphics.MaxPages || bank < 1 || bank > s.maxButtons {
		return fmt.Errorf("%w: %d.%d", ErrOutOfRange, page, bank)
	}
	return nil
}

// SaveBank stores the style of a bank, replacing any previous one.
func (s *Store) SaveBank(page, bank int, style graphics.BankStyle) error {
	if err := s.checkCoordinate(page, bank); err != nil {
		return err
	}
	data, err := json.Marshal(style)
	if err != nil {
		return fmt.Errorf("encode bank %d.%d: %w", page, bank, err)
	}
	_, err = s.db.Exec(`insert into banks(page, bank, style) values(?, ?, ?)
		on conflict(page, bank) do update set style = excluded.style`, page, bank, string(data))
	if err != nil {
		return fmt.Errorf("save bank %d.%d: %w", page, bank, err)
	}
	return nil
}

func (s *Store) DeleteBank(page, bank int) error {
	res, err := s.db.Exec(`delete from banks where page = ? and bank = ?`, page, bank)
	if err != nil {
		return fmt.Errorf("delete bank %d.%d: %w", page, bank, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("bank %d.%d: %w", page, bank, ErrNotFound)
	}
	return nil
}

func (s *Store) Bank(page, bank int) (graphics.BankStyle, error) {
	var data string
	err := s.db.QueryRow(`select style from banks where page = ? and bank = ?`, page, bank).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return graphics.BankStyle{}, fmt.Errorf("bank %d.%d: %w", page, bank, ErrNotFound)
	}
	if err != nil {
		return graphics.BankStyle{}, fmt.Errorf("load bank %d.%d: %w", page, bank, err)
	}
	var style graphics.BankStyle
	if err := json.Unmarshal([]byte(data), &style); err != nil {
		return graphics.BankStyle{}, fmt.Errorf("decode bank %d.%d: %w", page, bank, err)
	}
	return style, nil
}

// Banks returns every saved style.
func (s *Store) Banks() (map[graphics.Coordinate]graphics.BankStyle, error) {
	rows, err := s.db.Query(`select page, bank, style from banks order by page, bank`)
	if err != nil {
		return nil, fmt.Errorf("list banks: %w", err)
	}
	defer rows.Close()

	result := make(map[graphics.Coordinate]graphics.BankStyle)
	for rows.Next() {
		var page, bank int
		var data string
		if err := rows.Scan(&page, &bank, &data); err != nil {
			return nil, fmt.Errorf("list banks: %w", err)
		}
		var style graphics.BankStyle
		if err := json.Unmarshal([]byte(data), &style); err != nil {
			return nil, fmt.Errorf("decode bank %d.%d: %w", page, bank, err)
		}
		result[graphics.Coordinate{Page: page, Bank: bank}] = style
	}
	return result, rows.Err()
}

func (s *Store) SetPageName(page int, name string) error {
	if page < 1 || page > graphics.MaxPages {
		return fmt.Errorf("%w: page %d", ErrOutOfRange, page)
	}
	_, err := s.db.Exec(`insert into pages(page, name) values(?, ?)
		on conflict(page) do update set name = excluded.name`, page, name)
	if err != nil {
		return fmt.Errorf("save page %d: %w", page, err)
	}
	return nil
}

func (s *Store) PageName(page int) (string, error) {
	var name string
	err := s.db.QueryRow(`select name from pages where page = ?`, page).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("page %d: %w", page, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("load page %d: %w", page, err)
	}
	return name, nil
}

// SetUserConfig saves one display setting as JSON.
func (s *Store) SetUserConfig(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	_, err = s.db.Exec(`insert into userconfig(key, value) values(?, ?)
		on conflict(key) do update set value = excluded.value`, key, string(data))
	if err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// UserConfig loads the display settings the renderer uses. Unsaved keys are false.
func (s *Store) UserConfig() (graphics.UserConfig, error) {
	rows, err := s.db.Query(`select key, value from userconfig`)
	if err != nil {
		return graphics.UserConfig{}, fmt.Errorf("load userconfig: %w", err)
	}
	defer rows.Close()

	values := make(map[string]bool)
	for rows.Next() {
		var key, data string
		if err := rows.Scan(&key, &data); err != nil {
			return graphics.UserConfig{}, fmt.Errorf("load userconfig: %w", err)
		}
		var value bool
		if json.Unmarshal([]byte(data), &value) == nil {
			values[key] = value
		}
	}
	if err := rows.Err(); err != nil {
		return graphics.UserConfig{}, fmt.Errorf("load userconfig: %w", err)
	}
	return graphics.UserConfig{
		PageDirectionFlipped: values[graphics.KeyPageDirectionFlipped],
		PagePlusMinus:        values[graphics.KeyPagePlusMinus],
		RemoveTopbar:         values[graphics.KeyRemoveTopbar],
	}, nil
}

// Source adapts a Store to graphics.ConfigSource. Lookup failures other than a missing
// row are logged and treated as missing.
type Source struct {
	Store  *Store
	Logger logging.Logger
}

func (s Source) BankStyle(page, bank int) (graphics.BankStyle, bool) {
	style, err := s.Store.Bank(page, bank)
	if err != nil {
		s.report(err)
		return graphics.BankStyle{}, false
	}
	return style, true
}

func (s Source) PageName(page int) (string, bool) {
	name, err := s.Store.PageName(page)
	if err != nil {
		s.report(err)
		return "", false
	}
	return name, true
}

func (s Source) report(err error) {
	if errors.Is(err, ErrNotFound) || s.Logger == nil {
		return
	}
	s.Logger.Errorf(component, "%v", err)
}
