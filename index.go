package tileset

import (
	"database/sql"
	"image"

	_ "github.com/mattn/go-sqlite3" // database/sql driver
)

// Index is an SQLite database of sprite placements keyed by grid cell
type Index struct {
	db *sql.DB
}

// OpenIndex opens or creates the index stored in file
func OpenIndex(file string) (*Index, error) {
	db, err := sql.Open("sqlite3", file)
	if err != nil {
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS sprite (id INTEGER PRIMARY KEY NOT NULL, path TEXT NOT NULL, grid_row INTEGER NOT NULL, grid_col INTEGER NOT NULL, x INTEGER NOT NULL, y INTEGER NOT NULL, width INTEGER NOT NULL, height INTEGER NOT NULL, sha1 TEXT NOT NULL, UNIQUE(grid_row, grid_col))"); err != nil {
		db.Close()
		return nil, err
	}

	return &Index{
		db: db,
	}, nil
}

// Close closes the underlying database
func (idx *Index) Close() error {
	return idx.db.Close()
}

// Replace discards any existing placements and stores the given ones
func (idx *Index) Replace(placements []Placement) error {
	tx, err := idx.db.Begin()
	if err != nil {
		return err
	}

	if _, err = tx.Exec("DELETE FROM sprite"); err != nil {
		tx.Rollback()
		return err
	}

	stmt, err := tx.Prepare("INSERT INTO sprite (path, grid_row, grid_col, x, y, width, height, sha1) VALUES (?, ?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, p := range placements {
		if _, err = stmt.Exec(p.Path, p.Row, p.Col, p.Rect.Min.X, p.Rect.Min.Y, p.Rect.Dx(), p.Rect.Dy(), p.SHA1); err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

// Find returns the first placement of path in row then column order, or nil
// if there is none
func (idx *Index) Find(path string) (*Placement, error) {
	var x, y, width, height int
	p := Placement{Path: path}
	switch err := idx.db.QueryRow("SELECT grid_row, grid_col, x, y, width, height, sha1 FROM sprite WHERE path = ? ORDER BY grid_row, grid_col LIMIT 1", path).Scan(&p.Row, &p.Col, &x, &y, &width, &height, &p.SHA1); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		p.Rect = image.Rect(x, y, x+width, y+height)
		return &p, nil
	default:
		return nil, err
	}
}
