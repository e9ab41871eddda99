package folio

import "database/sql"

const photoColumns = `id, url, original_url, category, title, width, height, date`

// ListPhotos returns photos ordered by date descending. If category is
// non-empty only photos in that category are returned.
func (s *Store) ListPhotos(category string) ([]Photo, error) {
	var rows *sql.Rows
	var err error
	if category == "" {
		rows, err = s.db.Query(`SELECT ` + photoColumns + ` FROM photos ORDER BY date DESC, id DESC`)
	} else {
		rows, err = s.db.Query(`SELECT `+photoColumns+` FROM photos WHERE category = ? ORDER BY date DESC, id DESC`, category)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	photos := []Photo{}
	for rows.Next() {
		p, err := scanPhoto(rows)
		if err != nil {
			return nil, err
		}
		photos = append(photos, p)
	}
	return photos, rows.Err()
}

// GetPhoto returns a single photo by id.
func (s *Store) GetPhoto(id string) (Photo, error) {
	p, err := scanPhoto(s.db.QueryRow(`SELECT `+photoColumns+` FROM photos WHERE id = ?`, id))
	if isNoRows(err) {
		return Photo{}, ErrNotFound
	}
	return p, err
}

// CreatePhoto inserts a photo record.
func (s *Store) CreatePhoto(p Photo) error {
	_, err := s.db.Exec(`INSERT INTO photos (`+photoColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.URL, p.OriginalURL, p.Category, p.Title, p.Width, p.Height, p.Date)
	return err
}

// DeletePhoto removes a photo record, returning ErrNotFound if nothing matched.
func (s *Store) DeletePhoto(id string) error {
	return s.deleteByID(`DELETE FROM photos WHERE id = ?`, id)
}

func (s *Store) deleteByID(query, id string) error {
	res, err := s.db.Exec(query, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPhoto(r rowScanner) (Photo, error) {
	var p Photo
	err := r.Scan(&p.ID, &p.URL, &p.OriginalURL, &p.Category, &p.Title, &p.Width, &p.Height, &p.Date)
	return p, err
}
