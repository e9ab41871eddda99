package folio

// GetAbout returns the stored about document, or ErrNotFound before the
// first save.
func (s *Store) GetAbout() (AboutContent, error) {
	var a AboutContent
	err := s.db.QueryRow(`SELECT image_url, paragraph1, paragraph2, paragraph3, experience, projects, awards, updated_at FROM about WHERE singleton = 1`).
		Scan(&a.ImageURL, &a.Paragraph1, &a.Paragraph2, &a.Paragraph3, &a.Experience, &a.Projects, &a.Awards, &a.UpdatedAt)
	if isNoRows(err) {
		return AboutContent{}, ErrNotFound
	}
	return a, err
}

// SaveAbout upserts the whole about document.
func (s *Store) SaveAbout(a AboutContent) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO about (singleton, image_url, paragraph1, paragraph2, paragraph3, experience, projects, awards, updated_at)
VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ImageURL, a.Paragraph1, a.Paragraph2, a.Paragraph3, a.Experience, a.Projects, a.Awards, a.UpdatedAt)
	return err
}
