package folio

const postColumns = `id, title, content, excerpt, cover_image, date, slug, updated_at`

// ListPosts returns every post ordered by date descending.
func (s *Store) ListPosts() ([]BlogPost, error) {
	rows, err := s.db.Query(`SELECT ` + postColumns + ` FROM posts ORDER BY date DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []BlogPost{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// GetPost returns a post by id.
func (s *Store) GetPost(id string) (BlogPost, error) {
	p, err := scanPost(s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE id = ?`, id))
	if isNoRows(err) {
		return BlogPost{}, ErrNotFound
	}
	return p, err
}

// CreatePost inserts a new post.
func (s *Store) CreatePost(p BlogPost) error {
	_, err := s.db.Exec(`INSERT INTO posts (`+postColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Title, p.Content, p.Excerpt, p.CoverImage, p.Date, p.Slug, p.UpdatedAt)
	return err
}

// UpdatePost overwrites the editable columns of an existing post. The id and
// date columns are never changed.
func (s *Store) UpdatePost(p BlogPost) error {
	res, err := s.db.Exec(`UPDATE posts SET title = ?, content = ?, excerpt = ?, cover_image = ?, slug = ?, updated_at = ? WHERE id = ?`,
		p.Title, p.Content, p.Excerpt, p.CoverImage, p.Slug, p.UpdatedAt, p.ID)
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

// DeletePost removes a post by id, returning ErrNotFound if nothing matched.
func (s *Store) DeletePost(id string) error {
	return s.deleteByID(`DELETE FROM posts WHERE id = ?`, id)
}

func scanPost(r rowScanner) (BlogPost, error) {
	var p BlogPost
	err := r.Scan(&p.ID, &p.Title, &p.Content, &p.Excerpt, &p.CoverImage, &p.Date, &p.Slug, &p.UpdatedAt)
	return p, err
}
