package folio

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// postForm is the editable part of a post as sent by the dashboard.
type postForm struct {
	Title   string
	Content string
	Excerpt string
}

func readPostForm(c echo.Context) (postForm, error) {
	f := postForm{
		Title:   strings.TrimSpace(c.FormValue("title")),
		Content: c.FormValue("content"),
		Excerpt: strings.TrimSpace(c.FormValue("excerpt")),
	}
	if f.Title == "" || strings.TrimSpace(f.Content) == "" {
		return f, echo.NewHTTPError(http.StatusBadRequest, "title and content are required")
	}
	if f.Excerpt == "" {
		f.Excerpt = Excerpt(f.Content)
	}
	return f, nil
}

// postSlug falls back to "post" for titles without a single letter or digit.
func postSlug(title string) string {
	if s := Slugify(title); s != "" {
		return s
	}
	return "post"
}

// coverImage returns the cover sent with the request: an uploaded file in
// "coverImage", or a URL in the text field of the same name. assetID is set
// only when a file was stored.
func (a *App) coverImage(c echo.Context) (url, assetID string, ok bool, err error) {
	asset, ok, err := a.saveFormImage(c, "coverImage")
	if err != nil {
		return "", "", false, err
	}
	if ok {
		return asset.URL, asset.ID, true, nil
	}
	if v := strings.TrimSpace(c.FormValue("coverImage")); v != "" {
		return v, "", true, nil
	}
	return "", "", false, nil
}

func (a *App) handleListPosts(c echo.Context) error {
	posts, err := a.Cache.Posts()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

func (a *App) handleGetPost(c echo.Context) error {
	post, err := a.Cache.Post(c.Param("slug"))
	if errors.Is(err, ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "post not found")
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

func (a *App) handleCreatePost(c echo.Context) error {
	form, err := readPostForm(c)
	if err != nil {
		return err
	}
	cover, assetID, _, err := a.coverImage(c)
	if err != nil {
		return err
	}

	now := a.now()
	slug := postSlug(form.Title)
	post := BlogPost{
		ID:         newPostID(now, slug),
		Title:      form.Title,
		Content:    form.Content,
		Excerpt:    form.Excerpt,
		CoverImage: cover,
		Date:       formatTime(now),
		Slug:       slug,
	}
	if err := a.Store.CreatePost(post); err != nil {
		a.discardUnsaved(c, assetID)
		return err
	}
	a.Cache.Invalidate()
	a.Log.WithField("id", post.ID).WithField("admin", CurrentAdmin(c)).Info("post created")
	return c.JSON(http.StatusCreated, post)
}

func (a *App) handleUpdatePost(c echo.Context) error {
	id := strings.TrimSpace(c.QueryParam("id"))
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "id is required")
	}
	post, err := a.Store.GetPost(id)
	if errors.Is(err, ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "post not found")
	}
	if err != nil {
		return err
	}
	form, err := readPostForm(c)
	if err != nil {
		return err
	}
	cover, assetID, replaced, err := a.coverImage(c)
	if err != nil {
		return err
	}

	post.Title = form.Title
	post.Content = form.Content
	post.Excerpt = form.Excerpt
	post.Slug = postSlug(form.Title)
	if replaced {
		post.CoverImage = cover
	}
	post.UpdatedAt = formatTime(a.now())

	if err := a.Store.UpdatePost(post); err != nil {
		a.discardUnsaved(c, assetID)
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "post not found")
		}
		return err
	}
	a.Cache.Invalidate()
	a.Log.WithField("id", post.ID).WithField("admin", CurrentAdmin(c)).Info("post updated")
	return c.JSON(http.StatusOK, post)
}

func (a *App) handleDeletePost(c echo.Context) error {
	id := strings.TrimSpace(c.QueryParam("id"))
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "id is required")
	}
	if err := a.Store.DeletePost(id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "post not found")
		}
		return err
	}
	a.Cache.Invalidate()
	a.Log.WithField("id", id).WithField("admin", CurrentAdmin(c)).Info("post deleted")
	return c.JSON(http.StatusOK, apiMessage{Message: "deleted"})
}
