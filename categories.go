package folio

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

type categoryRequest struct {
	Name string `json:"name" form:"name"`
}

func (a *App) handleListCategories(c echo.Context) error {
	categories, err := a.Store.ListCategories()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, categories)
}

func (a *App) handleCreateCategory(c echo.Context) error {
	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid category payload")
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "category name is required")
	}
	id := Slugify(name)
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "category name must contain letters or digits")
	}

	category := Category{ID: id, Name: name}
	if err := a.Store.CreateCategory(category); err != nil {
		if errors.Is(err, ErrCategoryExists) {
			return echo.NewHTTPError(http.StatusBadRequest, ErrCategoryExists.Error())
		}
		return err
	}
	a.Log.WithField("id", id).WithField("admin", CurrentAdmin(c)).Info("category created")
	return c.JSON(http.StatusCreated, category)
}
