package folio

// Photo is a single gallery image. Records are created on upload and
// removed on delete; they are never edited in place.
type Photo struct {
	ID          string `json:"id"`
	URL         string `json:"url"`
	OriginalURL string `json:"originalUrl"`
	Category    string `json:"category"`
	Title       string `json:"title"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Date        string `json:"date"`
}

// Category groups photos for gallery filtering. ID is the slug of Name.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// BlogPost is a blog article. ID is "<unixmillis>-<slug>".
type BlogPost struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	Excerpt    string `json:"excerpt"`
	CoverImage string `json:"coverImage"`
	Date       string `json:"date"`
	Slug       string `json:"slug"`
	UpdatedAt  string `json:"updatedAt,omitempty"`
}

// AboutContent is the singleton document behind the about page.
type AboutContent struct {
	ImageURL   string `json:"imageUrl"`
	Paragraph1 string `json:"paragraph1"`
	Paragraph2 string `json:"paragraph2"`
	Paragraph3 string `json:"paragraph3"`
	Experience string `json:"experience"`
	Projects   string `json:"projects"`
	Awards     string `json:"awards"`
	UpdatedAt  string `json:"updatedAt"`
}

// Admin is an account allowed to log in to the dashboard.
type Admin struct {
	Username     string
	PasswordHash string
	CreatedAt    string
}

// DefaultAbout is served until an admin saves the about page for the first time.
func DefaultAbout() AboutContent {
	return AboutContent{
		ImageURL:   "https://images.unsplash.com/photo-1554048612-b6a482b224b8?w=1200",
		Paragraph1: "I am a photographer drawn to quiet light, empty streets and the small moments people walk past.",
		Paragraph2: "Most of my work is shot on long walks with a single prime lens, in cities and along the coast.",
		Paragraph3: "This site collects the frames I keep coming back to, along with notes on how they were made.",
		Experience: "10+ years",
		Projects:   "50+",
		Awards:     "5",
	}
}

var defaultCategories = []Category{
	{ID: "portrait", Name: "Portrait"},
	{ID: "landscape", Name: "Landscape"},
	{ID: "urban", Name: "Urban"},
	{ID: "minimal", Name: "Minimal"},
}
