package models

// BlogPost is a static marketing article
type BlogPost struct {
	ID         string `json:"id"`
	Slug       string `json:"slug"`
	Title      string `json:"title"`
	Excerpt    string `json:"excerpt"`
	Content    string `json:"content"`
	CoverImage string `json:"coverImage"`
	Author     string `json:"author"`
	Date       string `json:"date"`
	ReadTime   string `json:"readTime"`
}
