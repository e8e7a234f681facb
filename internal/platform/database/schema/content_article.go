package schema

// ContentArticleTable represents the 'content.article' table
type ContentArticleTable struct {
	Table        string
	ID           string
	Title        string
	Slug         string
	Description  string
	Blocks       string
	Categories   string
	Keywords     string
	AuthorID     string
	CoverMediaID string
	Status       string
	IsFeatured   string
	WordCount    string
	PublishAt    string
	CreatedAt    string
	UpdatedAt    string
}

// ContentArticle is the schema definition for content.article
var ContentArticle = ContentArticleTable{
	Table:        "content.article",
	ID:           "id",
	Title:        "title",
	Slug:         "slug",
	Description:  "description",
	Blocks:       "blocks",
	Categories:   "categories",
	Keywords:     "keywords",
	AuthorID:     "authorid",
	CoverMediaID: "covermediaid",
	Status:       "status",
	IsFeatured:   "isfeatured",
	WordCount:    "wordcount",
	PublishAt:    "publishat",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

func (t ContentArticleTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Slug, t.Description, t.Blocks, t.Categories, t.Keywords,
		t.AuthorID, t.CoverMediaID, t.Status, t.IsFeatured, t.WordCount, t.PublishAt,
		t.CreatedAt, t.UpdatedAt,
	}
}
