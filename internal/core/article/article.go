package article

import "time"

// Status is the editorial lifecycle state of an article.
type Status string

const (
	// StatusDraft marks a submitted article awaiting editorial review.
	StatusDraft Status = "draft"

	// StatusPublished marks an article visible on the site.
	StatusPublished Status = "published"
)

// Article is a persisted magazine article. Contributor submissions always
// arrive as drafts with is_featured=false; editors promote them later.
type Article struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Slug         string     `json:"slug"`
	Description  string     `json:"description"`
	Blocks       []Block    `json:"blocks"`
	Categories   []string   `json:"categories"`
	Keywords     string     `json:"keywords,omitempty"`
	AuthorID     string     `json:"author_id"`
	CoverMediaID string     `json:"cover_media_id,omitempty"`
	Status       Status     `json:"status"`
	IsFeatured   bool       `json:"is_featured"`
	WordCount    int        `json:"word_count"`
	PublishAt    *time.Time `json:"publish_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Field names for validation and error attribution. The article title is
// qualified to keep it distinct from the author's job title in the shared
// error namespace.
const (
	FieldTitle       = "article_title"
	FieldDescription = "description"
	FieldBlocks      = "blocks"
	FieldCategories  = "categories"
	FieldContent     = "content"
	FieldKeywords    = "keywords"
	FieldCoverImage  = "cover_image"
)
