package submission

import (
	"time"

	"github.com/majallahq/majalla/internal/core/article"
)

// AuthorInput carries the contributor's identity fields as submitted.
type AuthorInput struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	Title        string `json:"title"`
	Organization string `json:"organization"`
	LinkedInURL  string `json:"linkedin_url,omitempty"`
	Bio          string `json:"bio,omitempty"`
	WebsiteURL   string `json:"website_url,omitempty"`
}

// ArticleInput carries the article fields as submitted. Content arrives
// either as raw markdown (Content) or as an already-structured block array
// (Blocks); when both are present the structured form wins. PublishAt is the
// contributor's requested publication date; editors may override it.
type ArticleInput struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Categories  []string        `json:"categories"`
	Keywords    string          `json:"keywords,omitempty"`
	Content     string          `json:"content,omitempty"`
	Blocks      []article.Block `json:"blocks,omitempty"`
	PublishAt   *time.Time      `json:"publish_at,omitempty"`
}

// ReviewInput carries the final-step fields.
type ReviewInput struct {
	Consent              bool   `json:"consent"`
	PreviousPublications string `json:"previous_publications,omitempty"`
	SocialLinks          string `json:"social_links,omitempty"`
	AdditionalNotes      string `json:"additional_notes,omitempty"`
}

// FileUpload is an attached file buffer with its multipart metadata.
type FileUpload struct {
	Name        string
	ContentType string
	Size        int64
	Data        []byte
}

// Payload is one complete submission as it enters the pipeline. Cover and
// Files never come from the JSON body; the handler fills them from the
// multipart parts, keying Files by the block FileRef they belong to.
type Payload struct {
	Author  AuthorInput  `json:"author"`
	Article ArticleInput `json:"article"`
	Review  ReviewInput  `json:"review"`

	Cover    *FileUpload           `json:"-"`
	Files    map[string]FileUpload `json:"-"`
	ClientIP string                `json:"-"`
}

// Result is the success response of the pipeline.
type Result struct {
	Success   bool   `json:"success"`
	ArticleID string `json:"article_id"`
	Slug      string `json:"slug"`
}

// EmailCheckResult reports whether an author exists for a probed email,
// carrying a sanitized projection for wizard pre-fill when one does.
// RequiresLogin stays false until contributor accounts land; clients already
// branch on it.
type EmailCheckResult struct {
	Exists        bool         `json:"exists"`
	RequiresLogin bool         `json:"requires_login"`
	Author        *AuthorInput `json:"author,omitempty"`
}
