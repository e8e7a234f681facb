package author

import "time"

// Author is an external contributor who has submitted at least one article.
// Identity is the email address: the ingestion pipeline upserts by it.
type Author struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	Title        string    `json:"title"`
	Organization string    `json:"organization"`
	LinkedInURL  string    `json:"linkedin_url,omitempty"`
	Bio          string    `json:"bio,omitempty"`
	WebsiteURL   string    `json:"website_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Global field names for validation and error attribution
const (
	FieldName         = "name"
	FieldEmail        = "email"
	FieldPhone        = "phone"
	FieldTitle        = "title"
	FieldOrganization = "organization"
	FieldLinkedInURL  = "linkedin_url"
	FieldBio          = "bio"
	FieldWebsiteURL   = "website_url"
)

// Merge overlays incoming values onto the stored record.
//
// Required fields (name, title, organization) and phone are always taken from
// the incoming submission. Optional fields only replace the stored value when
// the incoming value is non-empty, so a contributor who leaves the bio blank
// on a later submission does not wipe the bio they wrote earlier.
func (stored *Author) Merge(incoming *Author) *Author {
	merged := *stored

	merged.Name = incoming.Name
	merged.Title = incoming.Title
	merged.Organization = incoming.Organization
	merged.Phone = incoming.Phone

	if incoming.LinkedInURL != "" {
		merged.LinkedInURL = incoming.LinkedInURL
	}
	if incoming.Bio != "" {
		merged.Bio = incoming.Bio
	}
	if incoming.WebsiteURL != "" {
		merged.WebsiteURL = incoming.WebsiteURL
	}

	return &merged
}
