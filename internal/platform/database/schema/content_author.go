package schema

// ContentAuthorTable represents the 'content.author' table
type ContentAuthorTable struct {
	Table        string
	ID           string
	Name         string
	Email        string
	Phone        string
	Title        string
	Organization string
	LinkedInURL  string
	Bio          string
	WebsiteURL   string
	CreatedAt    string
	UpdatedAt    string
}

// ContentAuthor is the schema definition for content.author
var ContentAuthor = ContentAuthorTable{
	Table:        "content.author",
	ID:           "id",
	Name:         "name",
	Email:        "email",
	Phone:        "phone",
	Title:        "title",
	Organization: "organization",
	LinkedInURL:  "linkedinurl",
	Bio:          "bio",
	WebsiteURL:   "websiteurl",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

func (t ContentAuthorTable) Columns() []string {
	return []string{t.ID, t.Name, t.Email, t.Phone, t.Title, t.Organization, t.LinkedInURL, t.Bio, t.WebsiteURL, t.CreatedAt, t.UpdatedAt}
}
