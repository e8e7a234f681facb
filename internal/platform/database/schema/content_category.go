package schema

// ContentCategoryTable represents the 'content.category' table
type ContentCategoryTable struct {
	Table     string
	ID        string
	Name      string
	Slug      string
	SortOrder string
	CreatedAt string
}

// ContentCategory is the schema definition for content.category
var ContentCategory = ContentCategoryTable{
	Table:     "content.category",
	ID:        "id",
	Name:      "name",
	Slug:      "slug",
	SortOrder: "sortorder",
	CreatedAt: "createdat",
}

func (t ContentCategoryTable) Columns() []string {
	return []string{t.ID, t.Name, t.Slug, t.SortOrder, t.CreatedAt}
}
