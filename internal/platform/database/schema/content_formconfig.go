package schema

// ContentFormConfigTable represents the 'content.formconfig' table.
// One row per form key; the submission form uses key 'submission-form'.
type ContentFormConfigTable struct {
	Table     string
	Key       string
	Payload   string
	UpdatedAt string
}

// ContentFormConfig is the schema definition for content.formconfig
var ContentFormConfig = ContentFormConfigTable{
	Table:     "content.formconfig",
	Key:       "key",
	Payload:   "payload",
	UpdatedAt: "updatedat",
}

func (t ContentFormConfigTable) Columns() []string {
	return []string{t.Key, t.Payload, t.UpdatedAt}
}
