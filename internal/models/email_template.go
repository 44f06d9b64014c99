package models

// DefaultTemplateID is a reserved pseudo-id. Requests for it resolve to the
// computed default subject/body; it is never stored in the template list.
const DefaultTemplateID = "default"

// EmailTemplate is a named, reusable subject/body pair with embedded
// placeholders. All templates live together inside one option value, in
// insertion order; the Name is user-facing and immutable after creation.
type EmailTemplate struct {
	ID      string `bson:"id" json:"id"`
	Name    string `bson:"name" json:"name"`
	Subject string `bson:"subject" json:"subject"`
	Body    string `bson:"body" json:"body"` // HTML
}
