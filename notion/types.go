package notion

import (
	"github.com/goccy/go-json"
)

// PropertyType is the declared type of a database property
type PropertyType string

const (
	FilesProperty    PropertyType = "files"
	RichTextProperty PropertyType = "rich_text"
	TitleProperty    PropertyType = "title"
	SelectProperty   PropertyType = "select"
	DateProperty     PropertyType = "date"
)

// QueryRequest is the body of a database query
type QueryRequest struct {
	PageSize int `json:"page_size,omitempty"`
}

// QueryResponse is one page of database query results
type QueryResponse struct {
	Object     string  `json:"object"`
	Results    []Page  `json:"results"`
	NextCursor *string `json:"next_cursor"`
	HasMore    bool    `json:"has_more"`
}

// Page is a single database row
type Page struct {
	Object         string     `json:"object"`
	ID             string     `json:"id"`
	CreatedTime    string     `json:"created_time"`
	LastEditedTime string     `json:"last_edited_time"`
	Archived       bool       `json:"archived"`
	URL            string     `json:"url"`
	Properties     Properties `json:"properties"`
}

// Properties maps property names to their typed values
type Properties map[string]Property

// Value returns the decoded value of the named property, or nil if the
// property is missing or of a type we do not model.
func (p Properties) Value(name string) PropertyValue {
	prop, ok := p[name]
	if !ok {
		return nil
	}
	return prop.Value
}

// Property is a named property on a page. Value holds one of Files,
// RichText, Title, Select or Date depending on Type.
type Property struct {
	ID    string
	Type  PropertyType
	Value PropertyValue
}

// PropertyValue is implemented by every modelled property variant
type PropertyValue interface {
	PropertyType() PropertyType
}

type Files []File

type RichText []RichTextItem

type Title []RichTextItem

// Select holds the chosen option, nil when nothing is selected
type Select struct {
	Option *SelectOption
}

// Date holds the date range, nil when the cell is empty
type Date struct {
	Range *DateRange
}

func (Files) PropertyType() PropertyType    { return FilesProperty }
func (RichText) PropertyType() PropertyType { return RichTextProperty }
func (Title) PropertyType() PropertyType    { return TitleProperty }
func (Select) PropertyType() PropertyType   { return SelectProperty }
func (Date) PropertyType() PropertyType     { return DateProperty }

type File struct {
	Name     string        `json:"name"`
	Type     string        `json:"type"`
	External *ExternalFile `json:"external,omitempty"`
	File     *HostedFile   `json:"file,omitempty"`
}

type ExternalFile struct {
	URL string `json:"url"`
}

// HostedFile is a file uploaded to Notion. The URL is signed and expires.
type HostedFile struct {
	URL        string `json:"url"`
	ExpiryTime string `json:"expiry_time"`
}

type RichTextItem struct {
	Type      string  `json:"type"`
	PlainText string  `json:"plain_text"`
	Href      *string `json:"href"`
}

type SelectOption struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type DateRange struct {
	Start    string  `json:"start"`
	End      *string `json:"end"`
	TimeZone *string `json:"time_zone"`
}

// rawProperty mirrors the wire shape, where the payload sits under a key
// named after the declared type.
type rawProperty struct {
	ID       string          `json:"id"`
	Type     PropertyType    `json:"type"`
	Files    json.RawMessage `json:"files"`
	RichText json.RawMessage `json:"rich_text"`
	Title    json.RawMessage `json:"title"`
	Select   json.RawMessage `json:"select"`
	Date     json.RawMessage `json:"date"`
}

// UnmarshalJSON decodes the variant matching the declared type. A payload
// that does not match its declared type leaves Value nil.
func (p *Property) UnmarshalJSON(data []byte) error {
	var raw rawProperty
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	p.ID = raw.ID
	p.Type = raw.Type
	p.Value = nil

	switch raw.Type {
	case FilesProperty:
		var v Files
		if decodeVariant(raw.Files, &v) {
			p.Value = v
		}
	case RichTextProperty:
		var v RichText
		if decodeVariant(raw.RichText, &v) {
			p.Value = v
		}
	case TitleProperty:
		var v Title
		if decodeVariant(raw.Title, &v) {
			p.Value = v
		}
	case SelectProperty:
		var v *SelectOption
		if decodeVariant(raw.Select, &v) {
			p.Value = Select{Option: v}
		}
	case DateProperty:
		var v *DateRange
		if decodeVariant(raw.Date, &v) {
			p.Value = Date{Range: v}
		}
	}

	return nil
}

func decodeVariant(data json.RawMessage, v interface{}) bool {
	if len(data) == 0 {
		return false
	}
	return json.Unmarshal(data, v) == nil
}
