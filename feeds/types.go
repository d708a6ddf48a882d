// Package feeds builds the gallery feed from the rows of a Notion database
package feeds

// Property names read from each row
const (
	ImagePropertyName   = "Image"
	CaptionPropertyName = "Caption"
	TitlePropertyName   = "Title"
	StatusPropertyName  = "Status"
	DatePropertyName    = "Date"
)

// PageSize is the number of rows fetched per request. There is no
// pagination; rows past the first page are not shown.
const PageSize = 60
