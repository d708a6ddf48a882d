package feeds

import (
	"notionfeed/models"
	"notionfeed/notion"
)

// ItemFromPage extracts the feed fields from a row. Missing properties or
// properties of an unexpected type give the empty value for that field.
func ItemFromPage(page notion.Page) models.Item {
	props := page.Properties

	return models.Item{
		Id:          page.ID,
		Image:       imageURL(props),
		Caption:     caption(props),
		Status:      status(props),
		Date:        date(props),
		CreatedTime: page.CreatedTime,
	}
}

// imageURL prefers an external link over a file uploaded to Notion
func imageURL(props notion.Properties) string {
	files, ok := props.Value(ImagePropertyName).(notion.Files)
	if !ok || len(files) == 0 {
		return ""
	}

	first := files[0]
	if first.External != nil && first.External.URL != "" {
		return first.External.URL
	}
	if first.File != nil {
		return first.File.URL
	}
	return ""
}

// caption falls back to the row title when the caption is empty
func caption(props notion.Properties) string {
	if text, ok := props.Value(CaptionPropertyName).(notion.RichText); ok && len(text) > 0 {
		if text[0].PlainText != "" {
			return text[0].PlainText
		}
	}

	if title, ok := props.Value(TitlePropertyName).(notion.Title); ok && len(title) > 0 {
		return title[0].PlainText
	}
	return ""
}

func status(props notion.Properties) string {
	sel, ok := props.Value(StatusPropertyName).(notion.Select)
	if !ok || sel.Option == nil {
		return ""
	}
	return sel.Option.Name
}

func date(props notion.Properties) *string {
	d, ok := props.Value(DatePropertyName).(notion.Date)
	if !ok || d.Range == nil || d.Range.Start == "" {
		return nil
	}
	start := d.Range.Start
	return &start
}
