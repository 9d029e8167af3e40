package notion

import (
	"time"

	"github.com/jomei/notionapi"
)

// Properties is a page property map keyed by column name, in the SDK's
// shape. Values are built through the typed constructors below so every
// payload matches the database schema instead of being assembled ad hoc.
type Properties = notionapi.Properties

func titleProperty(text string) notionapi.Property {
	return &notionapi.TitleProperty{
		Title: []notionapi.RichText{{Text: &notionapi.Text{Content: text}}},
	}
}

func selectProperty(name string) notionapi.Property {
	return &notionapi.SelectProperty{Select: notionapi.Option{Name: name}}
}

// dateProperty takes a resolved YYYY-MM-DD value. The empty string clears
// the remote field ("date": null), which is how a task moving to No Date is
// mirrored.
func dateProperty(day string) notionapi.Property {
	t, err := time.Parse(dayLayout, day)
	if err != nil {
		return &notionapi.DateProperty{}
	}
	start := notionapi.Date(t)
	return &notionapi.DateProperty{Date: &notionapi.DateObject{Start: &start}}
}

func checkboxProperty(checked bool) notionapi.Property {
	return &notionapi.CheckboxProperty{Checkbox: checked}
}

const dayLayout = "2006-01-02"

// Accepted forms for a task's absolute date string, tried in order.
var absoluteDateLayouts = []string{
	"2 Jan 06",
	dayLayout,
	"Jan 2, 2006",
	time.RFC3339,
}

func parseAbsoluteDate(value string) (time.Time, bool) {
	for _, layout := range absoluteDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
