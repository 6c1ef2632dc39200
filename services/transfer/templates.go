package transfer

import (
	"fmt"

	"acadport/services/record"
	"acadport/utils"
)

var example = record.Fields{
	Type:        record.TypeAchievement,
	Title:       "Example Achievement",
	Description: "This is a sample description",
	Date:        "2025-01-15",
	Grade:       "A+",
	Institution: "University Name",
	Category:    "Computer Science",
}

func CSVTemplate() File {
	content := "type,title,description,date,grade,institution,category\n" +
		"achievement,Example Achievement,This is a sample description,2025-01-15,A+,University Name,Computer Science"
	return File{Name: "template.csv", ContentType: CSVContentType, Content: []byte(content)}
}

func JSONTemplate() File {
	// Encoding a fixed struct slice cannot fail.
	content, _ := utils.PrettyJSON([]record.Fields{example})
	return File{Name: "template.json", ContentType: JSONContentType, Content: content}
}

// Template returns the template for format, "csv" or "json".
func Template(format string) (File, error) {
	switch format {
	case "csv":
		return CSVTemplate(), nil
	case "json":
		return JSONTemplate(), nil
	}
	return File{}, fmt.Errorf("%w: %q", ErrUnknownTemplate, format)
}
