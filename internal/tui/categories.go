package tui

// Category is one entry of the configuration menu
type Category struct {
	ID          string
	Name        string
	Description string
}

// Categories lists the menu entries in display order
var Categories = []Category{
	{ID: "manifest", Name: "Manifest", Description: "Where the metadata file is written"},
	{ID: "digest", Name: "Checksums", Description: "Number of boxes hashed in parallel"},
	{ID: "cache", Name: "Cache", Description: "Reuse checksums of unchanged boxes"},
	{ID: "logging", Name: "Logging", Description: "Log level and format"},
}

// GetCategoryByID returns the category with the given ID, or nil
func GetCategoryByID(id string) *Category {
	for i := range Categories {
		if Categories[i].ID == id {
			return &Categories[i]
		}
	}
	return nil
}

func GetCategoryNames() []string {
	names := make([]string, len(Categories))
	for i, c := range Categories {
		names[i] = c.Name
	}
	return names
}
