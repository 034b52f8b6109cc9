package model

// TableProfile defines the program dialect of a CNC glass-cutting table.
type TableProfile struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	StartCode []string `json:"start_code"`
	EndCode   []string `json:"end_code"`

	ToolDown  string `json:"tool_down"` // Lower the scoring wheel
	ToolUp    string `json:"tool_up"`   // Raise the scoring wheel
	RapidMove string `json:"rapid_move"`
	FeedMove  string `json:"feed_move"`

	CommentPrefix string `json:"comment_prefix"`
	CommentSuffix string `json:"comment_suffix"`

	DecimalPlaces int `json:"decimal_places"`
}

// Built-in cutting table profiles
var TableProfiles = []TableProfile{
	{
		Name:          "Grbl",
		Description:   "Grbl controller with the scoring head on the spindle output",
		StartCode:     []string{"G90", "G17"},
		EndCode:       []string{"G0 X0 Y0", "M2"},
		ToolDown:      "M3",
		ToolUp:        "M5",
		RapidMove:     "G0",
		FeedMove:      "G1",
		CommentPrefix: ";",
		DecimalPlaces: 3,
	},
	{
		Name:          "Generic",
		Description:   "Generic standard GCode",
		StartCode:     []string{"G90"},
		EndCode:       []string{"G0 X0 Y0", "M2"},
		ToolDown:      "M7",
		ToolUp:        "M9",
		RapidMove:     "G0",
		FeedMove:      "G1",
		CommentPrefix: "(",
		CommentSuffix: ")",
		DecimalPlaces: 2,
	},
}

// GetTableProfile returns a profile by name, or the Generic profile if not found.
func GetTableProfile(name string) TableProfile {
	for _, p := range TableProfiles {
		if p.Name == name {
			return p
		}
	}
	return TableProfiles[len(TableProfiles)-1]
}

// GetTableProfileNames returns the names of all built-in profiles.
func GetTableProfileNames() []string {
	var names []string
	for _, p := range TableProfiles {
		names = append(names, p.Name)
	}
	return names
}
