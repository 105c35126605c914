package models

// Categories
const (
	// CategoryUncategorized marks a record that no keyword matched yet.
	CategoryUncategorized = "Uncategorized"
)

// File permissions
const (
	PermissionDataFile  = 0644
	PermissionDirectory = 0750
)
