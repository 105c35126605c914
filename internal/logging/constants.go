package logging

// Standardized field names for structured logging.
const (
	FieldFile          = "file_path"
	FieldRunID         = "run_id"
	FieldSource        = "source"
	FieldCategory      = "category"
	FieldKeyword       = "keyword"
	FieldDescription   = "description"
	FieldDate          = "date"
	FieldOperation     = "operation"
	FieldError         = "error"
	FieldCount         = "count"
	FieldRead          = "read"
	FieldAdded         = "added"
	FieldDropped       = "dropped"
	FieldDuplicates    = "duplicates"
	FieldBackend       = "backend"
	FieldPolicy        = "match_policy"
	FieldCategorized   = "categorized"
	FieldUncategorized = "uncategorized"
)
