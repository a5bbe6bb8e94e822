package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldOperation = "operation"
	FieldError     = "error"
	FieldKey       = "key"
	FieldBackend   = "backend"
	FieldExpenseID = "expense_id"
	FieldCount     = "count"
	FieldBytes     = "bytes"
)

// Components
const (
	ComponentApp     = "app"
	ComponentStore   = "store"
	ComponentStorage = "storage"
	ComponentCLI     = "cli"
)

// Operations
const (
	OpLoad    = "load"
	OpPersist = "persist"
	OpCreate  = "create"
	OpUpdate  = "update"
	OpDelete  = "delete"
	OpImport  = "import"
)
