package constants

// Storage adapter types
const (
	StorageTypeFile     = "file"
	StorageTypeSQLite   = "sqlite"
	StorageTypePostgres = "postgres"
	StorageTypeMemory   = "memory"
)
