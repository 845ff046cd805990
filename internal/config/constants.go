package config

const (
	// DefaultDatabasePath is the default path for the catalog database
	DefaultDatabasePath = "./bookshelf.db"

	// DefaultExportDir is where catalog snapshots are written
	DefaultExportDir = "./exports"

	// DefaultPageSize is the number of book cards per page
	DefaultPageSize = 8
)
