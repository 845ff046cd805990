// Package database provides the data access layer for the catalog.
//
// # Architecture
//
//	database/
//	├── database.go      # Connection setup and migrations
//	└── books/           # Book CRUD operations and the store error taxonomy
//
// The catalog is stored as a single "books" collection in SQLite through GORM.
// Every record is addressed by an opaque string id assigned on create.
//
// # Usage
//
//	db, err := database.NewDatabase("./bookshelf.db")
//	repo := books.NewRepository(db.DB)
//	all, err := repo.List(ctx)
//
// Writes are persisted immediately and are not coordinated across records:
// two concurrent updates of the same book race and the later one wins.
package database
