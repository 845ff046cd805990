// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Store Service
//
//   - BookStore: list/create/update/delete on the catalog (internal/http/books.go),
//     implemented by books.Repository
//   - HealthChecker, BookCounter: health endpoint checks (internal/http/health.go)
//
// ## Browser Client
//
//   - view.API: the catalog API as seen by the browser client (internal/view/actions.go),
//     implemented by client.Client over HTTP
//   - StateStore: per-browser view state (internal/http/ui.go), implemented by
//     session.Manager
//
// ## Export Pipeline
//
//   - BookLister, BookExporter: catalog snapshots (internal/exporters/generic.go)
//   - TaskQueue, ExportEnqueuer: queued and scheduled exports, implemented by tasks.Client
//
// Compile-time checks for all of the above live in checks.go.
package interfaces
