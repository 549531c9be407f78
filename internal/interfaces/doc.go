// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - BookReader: Read-only access to books (internal/services/interfaces.go)
//   - BookStore: Full record store behind the catalog service (internal/services/interfaces.go)
//   - HealthChecker, BookCounter: Health endpoint probes (internal/http/stores.go)
//
// ## Catalog Interfaces
//
//   - Catalog: Validated create/update/delete/list used by handlers (internal/http/stores.go)
//   - FormDecoder: Submitted values to BookForm (internal/http/stores.go)
//   - FlashStore: One-shot messages across a redirect (internal/http/stores.go)
//
// ## Audit Interfaces
//
//   - AuditRecorder: One call per successful catalog write (internal/services/interfaces.go)
//   - BookHistory: Per-book audit trail for the detail page (internal/http/stores.go)
//   - AuditEventCleaner: Retention pruning (internal/tasks, internal/scheduler)
//   - CleanupRunner: Queued or inline pruning run by the cron scheduler (internal/scheduler)
//
// # Adding a New Book Field
//
//  1. Add the column to entities.Book and entities.BookFields, and copy it in Apply/Fields.
//
//  2. Add the form field with its mold and validator tags in internal/forms/book.go,
//     and convert it in Validator.Validate.
//
//  3. Render it in templates/book_form.html and templates/book_detail.html.
//
//  4. Add the CSV column to services.ImportColumns if it can be imported.
//
// # Adding a New Maintenance Job
//
//  1. Define a backlite task and processor in internal/tasks/:
//
//     type RebuildIndexTask struct{}
//
//     func (t RebuildIndexTask) Config() backlite.QueueConfig
//
//  2. Register the queue in entrypoint.go.
//
//  3. Schedule it from internal/scheduler/ with a cron expression.
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// This pattern is used throughout the codebase. See checks.go for examples.
package interfaces
