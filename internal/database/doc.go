// Package database provides the transactional persistence layer for the
// telecom back office.
//
// # Architecture
//
// The layer is organized into one sub-package per aggregate:
//
//	database/
//	├── database.go      # SessionFactory: connection, schema, fresh sessions
//	├── tx.go            # Unit-of-work wrapper (InTransaction, RunInTransaction)
//	├── errors.go        # Error taxonomy and store error translation
//	├── subscribers/     # Subscriber lookup, creation, blocking, bulk delete
//	├── services/        # Service catalog and subscriber links
//	├── invoices/        # Invoices, payment, unpaid listing
//	└── users/           # Accounts for the web front
//
// # Sessions
//
// Every repository operation asks the SessionFactory for a fresh session.
// Reads run on it directly; mutations run inside RunInTransaction, which
// commits on success and rolls back on error or panic:
//
//	factory, err := database.Open(cfg.Database, log)
//	subs := subscribers.NewRepository(factory)
//
//	err = subs.Block(ctx, 2)
//	if errors.Is(err, database.ErrEntryNotFound) {
//		// no subscriber with that id
//	}
//
// # Errors
//
// Errors leaving any repository are *Error values. errors.Is matches
// ErrDataAccess for every kind, and the narrower ErrDuplicateEntry,
// ErrEntryNotFound and ErrUnexpected for their own kind.
package database
