// Package uploads keeps a local history of the stories this client has
// uploaded.
//
// The history is append-only and lives next to the session in the client's
// SQLite database. The story API has no "my stories" endpoint, so this is the
// only place a user can see what they sent from this machine.
//
// Typical Usage
//
//	repo := uploads.NewSQLiteRepository(db)
//	_ = repo.Add(ctx, &models.Upload{...})
//	recent, _ := repo.List(ctx, 10)
package uploads
