// Package films persists per-account film entries: rated films, unrated
// watched films and the watchlist.
//
// # Data Model
//
// One FilmEntry row exists per (account, external catalog id). Saves are
// upserts on that pair, so repeating a save updates the row in place. A row
// with toWatch set never carries a rating, a comment or a viewed timestamp.
//
// Key Types
//
//   - type Repository        used by the services layer
//   - type SQLiteRepository  SQLite implementation over dbx.DBTX
//
// Typical Usage
//
//	repo := films.NewSQLiteRepository(db, clockwork.NewRealClock())
//	res, _ := repo.Save(ctx, accountID, input)
//	watched, _ := repo.GetWatched(ctx, accountID)
//	stats, _ := repo.GetStats(ctx, accountID)
package films
