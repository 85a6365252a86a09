// Package evidence memoizes what the ripper logs in an album folder say
// about the disc it came from.
//
// A Cache answers, per directory, whether any log with a usable table of
// contents was found and which MusicBrainz release ids those tables resolved
// to. The first query for a directory walks it recursively; every later query
// is served from the Store for the lifetime of the Cache. Concurrent queries
// for the same directory share one walk.
//
// Two Store backends exist: MemoryStore (a guarded map) and SQLiteStore (an
// in-memory SQLite database). Neither outlives the process.
package evidence
