// Package store implements csvmongo.Connector and csvmongo.Store on top of
// the official MongoDB driver.
//
// Connect retries transient failures (server not up yet, DNS not ready,
// primary election) with exponential backoff, then pings the primary so a
// returned Store is known to be reachable.
//
// Two replace strategies are offered:
//
//   - Clear + Insert: DeleteMany({}) followed by one InsertMany. Not atomic.
//   - Stage + Commit: InsertMany into <collection>_staging_<uuid>, then
//     renameCollection with dropTarget over the target. Readers see either
//     the old or the new contents, never a mix.
package store
