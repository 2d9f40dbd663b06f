// Package session persists form wizard progress between requests.
//
// A [Session] is identified by a random token kept in a cookie. Its data is
// split into scopes, one per wizard, so several wizards can share a session
// without seeing each other's values:
//
//	sess.Set("apply", "name", "Jane")
//	sess.Values("apply") // map[name:Jane]
//	sess.Reset("apply")  // forget the whole wizard
//
// Sessions are stored through the [Store] interface. Three implementations
// are provided:
//
//   - [MemoryStore]: in-process, with TTL expiry and optional LRU eviction.
//     Suitable for tests and single instance deployments.
//   - [RedisStore]: JSON documents in Redis with native key expiry.
//   - [PostgresStore]: a jsonb table managed by the migrations in [Migrations].
//
// Every store serializes the session on write, so a loaded session never
// shares maps with another request.
package session
