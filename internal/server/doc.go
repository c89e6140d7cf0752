// Package server implements the auth proxy: the three OAuth endpoints that need the client secret,
// plus the static browser player.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Endpoints
//
//	GET /login                          → 302 to the authorization endpoint
//	GET /callback?code=                 → 302 to /?access_token=..&refresh_token=..
//	GET /refresh_token?refresh_token=   → 200 {"access_token": ".."}
//	GET /                               → embedded static player
//
// A failed exchange redirects to /?error=<code> and is logged at error level.
//
// # Middleware
//
// [New] installs [Recover], [RequestID], [Logger] and [CORS], and [RateLimit] when a limit is configured.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
