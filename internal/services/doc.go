// Package services implements the HTTP clients the proxy and the playback client talk through.
//
// # Authorization
//
// [SpotifyAuth] wraps an [oauth2.Config] pointed at the Spotify Accounts service. It builds the
// login URL with a fixed scope list and performs the two confidential exchanges: authorization
// code for tokens, and refresh token for a new access token. Token requests authenticate with
// HTTP Basic credentials derived from the client id and secret.
//
// # Playback
//
// [PlaybackService] wraps the zmb3/spotify Web API client. Every request carries the bearer token
// from an [oauth2.TokenSource], read per request so a manual refresh takes effect immediately.
// Device-targeted calls (play a context, play URIs, set shuffle) take an explicit device id;
// transport controls (resume, pause, next, previous) act on whatever device is attached.
//
// # Proxy
//
// [ProxyService] is the player's raw HTTP client for the proxy's own endpoints.
//
// # Error Handling
//
// Services wrap failures with sentinels from the shared package:
//   - [shared.ErrTokenExpired] : the Web API answered 401
//   - [shared.ErrForbidden] : the Web API answered 403 (e.g. a non-premium account)
//   - [shared.ErrAPIRequest] : any other Web API failure
//   - [shared.ErrAuthFailed] : authorization code exchange failed
//   - [shared.ErrRefreshFailed] : refresh token exchange failed
//
// Nothing here retries. Callers decide what a failure means.
package services
