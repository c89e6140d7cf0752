// Package player is the playback client: it holds the session token and device handle,
// loads the user's library, and issues playback commands.
//
// # Session
//
// A [Session] is created from the page URL the proxy redirects to (/?access_token=..&refresh_token=..).
// It is an [oauth2.TokenSource], so a token swapped in by [Controller.Refresh] is used by the next request.
//
// # Readiness
//
// Device-targeted commands ([Controller.PlayPlaylist], [Controller.PlayLikedSongs], [Controller.ToggleShuffle])
// need a device handle. Until a ready [Event] arrives they show "Player not ready" and return
// [shared.ErrPlayerNotReady] without touching the network.
//
// # Errors
//
// Every failure is funnelled into one [Display]. [Banner] keeps a single slot: the last message wins.
package player
