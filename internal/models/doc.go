// Package models defines the service-neutral data the playback client works with.
//
// These are lightweight DTOs mapped from Spotify Web API responses:
//   - [Profile] : the authenticated user
//   - [Playlist] : playlist metadata with its context URI
//   - [Track] : a saved or playing track with its track URI
//   - [Device] : a Spotify Connect device the player can attach to
//   - [PlayerState] : current playback state, including shuffle
//
// URIs are passed through unmodified; nothing here parses their structure.
package models
