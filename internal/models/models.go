// package models defines the data model for the playback client
package models

// LikedSongsName is the display name of the saved-tracks collection, listed after the user's playlists.
const LikedSongsName = "Liked Songs"

// Profile represents the authenticated user.
type Profile struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email,omitempty"`
	Product     string `json:"product,omitempty"` // premium, free, etc.
}

// Greeting returns the header line shown once the profile loads.
func (p Profile) Greeting() string {
	return "Hello, " + p.DisplayName + " here is your library"
}

// Playlist represents a playlist; URI is the context URI used to start playback.
//
// Liked marks the synthetic saved-tracks entry, which has no URI.
type Playlist struct {
	ID         string `json:"id,omitempty"`
	Name       string `json:"name"`
	URI        string `json:"uri,omitempty"`
	TrackCount int    `json:"track_count,omitempty"`
	Liked      bool   `json:"liked,omitempty"`
}

// LikedSongs returns the synthetic entry for the saved-tracks collection.
func LikedSongs(count int) Playlist {
	return Playlist{Name: LikedSongsName, TrackCount: count, Liked: true}
}

// Track represents a track reference.
type Track struct {
	ID     string `json:"id,omitempty"`
	Name   string `json:"name"`
	Artist string `json:"artist,omitempty"`
	Album  string `json:"album,omitempty"`
	URI    string `json:"uri"`
}

// Device represents a Spotify Connect device.
type Device struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	Active     bool   `json:"active"`
	Restricted bool   `json:"restricted,omitempty"`
}

// PlayerState represents the current playback state of the user's player.
type PlayerState struct {
	Device  Device `json:"device"`
	Playing bool   `json:"playing"`
	Shuffle bool   `json:"shuffle"`
	Repeat  string `json:"repeat,omitempty"`
	Track   *Track `json:"track,omitempty"`
}

// URIs returns the track URIs in order.
func URIs(tracks []Track) []string {
	uris := make([]string, 0, len(tracks))
	for _, t := range tracks {
		uris = append(uris, t.URI)
	}
	return uris
}
