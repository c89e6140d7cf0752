// Package ui implements an interactive terminal player using bubbletea's Elm architecture.
//
// The single view shows the greeting header, the library (playlists followed by Liked Songs),
// the device and shuffle indicators, and the error banner. Loading the library and connecting
// to a device run as independent commands on startup.
//
// The [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Every playback action is a [tea.Cmd] that calls the [player.Controller]; failures land in the shared [player.Banner].
//
// Keyboard navigation uses vim-style bindings (j/k, enter) plus single-key playback controls,
// with contextual help displayed via charmbracelet/bubbles/help.
package ui
