package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/webplayer/internal/models"
	"github.com/desertthunder/webplayer/internal/player"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgLibraryLoaded MsgKind = iota
	MsgConnected
	MsgCommandDone
)

type libraryResult struct {
	library *player.Library
	err     error
}

type connectResult struct {
	device *models.Device
	err    error
}

type commandResult struct {
	action string
	err    error
}

// libraryLoadedMsg is the constructor for [MsgLibraryLoaded]
func libraryLoadedMsg(lib *player.Library, err error) Msg {
	return Msg{kind: MsgLibraryLoaded, data: libraryResult{lib, err}}
}

// connectedMsg is the constructor for [MsgConnected]
func connectedMsg(device *models.Device, err error) Msg {
	return Msg{kind: MsgConnected, data: connectResult{device, err}}
}

// commandDoneMsg is the constructor for [MsgCommandDone]
func commandDoneMsg(action string, err error) Msg {
	return Msg{kind: MsgCommandDone, data: commandResult{action, err}}
}
