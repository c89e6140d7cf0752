// package formatter renders the user's library as plain text, Markdown or CSV
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/desertthunder/webplayer/internal/models"
	"github.com/desertthunder/webplayer/internal/shared"
)

// Format selects an output renderer.
type Format string

const (
	Text     Format = "text"
	Markdown Format = "markdown"
	CSV      Format = "csv"
)

// ParseFormat accepts text, markdown (or md) and csv, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return Text, nil
	case "markdown", "md":
		return Markdown, nil
	case "csv":
		return CSV, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q (want text, markdown or csv)", shared.ErrInvalidArgument, s)
	}
}

// LibraryToText lists playlists one per line, numbered, under the profile greeting.
func LibraryToText(profile *models.Profile, playlists []models.Playlist) []byte {
	var buf bytes.Buffer

	if profile != nil {
		buf.WriteString(profile.Greeting() + "\n\n")
	}

	for i, pl := range playlists {
		if pl.Liked {
			fmt.Fprintf(&buf, "%d. %s (%d tracks)\n", i+1, pl.Name, pl.TrackCount)
			continue
		}
		fmt.Fprintf(&buf, "%d. %s  %s\n", i+1, pl.Name, pl.URI)
	}

	return buf.Bytes()
}

// LibraryToMarkdown renders a heading per user and a numbered playlist list.
func LibraryToMarkdown(profile *models.Profile, playlists []models.Playlist) []byte {
	var buf bytes.Buffer

	title := "Library"
	if profile != nil && profile.DisplayName != "" {
		title = profile.DisplayName + "'s library"
	}
	fmt.Fprintf(&buf, "# %s\n\n", title)
	fmt.Fprintf(&buf, "**Playlists**: %d\n\n", len(playlists))

	buf.WriteString("## Playlists\n\n")
	for i, pl := range playlists {
		if pl.Liked {
			fmt.Fprintf(&buf, "%d. **%s** [%d tracks]\n", i+1, pl.Name, pl.TrackCount)
			continue
		}
		fmt.Fprintf(&buf, "%d. %s `%s`\n", i+1, pl.Name, pl.URI)
	}

	return buf.Bytes()
}

// LibraryToCSV converts playlists to CSV with columns: ID, Name, URI, Tracks, Liked
func LibraryToCSV(playlists []models.Playlist) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Name", "URI", "Tracks", "Liked"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, pl := range playlists {
		record := []string{
			pl.ID,
			pl.Name,
			pl.URI,
			strconv.Itoa(pl.TrackCount),
			strconv.FormatBool(pl.Liked),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// WriteLibrary renders the library in format and writes it to w.
func WriteLibrary(w io.Writer, format Format, profile *models.Profile, playlists []models.Playlist) error {
	var (
		data []byte
		err  error
	)

	switch format {
	case Markdown:
		data = LibraryToMarkdown(profile, playlists)
	case CSV:
		data, err = LibraryToCSV(playlists)
	default:
		data = LibraryToText(profile, playlists)
	}
	if err != nil {
		return err
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
