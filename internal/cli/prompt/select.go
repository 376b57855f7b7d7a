// Package prompt provides interactive CLI prompts for choosing a client.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/thoreinstein/workspace/internal/errors"
	"github.com/thoreinstein/workspace/internal/platform"
)

// Sentinel errors for client selection.
var (
	ErrNoClients          = errors.New("no clients to select from")
	ErrInvalidSelection   = errors.New("invalid selection")
	ErrSelectionCancelled = errors.New("selection cancelled")
)

// Selector handles interactive client selection prompts.
type Selector struct {
	reader io.Reader
	writer io.Writer
}

// NewSelectorWithIO creates a Selector reading answers from r and writing
// the prompt to w.
func NewSelectorWithIO(r io.Reader, w io.Writer) *Selector {
	return &Selector{
		reader: r,
		writer: w,
	}
}

// SelectClient prompts the user to choose a client from a numbered list.
//
// Returns:
//   - ErrNoClients if the list is empty
//   - The client if only one exists (auto-selects without prompting)
//   - The selected client based on user input, the first on empty input
//   - ErrInvalidSelection if the selection is out of range
//   - ErrSelectionCancelled if input is EOF (e.g., Ctrl+D)
func (s *Selector) SelectClient(clients []*platform.Detection) (platform.Kind, error) {
	if len(clients) == 0 {
		return "", ErrNoClients
	}

	if len(clients) == 1 {
		return clients[0].Kind, nil
	}

	fmt.Fprintln(s.writer, "Select a client:")
	for i, c := range clients {
		fmt.Fprintf(s.writer, "  [%d] %s (%s)\n", i+1, c.Kind, Describe(c))
	}
	fmt.Fprintf(s.writer, "Select [1]: ")

	reader := bufio.NewReader(s.reader)
	input, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && strings.TrimSpace(input) == "" {
			return "", ErrSelectionCancelled
		}
		if !errors.Is(err, io.EOF) {
			return "", errors.Wrap(err, "reading selection")
		}
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return clients[0].Kind, nil
	}

	selection, err := strconv.Atoi(input)
	if err != nil {
		// Accept the client name as well as its number
		for _, c := range clients {
			if string(c.Kind) == input {
				return c.Kind, nil
			}
		}
		return "", errors.Wrapf(ErrInvalidSelection, "%q is not a number or client", input)
	}

	// Validate range (1-indexed)
	if selection < 1 || selection > len(clients) {
		return "", errors.Wrapf(ErrInvalidSelection, "%d is out of range [1-%d]", selection, len(clients))
	}

	return clients[selection-1].Kind, nil
}

// FuzzySelectClient opens a full-screen fuzzy finder over clients.
// Aborting the finder returns ErrSelectionCancelled.
func FuzzySelectClient(clients []*platform.Detection) (platform.Kind, error) {
	if len(clients) == 0 {
		return "", ErrNoClients
	}

	idx, err := fuzzyfinder.Find(
		clients,
		func(i int) string {
			return string(clients[i].Kind)
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			c := clients[i]
			return fmt.Sprintf("Client: %s\nStatus: %s\nConfig: %s",
				c.DisplayName,
				Describe(c),
				c.ConfigPath,
			)
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return "", ErrSelectionCancelled
		}
		return "", errors.Wrap(err, "interactive selection failed")
	}
	return clients[idx].Kind, nil
}

// Describe summarizes a detection for selection lists.
func Describe(d *platform.Detection) string {
	switch {
	case d.Err != nil:
		return "unreadable"
	case d.Registered:
		return "registered"
	case d.Status == platform.StatusInstalled:
		return "installed"
	default:
		return "not installed"
	}
}
