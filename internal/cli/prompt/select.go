// Package prompt provides interactive CLI prompts for choosing an SDK.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/ellemenno/loomtasks/internal/errors"
	"github.com/ellemenno/loomtasks/internal/logging"
)

// Sentinel errors for version selection.
var (
	ErrNoChoices          = errors.New("nothing to select from")
	ErrInvalidSelection   = errors.New("invalid selection")
	ErrSelectionCancelled = errors.New("selection cancelled")
)

// Finder picks an index from items. It is the seam for the full-screen
// fuzzy finder.
type Finder func(items []string, preview func(item string) string) (int, error)

// Selector handles interactive selection prompts.
type Selector struct {
	reader io.Reader
	writer io.Writer

	// finder is used instead of the numbered prompt when non-nil.
	finder Finder
}

// NewSelector creates a Selector on stdin and stdout. When both are
// terminals it uses the fuzzy finder.
func NewSelector() *Selector {
	s := &Selector{reader: os.Stdin, writer: os.Stdout}
	if logging.Interactive(os.Stdin, os.Stdout) {
		s.finder = FuzzyFind
	}
	return s
}

// NewSelectorWithIO creates a numbered-prompt Selector with custom reader
// and writer for testing.
func NewSelectorWithIO(r io.Reader, w io.Writer) *Selector {
	return &Selector{reader: r, writer: w}
}

// WithFinder returns a copy of s that selects with f.
func (s *Selector) WithFinder(f Finder) *Selector {
	c := *s
	c.finder = f
	return &c
}

// Select prompts for one of choices. current, when present in choices, is
// marked and offered as the default.
//
// Returns:
//   - ErrNoChoices if choices is empty
//   - the only choice without prompting when there is exactly one
//   - ErrInvalidSelection if the input is not a listed number
//   - ErrSelectionCancelled on EOF or when the finder is aborted
func (s *Selector) Select(title string, choices []string, current string, preview func(string) string) (string, error) {
	if len(choices) == 0 {
		return "", ErrNoChoices
	}
	if len(choices) == 1 {
		return choices[0], nil
	}

	if s.finder != nil {
		idx, err := s.finder(choices, preview)
		if err != nil {
			return "", err
		}
		return choices[idx], nil
	}

	def := max(slices.Index(choices, current), 0)

	fmt.Fprintf(s.writer, "%s:\n", title)
	for i, c := range choices {
		mark := " "
		if c == current {
			mark = "*"
		}
		fmt.Fprintf(s.writer, " %s[%d] %s\n", mark, i+1, c)
	}
	fmt.Fprintf(s.writer, "Select [%d]: ", def+1)

	reader := bufio.NewReader(s.reader)
	input, err := reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && input != "") {
		if errors.Is(err, io.EOF) {
			return "", ErrSelectionCancelled
		}
		return "", errors.Wrap(err, "reading selection")
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return choices[def], nil
	}

	n, err := strconv.Atoi(input)
	if err != nil {
		// Accept the choice itself as typed.
		if slices.Contains(choices, input) {
			return input, nil
		}
		return "", errors.Wrapf(ErrInvalidSelection, "%q is not a number", input)
	}
	if n < 1 || n > len(choices) {
		return "", errors.Wrapf(ErrInvalidSelection, "%d is out of range [1-%d]", n, len(choices))
	}
	return choices[n-1], nil
}
