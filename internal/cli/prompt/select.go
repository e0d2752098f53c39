// Package prompt provides interactive CLI prompts for user input.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/thoreinstein/modcheck/internal/errors"
	"github.com/thoreinstein/modcheck/internal/logging"
)

// Sentinel errors for validator selection.
var (
	ErrNoValidators     = errors.New("no validators to select from")
	ErrInvalidSelection = errors.New("invalid selection")
)

// FindFunc matches the signature of fuzzyfinder.FindMulti.
type FindFunc func(items any, itemFunc func(int) string, opts ...fuzzyfinder.Option) ([]int, error)

// Selector handles interactive validator selection prompts.
type Selector struct {
	reader io.Reader
	writer io.Writer
	find   FindFunc
	fuzzy  bool
}

// NewSelector creates a Selector on stdin and stdout. The fuzzy finder
// is used when stdin is a terminal; otherwise a numbered list is shown.
func NewSelector() *Selector {
	return &Selector{
		reader: os.Stdin,
		writer: os.Stdout,
		find:   fuzzyfinder.FindMulti,
		fuzzy:  logging.IsTTY(os.Stdin),
	}
}

// NewSelectorWithIO creates a numbered-list Selector with custom reader and writer for testing.
func NewSelectorWithIO(r io.Reader, w io.Writer) *Selector {
	return &Selector{reader: r, writer: w}
}

// NewSelectorWithFinder creates a Selector that always uses find.
func NewSelectorWithFinder(find FindFunc) *Selector {
	return &Selector{find: find, fuzzy: true}
}

// PickValidators prompts the user to choose one or more of names.
// The picks are returned in the order of names.
//
// Returns:
//   - ErrNoValidators if the list is empty
//   - errors.ErrSelectionCancelled if the user aborts or input is EOF
//   - ErrInvalidSelection if a number is out of range
func (s *Selector) PickValidators(names []string) ([]string, error) {
	if len(names) == 0 {
		return nil, ErrNoValidators
	}

	var (
		idx []int
		err error
	)
	if s.fuzzy && s.find != nil {
		idx, err = s.findMulti(names)
	} else {
		idx, err = s.readNumbers(names)
	}
	if err != nil {
		return nil, err
	}
	if len(idx) == 0 {
		return nil, errors.ErrSelectionCancelled
	}

	slices.Sort(idx)
	idx = slices.Compact(idx)
	picked := make([]string, len(idx))
	for i, n := range idx {
		picked[i] = names[n]
	}
	return picked, nil
}

func (s *Selector) findMulti(names []string) ([]int, error) {
	idx, err := s.find(
		names,
		func(i int) string { return names[i] },
		fuzzyfinder.WithPromptString("validators> "),
		fuzzyfinder.WithHeader("Tab to select, Enter to run"),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil, errors.ErrSelectionCancelled
		}
		return nil, errors.Wrap(err, "interactive selection failed")
	}
	return idx, nil
}

// readNumbers shows a numbered list and reads a comma separated answer.
// An empty answer selects everything.
func (s *Selector) readNumbers(names []string) ([]int, error) {
	fmt.Fprintln(s.writer, "Available validators:")
	for i, name := range names {
		fmt.Fprintf(s.writer, "  [%d] %s\n", i+1, name)
	}
	fmt.Fprintf(s.writer, "Select (comma separated) [all]: ")

	input, err := bufio.NewReader(s.reader).ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || input == "") {
		if errors.Is(err, io.EOF) {
			return nil, errors.ErrSelectionCancelled
		}
		return nil, errors.Wrap(err, "reading selection")
	}

	input = strings.TrimSpace(input)
	if input == "" {
		all := make([]int, len(names))
		for i := range all {
			all[i] = i
		}
		return all, nil
	}

	var idx []int
	for _, field := range strings.Split(input, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		n, err := strconv.Atoi(field)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidSelection, "%q is not a number", field)
		}
		if n < 1 || n > len(names) {
			return nil, errors.Wrapf(ErrInvalidSelection, "%d is out of range [1-%d]", n, len(names))
		}
		idx = append(idx, n-1)
	}
	return idx, nil
}

// PickValidatorsDefault is a convenience function that uses stdin/stdout.
func PickValidatorsDefault(names []string) ([]string, error) {
	return NewSelector().PickValidators(names)
}
