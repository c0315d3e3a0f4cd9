package storage

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/pixil98/go-invgui/internal"
)

const (
	defaultSelectorRowLength = 80
	defaultSelectorRowCount  = 5

	// entryPadding is the width added to a label: "nn. " before and two
	// spaces after.
	entryPadding = 6
)

var ErrNoOptions = errors.New("nothing to select")

type validatingSelectable interface {
	ValidatingSpec
	Selector() string
}

// SelectableStorer presents the records of a store as a numbered menu.
type SelectableStorer[T validatingSelectable] struct {
	Storer[T]

	options []option[T]
	output  []string
}

type option[T validatingSelectable] struct {
	id  string
	val T
}

func NewSelectableStorer[T validatingSelectable](st Storer[T]) *SelectableStorer[T] {
	s := &SelectableStorer[T]{Storer: st}

	for id, val := range s.GetAll() {
		s.options = append(s.options, option[T]{id: id, val: val})
	}
	slices.SortFunc(s.options, func(a, b option[T]) int {
		return cmp.Or(
			cmp.Compare(a.val.Selector(), b.val.Selector()),
			cmp.Compare(a.id, b.id),
		)
	})
	s.build()

	return s
}

// build lays the entries out in columns, filling each column top to bottom.
// The row count grows past the default when the entries do not fit.
func (s *SelectableStorer[T]) build() {
	labelWidth := 0
	for _, o := range s.options {
		labelWidth = max(labelWidth, len(o.val.Selector()))
	}

	colWidth := labelWidth + entryPadding
	numCols := max(defaultSelectorRowLength/colWidth, 1)
	numRows := max((len(s.options)+numCols-1)/numCols, defaultSelectorRowCount)

	rows := make([]string, numRows)
	for i, o := range s.options {
		rows[i%numRows] += fmt.Sprintf("%2d. %-*s  ", i+1, labelWidth, o.val.Selector())
	}

	s.output = rows
}

// Menu returns the non-empty lines of the numbered menu.
func (s *SelectableStorer[T]) Menu() []string {
	var lines []string
	for _, str := range s.output {
		if len(str) > 0 {
			lines = append(lines, str)
		}
	}
	return lines
}

// Prompt prints the menu under prompt and reads entries until a valid
// number is given, returning the chosen id.
func (s *SelectableStorer[T]) Prompt(rw io.ReadWriter, prompt string) (string, error) {
	if len(s.options) == 0 {
		return "", ErrNoOptions
	}

	_, err := fmt.Fprintf(rw, "%s\n", prompt)
	if err != nil {
		return "", err
	}

	for _, str := range s.Menu() {
		_, err = fmt.Fprintf(rw, "%s\n", str)
		if err != nil {
			return "", err
		}
	}

	selection, err := internal.Prompt(rw, "Make your selection: ", internal.WithValidator(
		func(str string) (bool, string) {
			i, err := strconv.Atoi(str)
			if err != nil || s.Select(i) == "" {
				return false, "Invalid selection!\n"
			}
			return true, ""
		},
	))
	if err != nil {
		return "", err
	}

	i, err := strconv.Atoi(selection)
	if err != nil {
		return "", err
	}

	return s.Select(i), nil
}

// Select returns the id of the 1-based menu entry i, or "" when out of range.
func (s *SelectableStorer[T]) Select(i int) string {
	if i < 1 || i > len(s.options) {
		return ""
	}
	return s.options[i-1].id
}

// Len returns the number of menu entries.
func (s *SelectableStorer[T]) Len() int {
	return len(s.options)
}
