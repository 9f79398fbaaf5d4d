// Package rcfile edits the section of a pylint config file that lists
// disabled messages, leaving every other line untouched.
package rcfile

import (
	"os"
	"strings"

	"github.com/advdv/pylsuppress/cmd/pylsuppress/internal/lintout"
	"github.com/cockroachdb/errors"
)

// ErrNoSection is returned when the marker header, or the header that follows
// it, cannot be found.
var ErrNoSection = errors.New("messages control section not found")

const notFound = -1

// Sections partitions the lines of a config file around one section. Lines
// keep their trailing newline.
type Sections struct {
	Before  []string
	Section []string
	After   []string
}

// Bounds locates the section that starts with marker. begin is the marker
// line and end is the next line opening a bracketed header.
func Bounds(lines []string, marker string) (begin, end int, err error) {
	begin, end = notFound, notFound
	for i, line := range lines {
		if begin == notFound {
			if strings.HasPrefix(line, marker) {
				begin = i
			}
			continue
		}
		if strings.HasPrefix(line, "[") {
			end = i
			break
		}
	}

	if begin == notFound || end == notFound {
		return notFound, notFound, errors.Wrapf(ErrNoSection, "looking for %s", marker)
	}

	return begin, end, nil
}

// Split partitions lines around the section starting with marker. Blank lines
// at the tail of the section are dropped.
func Split(lines []string, marker string) (Sections, error) {
	begin, end, err := Bounds(lines, marker)
	if err != nil {
		return Sections{}, err
	}

	trimmed := end
	for trimmed > begin+1 && isBlank(lines[trimmed-1]) {
		trimmed--
	}

	return Sections{
		Before:  clone(lines[:begin]),
		Section: clone(lines[begin:trimmed]),
		After:   clone(lines[end:]),
	}, nil
}

// Read loads the file at path and splits it around marker.
func Read(path, marker string) (Sections, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Sections{}, errors.Wrap(err, "failed to read pylint config")
	}

	return Split(SplitLines(string(data)), marker)
}

// SplitLines breaks s after every newline. The final line has no newline when
// s does not end with one.
func SplitLines(s string) []string {
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// Append adds one tab-indented entry per identifier, then a blank line closing
// the section body. Entries use the line ending of the section header.
func (s *Sections) Append(ids []lintout.Identifier) {
	eol := s.lineEnding()
	for _, id := range ids {
		s.Section = append(s.Section, "\t"+string(id)+","+eol)
	}
	s.Section = append(s.Section, eol)
}

func (s *Sections) lineEnding() string {
	if len(s.Section) > 0 && strings.HasSuffix(s.Section[0], "\r\n") {
		return "\r\n"
	}
	return "\n"
}

// String renders the three parts in order.
func (s Sections) String() string {
	var b strings.Builder
	for _, part := range [][]string{s.Before, s.Section, s.After} {
		for _, line := range part {
			b.WriteString(line)
		}
	}
	return b.String()
}

// WriteFile replaces the file at path with the rendered sections.
func (s Sections) WriteFile(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return errors.Wrap(err, "failed to open pylint config for writing")
	}
	defer f.Close()

	if _, err := f.WriteString(s.String()); err != nil {
		return errors.Wrap(err, "failed to write pylint config")
	}

	return nil
}

func isBlank(line string) bool {
	return strings.TrimRight(line, "\r\n") == ""
}

func clone(lines []string) []string {
	return append([]string(nil), lines...)
}
