// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package preprocessor cleans assembly source and resolves labels to the
// index of the line they precede.
//
// Label values are line positions, not word addresses: relocation happens
// during encoding, once instruction sizes are known.
package preprocessor

import (
	"bufio"
	"io"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/golang/glog"

	"github.com/lassandro/kasm/pkg/diag"
)

var labelMarker = regexp.MustCompile(`\w+:`)
var labelDefinition = regexp.MustCompile(`^(\w+):$`)

// Drops everything from the first ';' onwards
func StripComment(line string) string {
	if i := strings.IndexByte(line, ';'); i >= 0 {
		return line[:i]
	}

	return line
}

// Returns the label defined by line, whether line holds a label marker at all,
// and whether the marker is the only thing on the line.
func ParseLabel(line string) (label string, marker bool, valid bool) {
	if !labelMarker.MatchString(line) {
		return "", false, false
	}

	if match := labelDefinition.FindStringSubmatch(line); match != nil {
		return match[1], true, true
	}

	return "", true, false
}

// Substitutes every occurrence of every label with its line index. Longer
// names are replaced first.
func ReplaceLabels(line string, labels map[string]int) string {
	names := make([]string, 0, len(labels))

	for name := range labels {
		names = append(names, name)
	}

	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}

		return names[i] < names[j]
	})

	for _, name := range names {
		if strings.Contains(line, name) {
			line = strings.ReplaceAll(line, name, strconv.Itoa(labels[name]))
		}
	}

	return line
}

func Preprocess(input io.Reader) (*Source, error) {
	source := &Source{Labels: make(map[string]int)}
	scanner := bufio.NewScanner(input)
	number := 0

	// Process:
	// - Strip comments and whitespace
	// - Record labels at the current output line
	for scanner.Scan() {
		number++
		line := strings.TrimSpace(StripComment(scanner.Text()))

		if line == "" {
			continue
		}

		label, marker, valid := ParseLabel(line)

		if marker && !valid {
			return nil, &InvalidLabelDefinitionError{
				diag.Position{Line: number, Text: line},
			}
		}

		if marker {
			if previous, exists := source.Labels[label]; exists {
				glog.Warningf(
					"line %d: label %q redefined (was line index %d)",
					number, label, previous,
				)
			}

			source.Labels[label] = len(source.Lines)
			continue
		}

		source.Lines = append(source.Lines, Line{number, line})
	}

	if err := scanner.Err(); err != nil {
		return nil, &diag.InvalidFileError{Err: err}
	}

	// Labels
	// - Substitute usages once every definition is known
	for i := range source.Lines {
		source.Lines[i].Text = ReplaceLabels(source.Lines[i].Text, source.Labels)
	}

	return source, nil
}

func PreprocessFile(filename string) (*Source, error) {
	file, err := os.Open(filename)

	if err != nil {
		return nil, &diag.InvalidFileError{Err: err}
	}

	defer file.Close()

	return Preprocess(file)
}
