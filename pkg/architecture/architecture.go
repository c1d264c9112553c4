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

// Package architecture loads the instruction-set description an assembly
// program is encoded against.
//
// The description is line oriented. Every non-blank line holds exactly one
// statement:
//
//	WORD_SIZE(8)
//	INSTRUCTION(0x01, 2, 'LD A,_$literal')
//
// Keywords are case-insensitive and hexadecimal or binary numerals may be
// used anywhere on a line.
package architecture

import (
	"bufio"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/golang/glog"

	"github.com/lassandro/kasm/pkg/diag"
	"github.com/lassandro/kasm/pkg/encoding"
)

var wordSizeStatement = regexp.MustCompile(
	`(?i)^\s*WORD_SIZE\s*\(\s*(\d+)\s*\)\s*$`,
)

var instructionStatement = regexp.MustCompile(
	`(?i)^\s*INSTRUCTION\s*\(\s*(\d+)\s*,\s*(\d+)\s*,\s*'(.+)'\s*\)\s*$`,
)

var templateStatement = regexp.MustCompile(`^(\w+)(?:\s+(.*))?$`)
var templateIdent = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]*$`)

// Splits a syntax template such as "JP M,_$address" into its name and typed
// operands. The underscore stands for a space inside templates.
func ParseTemplate(syntax string) (name string, args []Operand, ok bool) {
	match := templateStatement.FindStringSubmatch(strings.TrimSpace(syntax))

	if match == nil {
		return "", nil, false
	}

	name = match[1]

	if strings.TrimSpace(match[2]) == "" {
		return name, nil, true
	}

	for _, field := range strings.Split(match[2], ",") {
		field = strings.Trim(field, " \t_")
		field = strings.TrimPrefix(field, "(")
		field = strings.TrimSuffix(field, ")")
		field = strings.Trim(field, " \t_")

		switch {
		case field == PLACEHOLDER_ADDRESS:
			args = append(args, Operand{Kind: OPERAND_ADDRESS})
		case field == PLACEHOLDER_VALUE:
			args = append(args, Operand{Kind: OPERAND_VALUE})
		case templateIdent.MatchString(field):
			args = append(args, Operand{Kind: OPERAND_LITERAL, Text: field})
		default:
			return "", nil, false
		}
	}

	return name, args, true
}

func (arch *Architecture) parseWordSize(pos diag.Position, match []string) error {
	size, err := strconv.ParseUint(match[1], 10, 64)

	if err != nil || size == 0 || size > uint64(MAX_WORD_SIZE) {
		return &InvalidSpecSyntaxError{pos, "word size must be between 1 and 64"}
	}

	arch.WordSize = uint(size)
	return nil
}

func (arch *Architecture) parseInstruction(pos diag.Position, match []string) error {
	opcode, err := strconv.ParseUint(match[1], 10, 64)

	if err != nil {
		return &InvalidSpecSyntaxError{pos, "opcode out of range"}
	}

	size, err := strconv.ParseUint(match[2], 10, 64)

	if err != nil || size == 0 {
		return &InvalidSpecSyntaxError{pos, "instruction size must be positive"}
	}

	name, args, ok := ParseTemplate(match[3])

	if !ok {
		return &InvalidSpecSyntaxError{pos, "malformed instruction syntax"}
	}

	if arch.Lookup(opcode) != nil {
		return &DuplicateOpcodeError{pos, opcode}
	}

	arch.Instructions = append(arch.Instructions, Signature{
		Opcode: opcode,
		Size:   size,
		Syntax: match[3],
		Name:   name,
		Args:   args,
	})

	glog.V(2).Infof("registered %q as opcode %d (%d words)", match[3], opcode, size)

	return nil
}

func (arch *Architecture) parseLine(pos diag.Position) error {
	line := encoding.ReplaceNumerals(pos.Text)

	if match := wordSizeStatement.FindStringSubmatch(line); match != nil {
		return arch.parseWordSize(pos, match)
	} else if match := instructionStatement.FindStringSubmatch(line); match != nil {
		return arch.parseInstruction(pos, match)
	}

	return &InvalidSpecSyntaxError{Position: pos}
}

func Load(input io.Reader) (*Architecture, error) {
	arch := &Architecture{WordSize: DEFAULT_WORD_SIZE}
	scanner := bufio.NewScanner(input)
	line := 0

	for scanner.Scan() {
		line++
		text := scanner.Text()

		if strings.TrimSpace(text) == "" {
			continue
		}

		if err := arch.parseLine(diag.Position{Line: line, Text: text}); err != nil {
			return nil, err
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, &diag.InvalidFileError{Err: err}
	}

	return arch, nil
}

func LoadFile(filename string) (*Architecture, error) {
	file, err := os.Open(filename)

	if err != nil {
		return nil, &diag.InvalidFileError{Err: err}
	}

	defer file.Close()

	return Load(file)
}
