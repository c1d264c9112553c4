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

// Package diag holds the error kinds and source positions shared by every
// stage of the assembler.
package diag

import "fmt"

type Kind uint

type Position struct {
	Line int
	Text string
}

type LineError interface {
	error
	GetPosition() Position
	GetKind() Kind
}

func (kind Kind) String() string {
	switch kind {
	case KIND_INVALID_FILE:
		return "InvalidFile"
	case KIND_INVALID_SPEC_SYNTAX:
		return "InvalidSpecSyntax"
	case KIND_DUPLICATE_OPCODE:
		return "DuplicateOpcode"
	case KIND_INVALID_LABEL_DEFINITION:
		return "InvalidLabelDefinition"
	case KIND_MISSING_SYMBOL:
		return "MissingSymbol"
	case KIND_UNDEFINED_INSTRUCTION:
		return "UndefinedInstruction"
	case KIND_UNCOMPILABLE_INSTRUCTION:
		return "UncompilableInstruction"
	case KIND_NO_OUTPUT_REQUESTED:
		return "NoOutputRequested"
	}

	return "<invalid>"
}

// IsWarning reports whether the kind is informational only.
func (kind Kind) IsWarning() bool {
	return kind == KIND_NO_OUTPUT_REQUESTED
}

// Format renders a message in the layout shared by all line errors.
func Format(pos Position, msg string) string {
	if pos.Line <= 0 {
		return msg
	}

	return fmt.Sprintf("%02d: %s\n\thave:%s", pos.Line, msg, pos.Text)
}

type InvalidFileError struct {
	Err error
}

func (err *InvalidFileError) GetPosition() Position {
	return Position{}
}

func (err *InvalidFileError) GetKind() Kind {
	return KIND_INVALID_FILE
}

func (err *InvalidFileError) Error() string {
	if err.Err == nil {
		return "Could not read the input file"
	}

	return fmt.Sprintf("Could not read the input file: %v", err.Err)
}

func (err *InvalidFileError) Unwrap() error {
	return err.Err
}
