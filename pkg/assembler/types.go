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

package assembler

import (
	"fmt"

	"github.com/lassandro/kasm/pkg/architecture"
	"github.com/lassandro/kasm/pkg/diag"
	"github.com/lassandro/kasm/pkg/preprocessor"
)

// A source line resolved against its signature
type Call struct {
	Signature *architecture.Signature
	Args      []string
	Line      preprocessor.Line
}

type Object struct {
	WordSize uint
	Words    []uint64
}

type SymTable struct {
	Source  string
	Labels  map[string]uint64
	Symbols map[uint64]int
}

func NewSymTable() *SymTable {
	return &SymTable{
		Labels:  make(map[string]uint64),
		Symbols: make(map[uint64]int),
	}
}

func position(line preprocessor.Line) diag.Position {
	return diag.Position{Line: line.Number, Text: line.Text}
}

type MissingSymbolError struct {
	Position diag.Position
}

func (err *MissingSymbolError) GetPosition() diag.Position {
	return err.Position
}

func (err *MissingSymbolError) GetKind() diag.Kind {
	return diag.KIND_MISSING_SYMBOL
}

func (err *MissingSymbolError) Error() string {
	return diag.Format(
		err.Position,
		"Expected variable, number or label but got nothing instead",
	)
}

type UndefinedInstructionError struct {
	Position diag.Position
	Name     string
	Arity    int
}

func (err *UndefinedInstructionError) GetPosition() diag.Position {
	return err.Position
}

func (err *UndefinedInstructionError) GetKind() diag.Kind {
	return diag.KIND_UNDEFINED_INSTRUCTION
}

func (err *UndefinedInstructionError) Error() string {
	return diag.Format(
		err.Position,
		fmt.Sprintf(
			"Undefined instruction signature '%s' with %d operands",
			err.Name,
			err.Arity,
		),
	)
}

type UncompilableInstructionError struct {
	Position diag.Position
	Required uint64
	Received uint64
	Operand  string
}

func (err *UncompilableInstructionError) GetPosition() diag.Position {
	return err.Position
}

func (err *UncompilableInstructionError) GetKind() diag.Kind {
	return diag.KIND_UNCOMPILABLE_INSTRUCTION
}

func (err *UncompilableInstructionError) Error() string {
	if err.Operand != "" {
		return diag.Format(
			err.Position,
			fmt.Sprintf("Operand '%s' is not a numeric value", err.Operand),
		)
	}

	return diag.Format(
		err.Position,
		fmt.Sprintf(
			"Instruction size differs from its encoding\n\twant:%d words\n\tgot:%d words",
			err.Required,
			err.Received,
		),
	)
}
