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

// Package assembler encodes preprocessed source lines into words.
//
// Encoding runs in two phases. Resolve tokenizes every line and matches it
// against the best signature of the architecture; Encode then walks the
// resolved program and emits words, relocating address operands. Addresses
// arrive as line indexes and only become word addresses once every
// instruction size is known, so Encode never starts before Resolve is done.
package assembler

import (
	"math"
	"regexp"
	"strings"

	"github.com/golang/glog"

	"github.com/lassandro/kasm/pkg/architecture"
	"github.com/lassandro/kasm/pkg/encoding"
	"github.com/lassandro/kasm/pkg/preprocessor"
)

var lineStatement = regexp.MustCompile(`^(\w+)(?:\s+(.*))?$`)
var operandToken = regexp.MustCompile(`^\.?[A-Za-z0-9]+$`)

// Splits a line into its mnemonic and operands: "LD A, (B)" -> LD [A B]
func Tokenize(line string) (name string, args []string, ok bool) {
	match := lineStatement.FindStringSubmatch(strings.TrimSpace(line))

	if match == nil {
		return "", nil, false
	}

	name = match[1]

	if strings.TrimSpace(match[2]) == "" {
		return name, nil, true
	}

	for _, field := range strings.Split(match[2], ",") {
		field = strings.TrimSpace(field)
		field = strings.TrimPrefix(field, "(")
		field = strings.TrimSuffix(field, ")")
		field = strings.TrimSpace(field)

		if !operandToken.MatchString(field) {
			return "", nil, false
		}

		args = append(args, field)
	}

	return name, args, true
}

// Picks the signature with the most literal operands in common with args.
// Placeholders match anything but never score; ties go to the signature
// declared first.
func Match(arch *architecture.Architecture, name string, args []string) *architecture.Signature {
	var best *architecture.Signature
	var bestScore = -1

	for i := range arch.Instructions {
		sig := &arch.Instructions[i]

		if sig.Name != name || len(sig.Args) != len(args) {
			continue
		}

		score := 0

		for j, operand := range sig.Args {
			if !operand.IsPlaceholder() && operand.Text == args[j] {
				score++
			}
		}

		if score > bestScore {
			best = sig
			bestScore = score
		}
	}

	return best
}

func Resolve(lines []preprocessor.Line, arch *architecture.Architecture) ([]Call, error) {
	program := make([]Call, 0, len(lines))

	for _, line := range lines {
		name, args, ok := Tokenize(encoding.ReplaceNumerals(line.Text))

		if !ok {
			return nil, &MissingSymbolError{position(line)}
		}

		sig := Match(arch, name, args)

		if sig == nil {
			return nil, &UndefinedInstructionError{position(line), name, len(args)}
		}

		program = append(program, Call{sig, args, line})
	}

	return program, nil
}

// Relocation table for a resolved program: entry i is the number of extra
// words taken by the instructions before line i. The last entry covers the
// whole program.
func Offsets(program []Call) []uint64 {
	offsets := make([]uint64, len(program)+1)

	for i, call := range program {
		offsets[i+1] = offsets[i] + call.Signature.Size - 1
	}

	return offsets
}

func offset(line uint64, offsets []uint64) uint64 {
	if last := uint64(len(offsets) - 1); line > last {
		return offsets[last]
	}

	return offsets[line]
}

// Converts a line index into a word address
func Relocate(line uint64, offsets []uint64) uint64 {
	return line + offset(line, offsets)
}

func encodeCall(call *Call, offsets []uint64) ([]uint64, error) {
	words := []uint64{call.Signature.Opcode}

	for i, operand := range call.Signature.Args {
		if !operand.IsPlaceholder() {
			continue
		}

		value, err := encoding.DecodeWord(call.Args[i])

		if err != nil {
			return nil, &UncompilableInstructionError{
				Position: position(call.Line),
				Operand:  call.Args[i],
			}
		}

		if operand.Kind == architecture.OPERAND_ADDRESS {
			if value > math.MaxUint64-offset(value, offsets) {
				return nil, &UncompilableInstructionError{
					Position: position(call.Line),
					Operand:  call.Args[i],
				}
			}

			value = Relocate(value, offsets)
		}

		words = append(words, value)
	}

	if size := uint64(len(words)); size != call.Signature.Size {
		return nil, &UncompilableInstructionError{
			Position: position(call.Line),
			Required: call.Signature.Size,
			Received: size,
		}
	}

	return words, nil
}

func encodeProgram(program []Call, arch *architecture.Architecture, symtable *SymTable) (*Object, error) {
	offsets := Offsets(program)
	object := &Object{WordSize: arch.WordSize}

	for i := range program {
		words, err := encodeCall(&program[i], offsets)

		if err != nil {
			return nil, err
		}

		if symtable != nil {
			if symtable.Symbols == nil {
				symtable.Symbols = make(map[uint64]int)
			}

			symtable.Symbols[uint64(len(object.Words))] = program[i].Line.Number
		}

		object.Words = append(object.Words, words...)
	}

	return object, nil
}

func Encode(lines []preprocessor.Line, arch *architecture.Architecture) (*Object, error) {
	program, err := Resolve(lines, arch)

	if err != nil {
		return nil, err
	}

	return encodeProgram(program, arch, nil)
}

// Assembles a preprocessed source. When symtable is not nil it receives the
// word address of every label and the source line of every instruction.
func Assemble(source *preprocessor.Source, arch *architecture.Architecture, symtable *SymTable) (*Object, error) {
	program, err := Resolve(source.Lines, arch)

	if err != nil {
		return nil, err
	}

	glog.V(1).Infof("resolved %d instructions", len(program))

	object, err := encodeProgram(program, arch, symtable)

	if err != nil {
		return nil, err
	}

	if symtable != nil {
		offsets := Offsets(program)

		if symtable.Labels == nil {
			symtable.Labels = make(map[string]uint64)
		}

		for label, line := range source.Labels {
			symtable.Labels[label] = Relocate(uint64(line), offsets)
		}
	}

	glog.V(1).Infof("encoded %d words", len(object.Words))

	return object, nil
}
