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

package encoding

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"
	"math/big"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var hexNumeral = regexp.MustCompile(`0[xX][0-9a-fA-F]+`)
var binNumeral = regexp.MustCompile(`0[bB][01]+`)

type numeral struct {
	start int
	end   int
	base  int
}

// Replaces every hexadecimal (0x2A) and binary (0b101) numeral in s with its
// base-10 form. Binary candidates overlapping a hex numeral are ignored.
func ReplaceNumerals(s string) string {
	var numerals []numeral

	for _, match := range hexNumeral.FindAllStringIndex(s, -1) {
		numerals = append(numerals, numeral{match[0], match[1], 16})
	}

	hexCount := len(numerals)

	for _, match := range binNumeral.FindAllStringIndex(s, -1) {
		overlaps := false

		for _, hex := range numerals[:hexCount] {
			if match[0] < hex.end && hex.start < match[1] {
				overlaps = true
				break
			}
		}

		if !overlaps {
			numerals = append(numerals, numeral{match[0], match[1], 2})
		}
	}

	if len(numerals) == 0 {
		return s
	}

	sort.Slice(numerals, func(i, j int) bool {
		return numerals[i].start < numerals[j].start
	})

	var builder strings.Builder
	var last int

	builder.Grow(len(s))

	for _, n := range numerals {
		builder.WriteString(s[last:n.start])

		// Skip the 0x / 0b prefix
		if value, ok := new(big.Int).SetString(s[n.start+2:n.end], n.base); ok {
			builder.WriteString(value.String())
		} else {
			builder.WriteString(s[n.start:n.end])
		}

		last = n.end
	}

	builder.WriteString(s[last:])

	return builder.String()
}

// Decodes a base-10 operand word
func DecodeWord(s string) (uint64, error) {
	return strconv.ParseUint(s, 10, 64)
}

// Number of bytes a single word occupies in a binary object
func BytesPerWord(wordSize uint) int {
	return int((wordSize + 7) / 8)
}

// Widest word the writers and readers handle
const MAX_WORD_SIZE uint = 64

func checkWordSize(wordSize uint) error {
	if wordSize == 0 || wordSize > MAX_WORD_SIZE {
		return &InvalidWordSizeError{wordSize}
	}

	return nil
}

func fits(word uint64, wordSize uint) bool {
	return wordSize >= MAX_WORD_SIZE || word>>wordSize == 0
}

// Renders word as a zero-padded binary string of exactly wordSize characters
func FormatWord(word uint64, wordSize uint) (string, error) {
	if err := checkWordSize(wordSize); err != nil {
		return "", err
	}

	if !fits(word, wordSize) {
		return "", &OversizedWordError{word, wordSize}
	}

	s := strconv.FormatUint(word, 2)

	if pad := int(wordSize) - len(s); pad > 0 {
		s = strings.Repeat("0", pad) + s
	}

	return s, nil
}

// Writes the textual object format: one binary row per word
func WriteObject(w io.Writer, words []uint64, wordSize uint) error {
	if err := checkWordSize(wordSize); err != nil {
		return err
	}

	writer := bufio.NewWriter(w)

	for _, word := range words {
		row, err := FormatWord(word, wordSize)

		if err != nil {
			return err
		}

		writer.WriteString(row)
		writer.WriteByte('\n')
	}

	return writer.Flush()
}

// Writes every word big-endian in BytesPerWord(wordSize) bytes
func WriteBinary(w io.Writer, words []uint64, wordSize uint) error {
	if err := checkWordSize(wordSize); err != nil {
		return err
	}

	var scratch [8]byte

	size := BytesPerWord(wordSize)
	buffer := new(bytes.Buffer)
	buffer.Grow(len(words) * size)

	for _, word := range words {
		if !fits(word, wordSize) {
			return &OversizedWordError{word, wordSize}
		}

		binary.BigEndian.PutUint64(scratch[:], word)
		buffer.Write(scratch[8-size:])
	}

	_, err := buffer.WriteTo(w)
	return err
}

func ReadBinary(r io.Reader, wordSize uint) ([]uint64, error) {
	if err := checkWordSize(wordSize); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(r)

	if err != nil {
		return nil, err
	}

	size := BytesPerWord(wordSize)

	if len(data)%size != 0 {
		return nil, &InvalidObjectError{Row: len(data) / size, Text: "truncated word"}
	}

	words := make([]uint64, 0, len(data)/size)

	for i := 0; i < len(data); i += size {
		var scratch [8]byte
		copy(scratch[8-size:], data[i:i+size])
		words = append(words, binary.BigEndian.Uint64(scratch[:]))
	}

	return words, nil
}

func ReadObject(r io.Reader, wordSize uint) ([]uint64, error) {
	if err := checkWordSize(wordSize); err != nil {
		return nil, err
	}

	var words []uint64

	scanner := bufio.NewScanner(r)
	row := 0

	for scanner.Scan() {
		row++
		line := strings.TrimSpace(scanner.Text())

		if line == "" {
			continue
		}

		if len(line) != int(wordSize) {
			return nil, &InvalidObjectError{row, line}
		}

		word, err := strconv.ParseUint(line, 2, 64)

		if err != nil {
			return nil, &InvalidObjectError{row, line}
		}

		words = append(words, word)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return words, nil
}
