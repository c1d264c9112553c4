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

import "fmt"

type OversizedWordError struct {
	Word     uint64
	WordSize uint
}

func (err *OversizedWordError) Error() string {
	return fmt.Sprintf(
		"Word exceeds word size\n\twant:%d bits\n\thave:%d",
		err.WordSize,
		err.Word,
	)
}

type InvalidWordSizeError struct {
	WordSize uint
}

func (err *InvalidWordSizeError) Error() string {
	return fmt.Sprintf(
		"Invalid word size\n\twant:1 to %d bits\n\thave:%d",
		MAX_WORD_SIZE,
		err.WordSize,
	)
}

type InvalidObjectError struct {
	Row  int
	Text string
}

func (err *InvalidObjectError) Error() string {
	return fmt.Sprintf(
		"%02d: Invalid object word\n\thave:%s",
		err.Row,
		err.Text,
	)
}
