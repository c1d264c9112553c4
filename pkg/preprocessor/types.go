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

package preprocessor

import "github.com/lassandro/kasm/pkg/diag"

type Line struct {
	Number int
	Text   string
}

type Source struct {
	Lines  []Line
	Labels map[string]int
}

type InvalidLabelDefinitionError struct {
	Position diag.Position
}

func (err *InvalidLabelDefinitionError) GetPosition() diag.Position {
	return err.Position
}

func (err *InvalidLabelDefinitionError) GetKind() diag.Kind {
	return diag.KIND_INVALID_LABEL_DEFINITION
}

func (err *InvalidLabelDefinitionError) Error() string {
	return diag.Format(
		err.Position, "Labels must be defined on a separate line",
	)
}
