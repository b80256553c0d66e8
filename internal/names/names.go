// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

// Package names models the names bound and referenced by gollum programs.
package names

import "fmt"

// Name is either an Identifier written by the user or a Unique name produced
// by a later renaming phase. Names are comparable and may be used as map keys;
// two names are equal only when they are the same variant with the same
// fields.
type Name interface {
	fmt.Stringer
	name()
}

// Identifier is a name exactly as it appears in the source.
type Identifier struct {
	Text string
}

func (Identifier) name() {}

func (self Identifier) String() string {
	return self.Text
}

// Unique is a hygienic name: the original text tagged with an integer that
// makes it distinct from every other name with the same text.
type Unique struct {
	Text string
	ID   int32
}

func (Unique) name() {}

func (self Unique) String() string {
	return fmt.Sprintf("%s$%d", self.Text, self.ID)
}

// Ident builds an identifier name from matched source text. The text is not
// validated.
func Ident(text string) Name {
	return Identifier{Text: text}
}

func NewUnique(text string, id int32) Name {
	return Unique{Text: text, ID: id}
}
