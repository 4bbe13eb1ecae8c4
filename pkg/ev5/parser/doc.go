// Package parser segments an EV5 data tape into named blocks.
//
// An EV5 file is line-oriented. A header line of the form
//
//	--- OCCUPANT ---
//
// (two or more dashes on each side, name restricted to uppercase letters
// and spaces) opens a block; every subsequent non-empty, non-comment line
// is appended to the most recently opened block. Lines before the first
// header are discarded. Comment lines start with '#'.
//
// The parser does not interpret record contents beyond trimming; column
// splitting and schema mapping happen in the validator.
package parser
