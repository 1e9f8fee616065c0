// Package assembler is the front end of an 8086 assembler.
//
// Source text is preprocessed line by line: ';' comments are stripped,
// character constants become numbers, '$(...)' expressions are evaluated
// as Starlark, '.equ' defines equates, and '.include' splices in other
// files found through the include path. Instruction encoding is not yet
// implemented.
package assembler
