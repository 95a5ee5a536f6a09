// Package unit defines the character-width type parameter shared by every
// layer of the formatting engine.
package unit

// Unit is a code unit of some character width: byte for UTF-8, uint16 for
// UTF-16, or rune (int32) for UTF-32 / platform-wide. Every generic type in
// the formatter is parameterized by exactly one Unit, standing in for the
// template-per-character-width specialization of the original design.
type Unit interface {
	~byte | ~uint16 | ~rune
}
