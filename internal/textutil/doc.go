// Package textutil provides text clean-up applied to extracted explanation
// text: Unicode NFC normalization and whitespace collapsing.
package textutil
