// Package keyboard resolves physical key presses into Dvorak characters.
package keyboard

// baseLayout maps a physical key identifier (the QWERTY keycap, lower
// case) to the unshifted Dvorak character it produces.
var baseLayout = map[string]rune{
	// Number row.
	"`": '`', "1": '1', "2": '2', "3": '3', "4": '4', "5": '5',
	"6": '6', "7": '7', "8": '8', "9": '9', "0": '0', "-": '[', "=": ']',
	// Top row.
	"q": '\'', "w": ',', "e": '.', "r": 'p', "t": 'y', "y": 'f',
	"u": 'g', "i": 'c', "o": 'r', "p": 'l', "[": '/', "]": '=', "\\": '\\',
	// Home row.
	"a": 'a', "s": 'o', "d": 'e', "f": 'u', "g": 'i', "h": 'd',
	"j": 'h', "k": 't', "l": 'n', ";": 's', "'": '-',
	// Bottom row.
	"z": ';', "x": 'q', "c": 'j', "v": 'k', "b": 'x', "n": 'b',
	"m": 'm', ",": 'w', ".": 'v', "/": 'z',
	// Space bar.
	" ": ' ',
}

// shiftedSymbols maps an unshifted output character to its Shift-layer
// counterpart. Letters are not listed; they shift through unicode.ToUpper.
var shiftedSymbols = map[rune]rune{
	'`': '~',
	'1': '!', '2': '@', '3': '#', '4': '$', '5': '%',
	'6': '^', '7': '&', '8': '*', '9': '(', '0': ')',
	'[': '{', ']': '}',
	'\'': '"', ',': '<', '.': '>', '/': '?',
	';': ':', '-': '_', '=': '+', '\\': '|',
}

// Rows returns the layout as display rows of unshifted output characters,
// in physical key order. Used by the layout reference printout.
func Rows() [][]rune {
	keyRows := []string{
		"`1234567890-=",
		"qwertyuiop[]\\",
		"asdfghjkl;'",
		"zxcvbnm,./",
	}
	out := make([][]rune, len(keyRows))
	for i, row := range keyRows {
		chars := make([]rune, 0, len(row))
		for _, key := range row {
			chars = append(chars, baseLayout[string(key)])
		}
		out[i] = chars
	}
	return out
}

// Shifted returns the Shift-layer character for an unshifted output
// character, or 0 when the key has no shifted symbol.
func Shifted(base rune) rune {
	return shiftedSymbols[base]
}
