package keyboard

import "unicode"

// ShiftState tracks how Shift is currently engaged.
type ShiftState uint8

// Shift states. Sticky is a single-shot toggle that releases after the
// next resolved key; Held mirrors a physically held modifier.
const (
	ShiftInactive ShiftState = iota
	ShiftSticky
	ShiftHeld
)

// Resolver turns physical key identifiers into output characters under
// the current Shift state.
type Resolver struct {
	shift ShiftState
}

// NewResolver returns a Resolver with Shift inactive.
func NewResolver() *Resolver {
	return &Resolver{}
}

// ToggleSticky flips the single-shot Shift toggle. A held Shift is not
// affected.
func (r *Resolver) ToggleSticky() {
	switch r.shift {
	case ShiftSticky:
		r.shift = ShiftInactive
	case ShiftInactive:
		r.shift = ShiftSticky
	}
}

// Press engages a physically held Shift.
func (r *Resolver) Press() {
	r.shift = ShiftHeld
}

// Release disengages a physically held Shift.
func (r *Resolver) Release() {
	if r.shift == ShiftHeld {
		r.shift = ShiftInactive
	}
}

// Active reports whether the Shift layer applies to the next key.
func (r *Resolver) Active() bool {
	return r.shift != ShiftInactive
}

// State returns the current Shift state.
func (r *Resolver) State() ShiftState {
	return r.shift
}

// qwertyShift maps a shifted QWERTY character back to its base keycap,
// for hosts that deliver characters with Shift already applied.
var qwertyShift = map[rune]rune{
	'~': '`',
	'!': '1', '@': '2', '#': '3', '$': '4', '%': '5',
	'^': '6', '&': '7', '*': '8', '(': '9', ')': '0',
	'_': '-', '+': '=',
	'{': '[', '}': ']', '|': '\\',
	'"': '\'', '<': ',', '>': '.', '?': '/', ':': ';',
}

// ResolveTyped resolves a character as delivered by the terminal, where a
// physically held Shift has already been applied by the host keyboard. A
// sticky Shift engaged on the Resolver still layers on top.
func (r *Resolver) ResolveTyped(ch rune) (rune, bool) {
	base := ch
	shifted := false
	switch {
	case unicode.IsUpper(ch):
		base = unicode.ToLower(ch)
		shifted = true
	default:
		if k, ok := qwertyShift[ch]; ok {
			base = k
			shifted = true
		}
	}
	out, ok := baseLayout[string(base)]
	if !ok {
		return 0, false
	}
	if shifted || r.Active() {
		switch {
		case unicode.IsLetter(out):
			out = unicode.ToUpper(out)
		case shiftedSymbols[out] != 0:
			out = shiftedSymbols[out]
		}
	}
	if r.shift == ShiftSticky {
		r.shift = ShiftInactive
	}
	return out, true
}

// Resolve maps a physical key identifier to its output character. Unknown
// keys resolve false. A sticky Shift auto-releases after the first
// resolved key.
func (r *Resolver) Resolve(key string) (rune, bool) {
	base, ok := baseLayout[key]
	if !ok {
		return 0, false
	}
	out := base
	if r.Active() {
		switch {
		case unicode.IsLetter(base):
			out = unicode.ToUpper(base)
		case shiftedSymbols[base] != 0:
			out = shiftedSymbols[base]
		}
	}
	if r.shift == ShiftSticky {
		r.shift = ShiftInactive
	}
	return out, true
}
