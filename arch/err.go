package arch

import (
	"github.com/csm-lang/csm/translate"
)

var f = translate.From

// ErrUnknownMnemonic reports a mnemonic absent from the architecture table.
type ErrUnknownMnemonic string

func (err ErrUnknownMnemonic) Error() string {
	return f("unknown mnemonic '%v'", string(err))
}

func (err ErrUnknownMnemonic) Is(other error) (ok bool) {
	_, ok = other.(ErrUnknownMnemonic)
	return
}

// ErrFieldOverflow reports a value that does not fit its binary word field.
type ErrFieldOverflow struct {
	Field string
	Value int64
	Bits  int
}

func (err *ErrFieldOverflow) Error() string {
	return f("%v value %v exceeds %v bit field", err.Field, err.Value, err.Bits)
}
