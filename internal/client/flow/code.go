package flow

import (
	"errors"
	"strings"

	"github.com/scapegis/scapegis-cli/internal/common"
)

var (
	ErrNotDigit      = errors.New("only digits are allowed")
	ErrSlotOutRange  = errors.New("code slot out of range")
	ErrTooManyDigits = errors.New("more digits than slots left")
)

// CodeEntry models the six single-digit inputs of the verification step.
type CodeEntry struct {
	slots [common.VerificationCodeLength]string
	focus int
}

func NewCodeEntry() *CodeEntry {
	return &CodeEntry{}
}

// Put writes value into slot i. An empty value erases the slot; a longer run
// of digits is spread over the following slots, as a paste would be, and is
// rejected whole when it does not fit. Focus moves past the last written slot. submit is true when the last slot was
// just filled and every slot holds a digit.
func (e *CodeEntry) Put(i int, value string) (submit bool, err error) {
	if i < 0 || i >= len(e.slots) {
		return false, ErrSlotOutRange
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false, ErrNotDigit
		}
	}

	if len(value) > len(e.slots)-i {
		return false, ErrTooManyDigits
	}

	if value == "" {
		e.slots[i] = ""
		e.focus = i
		return false, nil
	}

	last := i
	for k := 0; k < len(value); k++ {
		e.slots[i+k] = value[k : k+1]
		last = i + k
	}
	if last < len(e.slots)-1 {
		e.focus = last + 1
	} else {
		e.focus = last
	}

	return last == len(e.slots)-1 && e.Complete(), nil
}

// Backspace erases slot i, or when it is already empty moves focus to the
// previous slot.
func (e *CodeEntry) Backspace(i int) {
	if i < 0 || i >= len(e.slots) {
		return
	}
	if e.slots[i] != "" {
		e.slots[i] = ""
		e.focus = i
		return
	}
	if i > 0 {
		e.focus = i - 1
	}
}

// Clear empties every slot and focuses the first one.
func (e *CodeEntry) Clear() {
	e.slots = [common.VerificationCodeLength]string{}
	e.focus = 0
}

func (e *CodeEntry) Focus() int {
	return e.focus
}

func (e *CodeEntry) Complete() bool {
	for _, s := range e.slots {
		if s == "" {
			return false
		}
	}
	return true
}

func (e *CodeEntry) Code() string {
	return strings.Join(e.slots[:], "")
}

// String renders the slots with underscores for empty ones.
func (e *CodeEntry) String() string {
	var sb strings.Builder
	for i, s := range e.slots {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if s == "" {
			sb.WriteByte('_')
		} else {
			sb.WriteString(s)
		}
	}
	return sb.String()
}
