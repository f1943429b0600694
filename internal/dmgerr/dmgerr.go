// Package dmgerr gives the interpreter's terminal failure modes a concrete
// shape: InvalidOpcode, PCStuck, and Unimplemented. All three are
// programmer errors, not user errors — there is no recovery path, only a
// wrapped error carrying enough context (PC, and the opcode byte or the
// decoded mnemonic) for the shell to report before it exits.
package dmgerr

import "github.com/pkg/errors"

// Sentinel causes, for callers that want to classify a returned error with
// errors.Is rather than parse its text.
var (
	ErrInvalidOpcode = errors.New("dmg: invalid opcode")
	ErrPCStuck       = errors.New("dmg: program counter did not advance")
	ErrUnimplemented = errors.New("dmg: unimplemented instruction")
)

// InvalidOpcode wraps ErrInvalidOpcode with the failing PC and opcode byte.
func InvalidOpcode(pc uint16, opcode uint8, prefixed bool) error {
	if prefixed {
		return errors.Wrapf(ErrInvalidOpcode, "pc=0x%04X opcode=0xCB 0x%02X", pc, opcode)
	}
	return errors.Wrapf(ErrInvalidOpcode, "pc=0x%04X opcode=0x%02X", pc, opcode)
}

// PCStuck wraps ErrPCStuck with the PC a handler failed to advance.
func PCStuck(pc uint16, mnemonic string) error {
	return errors.Wrapf(ErrPCStuck, "pc=0x%04X instruction=%q", pc, mnemonic)
}

// Unimplemented wraps ErrUnimplemented with the decoded variant that has no
// handler yet.
func Unimplemented(pc uint16, mnemonic string) error {
	return errors.Wrapf(ErrUnimplemented, "pc=0x%04X instruction=%q", pc, mnemonic)
}
