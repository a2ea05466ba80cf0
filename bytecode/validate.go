package bytecode

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/ember-lang/ember/op"
)

// Validate walks the instruction stream and reports every well-formedness
// problem it finds: unknown opcode bytes, instructions whose operands are
// truncated by the end of the stream, and constant-pool indexes that are
// out of range. All findings are accumulated and returned together.
//
// Interpretation never runs this check; a malformed chunk is a writer bug.
// Validate exists so drivers and tests can diagnose one before execution.
func (c *Chunk) Validate() error {
	var result *multierror.Error
	for offset := 0; offset < c.Len(); {
		code := op.Code(c.Byte(offset))
		info := op.GetInfo(code)
		if info.Name == "" {
			result = multierror.Append(result, fmt.Errorf(
				"unknown opcode %d at offset %d", byte(code), offset))
			offset++
			continue
		}
		if offset+info.OperandCount >= c.Len() && info.OperandCount > 0 {
			result = multierror.Append(result, fmt.Errorf(
				"truncated %s instruction at offset %d", info.Name, offset))
			break
		}
		if code == op.Constant {
			idx := int(c.Byte(offset + 1))
			if idx >= c.ConstantCount() {
				result = multierror.Append(result, fmt.Errorf(
					"constant index %d out of range at offset %d (pool size %d)",
					idx, offset, c.ConstantCount()))
			}
		}
		offset += op.Width(code)
	}
	return result.ErrorOrNil()
}
