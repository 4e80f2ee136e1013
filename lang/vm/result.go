package vm

// InterpretResult is the exit status of Interpret. Its numeric values
// (0/65/70, matching the sysexits.h convention for success/data error/
// software error) are used directly as an embedding CLI's process exit code.
type InterpretResult int

const (
	Ok           InterpretResult = 0
	CompileError InterpretResult = 65
	RuntimeError InterpretResult = 70
)
