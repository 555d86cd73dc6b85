package tools

import "fmt"

// ToolError tags a failure with the tool that produced it and the
// JSON-RPC code a transport would use if it surfaced the failure as an
// error object. Error() returns the underlying message untouched so the
// "Error: {message}" text contract sees the fault verbatim.
type ToolError struct {
	Code int
	Tool string
	Err  error
}

func (e *ToolError) Error() string {
	return e.Err.Error()
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

func NewToolNotFoundError(name string) *ToolError {
	return &ToolError{
		Code: -32601,
		Tool: name,
		Err:  fmt.Errorf("Tool not found: %s", name),
	}
}

func NewToolExecutionError(name string, err error) *ToolError {
	return &ToolError{
		Code: -32603,
		Tool: name,
		Err:  err,
	}
}
