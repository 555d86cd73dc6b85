package tools

// ReadOnlyAnnotations are the hints shared by every tool here: all four
// Reddit operations only read remote state.
func ReadOnlyAnnotations() map[string]bool {
	return map[string]bool{
		"readOnlyHint":    true,
		"destructiveHint": false,
		"idempotentHint":  true,
		"openWorldHint":   true,
	}
}
