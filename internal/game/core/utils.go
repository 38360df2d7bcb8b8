package core

import "fmt"

// IntToStringFixedWidth converts an integer to a string of a specified width,
// left-padding with spaces if the number string is shorter than the width.
func IntToStringFixedWidth(num int, width int) string {
	return fmt.Sprintf("%*d", width, num)
}

// GetCommandType returns a printable command name for logs.
func GetCommandType(cmd *Command) string {
	if cmd == nil {
		return "nil"
	}
	return cmd.Type.String()
}
