package stock

import (
	"fmt"
	"strconv"
	"strings"
)

// Menu renders matches as a numbered list, starting at 1
func Menu(matches []Match) string {
	var sb strings.Builder
	for i, m := range matches {
		fmt.Fprintf(&sb, "%d. %s - %s (%s)\n", i+1, m.Symbol, m.Name, m.Region)
	}
	return sb.String()
}

// ParseSelection converts the user's answer to a zero-based index into a
// menu of n options.
func ParseSelection(input string, n int) (int, error) {
	input = strings.TrimSpace(input)
	choice, err := strconv.Atoi(strings.TrimSuffix(input, "."))
	if err != nil || choice < 1 || choice > n {
		return 0, &UserInputError{Input: input, Options: n}
	}
	return choice - 1, nil
}
