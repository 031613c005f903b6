package ui

import (
	"bufio"
	"os"
	"strings"
)

// ReadLine reads a line of input from the user.
func ReadLine() (string, error) {
	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(input), nil
}
