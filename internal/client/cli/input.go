package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// clearValue entered at a prefilled prompt empties the field.
const clearValue = "-"

// GetSimpleText shows prompt and returns the entered line, trimmed.
func GetSimpleText(c Console, prompt string) (string, error) {
	line, err := c.ReadLine(prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetPassword reads a password without echo. The returned byte slice should
// be wiped by the caller when no longer needed.
func GetPassword(c Console, prompt string) ([]byte, error) {
	return c.ReadPassword(prompt)
}

// GetDefault asks for a value prefilled with current: an empty answer keeps
// current, "-" clears it.
//
//	Nickname [al]: _
func GetDefault(c Console, label, current string) (string, error) {
	prompt := label + ": "
	if current != "" {
		prompt = fmt.Sprintf("%s [%s]: ", label, current)
	}
	v, err := getSimpleText(c, prompt)
	if err != nil {
		return "", err
	}
	switch v {
	case "":
		return current, nil
	case clearValue:
		return "", nil
	}
	return v, nil
}

// GetMultiline prints a header to w and reads lines until an empty line.
// The collected text is joined with '\n'.
func GetMultiline(c Console, label string, w io.Writer) (string, error) {
	if _, err := fmt.Fprintf(w, "%s (press Enter on an empty line to finish)\n", label); err != nil {
		return "", err
	}
	return readLines(c, nil)
}

// GetMultilineDefault is GetMultiline for a prefilled field: an empty first
// line keeps current, "-" clears it.
func GetMultilineDefault(c Console, label, current string, w io.Writer) (string, error) {
	header := fmt.Sprintf("%s (empty line to finish)\n", label)
	if current != "" {
		header = fmt.Sprintf("%s [%s] (empty line keeps it, %q clears it)\n", label, oneLine(current), clearValue)
	}
	if _, err := fmt.Fprint(w, header); err != nil {
		return "", err
	}

	first, err := c.ReadLine("| ")
	if err != nil {
		return "", err
	}
	first = strings.TrimRight(first, " \t")
	switch first {
	case "":
		return current, nil
	case clearValue:
		return "", nil
	}
	return readLines(c, []string{first})
}

func readLines(c Console, lines []string) (string, error) {
	for {
		line, err := c.ReadLine("| ")
		if err != nil {
			return "", err
		}
		line = strings.TrimRight(line, " \t")
		if line == "" {
			break
		}
		lines = append(lines, line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

// GetChoice asks for one of options by name or 1-based number. An empty
// answer keeps current and "-" clears it; anything else is asked again.
//
//	Gender (1) male (2) female (3) other [female]: _
func GetChoice(c Console, w io.Writer, label string, options []string, current string) (string, error) {
	var b strings.Builder
	b.WriteString(label)
	for i, o := range options {
		fmt.Fprintf(&b, " (%d) %s", i+1, o)
	}
	if current != "" {
		fmt.Fprintf(&b, " [%s]", current)
	}
	b.WriteString(": ")

	for {
		v, err := getSimpleText(c, b.String())
		if err != nil {
			return "", err
		}
		switch v {
		case "":
			return current, nil
		case clearValue:
			return "", nil
		}
		if choice, ok := pick(options, v); ok {
			return choice, nil
		}
		fmt.Fprintf(w, "Select one of: %s\n", strings.Join(options, ", "))
	}
}

func pick(options []string, v string) (string, bool) {
	if n, err := strconv.Atoi(v); err == nil {
		if n >= 1 && n <= len(options) {
			return options[n-1], true
		}
		return "", false
	}
	for _, o := range options {
		if strings.EqualFold(o, v) {
			return o, true
		}
	}
	return "", false
}

// GetConfirm asks a yes/no question; only "y" or "yes" confirm.
func GetConfirm(c Console, question string) (bool, error) {
	v, err := getSimpleText(c, question+" (y/N): ")
	if err != nil {
		return false, err
	}
	v = strings.ToLower(v)
	return v == "y" || v == "yes", nil
}

func oneLine(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if r := []rune(s); len(r) > 40 {
		return string(r[:37]) + "..."
	}
	return s
}
