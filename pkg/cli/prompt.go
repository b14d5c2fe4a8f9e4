// Package cli wraps the interactive prompts used by the span tool.
// The textual protocol is simple: the default is shown in brackets and
// blank input accepts it. Malformed input re-prompts instead of
// aborting the run.
package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// YesNo asks a yes/no question. A leading "y" or "Y" counts as yes,
// anything else as no, blank input as the default.
func YesNo(label string, def bool) (bool, error) {
	hint := "Y/n"
	if !def {
		hint = "y/N"
	}
	prompt := promptui.Prompt{
		Label: fmt.Sprintf("%s [%s]", label, hint),
	}
	answer, err := prompt.Run()
	if err != nil {
		return false, err
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return def, nil
	}
	return strings.HasPrefix(strings.ToLower(answer), "y"), nil
}

// Float asks for a floating point number, re-prompting until the input
// parses. Blank input accepts the default.
func Float(label string, def float64) (float64, error) {
	prompt := promptui.Prompt{
		Label: fmt.Sprintf("%s [%.2f]", label, def),
		Validate: func(input string) error {
			if strings.TrimSpace(input) == "" {
				return nil
			}
			if _, err := strconv.ParseFloat(strings.TrimSpace(input), 64); err != nil {
				return fmt.Errorf("enter a floating point number")
			}
			return nil
		},
	}
	answer, err := prompt.Run()
	if err != nil {
		return 0, err
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return def, nil
	}
	return strconv.ParseFloat(answer, 64)
}

// Choice lets the user pick one of options, with the cursor starting
// on the default.
func Choice(label string, def string, options []string) (string, error) {
	start := 0
	for i, option := range options {
		if option == def {
			start = i
		}
	}
	selector := promptui.Select{
		Label:        fmt.Sprintf("%s [%s]", label, def),
		Items:        options,
		CursorPos:    start,
		HideSelected: true,
	}
	_, choice, err := selector.Run()
	if err != nil {
		return "", err
	}
	return choice, nil
}
