package switcher

import (
	"fmt"
	"os/exec"
)

// Detect returns a picker for the first launcher found in PATH, in priority
// order: rofi, fuzzel, wofi, dmenu.
func Detect() (*Picker, error) {
	if _, err := exec.LookPath("rofi"); err == nil {
		return newPicker("rofi", kindRofi, true), nil
	}
	if _, err := exec.LookPath("fuzzel"); err == nil {
		return newPicker("fuzzel", kindFuzzel, true), nil
	}
	if _, err := exec.LookPath("wofi"); err == nil {
		return newPicker("wofi", kindWofi, false), nil
	}
	if _, err := exec.LookPath("dmenu"); err == nil {
		return newPicker("dmenu", kindDmenu, false), nil
	}
	return nil, fmt.Errorf("no switcher backend found in PATH (looked for: rofi, fuzzel, wofi, dmenu)")
}
