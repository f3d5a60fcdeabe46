package splice

import "fmt"

// KeymapSignature identifies a keymap inserted by TerminalKeymap.
const KeymapSignature = `keymap("Omacustom`

// TerminalKeymap returns the Toshy keymap lines that bind the terminal
// launcher and give the terminal mac-style tab shortcuts. terminal is the
// program's executable and window class.
func TerminalKeymap(terminal string) []string {
	return []string{
		`keymap("Omacustom terminal launcher", {`,
		fmt.Sprintf(`    C("RC-Alt-t"):              launch(["%s"]),`, terminal),
		`})`,
		``,
		`keymap("Omacustom terminal tabs", {`,
		`    C("RC-t"):                  C("C-Shift-t"),`,
		`    C("RC-w"):                  C("C-Shift-w"),`,
		fmt.Sprintf(`}, when = matchProps(clas="^%s$"))`, terminal),
	}
}
