package report

import (
	"io"
	"os"

	"golang.org/x/term"
)

// Mode selects how reports are rendered.
type Mode int

const (
	// ModePlain is used for pipes, log collectors and CI.
	ModePlain Mode = iota
	// ModeStyled is used when a human is at the terminal.
	ModeStyled
)

// DetectMode determines whether reports written to w may use borders and color.
//
// Returns ModePlain if:
//   - CSVMONGO_PLAIN=1 is set
//   - CI is set (common CI/CD convention)
//   - NO_COLOR is set
//   - w is not an *os.File attached to a terminal (docker logs, redirected
//     output, in-memory buffers)
//
// Returns ModeStyled otherwise.
func DetectMode(w io.Writer) Mode {
	if os.Getenv("CSVMONGO_PLAIN") == "1" {
		return ModePlain
	}
	if os.Getenv("CI") != "" {
		return ModePlain
	}
	if os.Getenv("NO_COLOR") != "" {
		return ModePlain
	}
	f, ok := w.(*os.File)
	if !ok || f == nil || !term.IsTerminal(int(f.Fd())) {
		return ModePlain
	}
	return ModeStyled
}
