package display

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ConfigureColor selects the colour profile for everything rendered through
// lipgloss. Plain output is forced when plain is set or NO_COLOR is present in
// the environment.
func ConfigureColor(plain bool) {
	if _, ok := os.LookupEnv("NO_COLOR"); ok || plain {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	lipgloss.SetColorProfile(termenv.EnvColorProfile())
}
