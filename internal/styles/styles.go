package styles

import (
	"io"

	"github.com/muesli/termenv"
)

// Styles colors status text for one output stream. Color support is detected
// from the stream itself, so writers that are not terminals get plain text.
type Styles struct {
	out *termenv.Output
}

// New returns styles bound to w.
func New(w io.Writer) *Styles {
	return &Styles{out: termenv.NewOutput(w)}
}

func (s *Styles) ERROR(str string) string {
	return s.out.String(str).
		Foreground(s.out.Color("9")).
		String()
}

func (s *Styles) WARNING(str string) string {
	return s.out.String(str).
		Foreground(s.out.Color("11")).
		String()
}

func (s *Styles) HINT(str string) string {
	return s.out.String(str).
		Foreground(s.out.Color("11")).
		Italic().
		String()
}
