package tilton

import "github.com/nickwells/tilton.mod/text"

// Complete reports whether every invocation opened in the source is also
// closed. It follows the same bracket matching rules as the evaluator but
// evaluates nothing so it can be used to decide whether more input is
// needed before the source is evaluated.
func Complete(src *text.Buffer) bool {
	c := newCursor(src)
	depth := 0
	for {
		switch c.next() {
		case '<':
			if c.tildes() > 0 {
				depth++
			}
		case '~':
			c.tildes()
			if depth > 0 && c.peek() == '>' {
				c.next()
				depth--
			}
		case text.EOT:
			return depth == 0
		}
	}
}
