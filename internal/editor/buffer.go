package editor

import "strings"

// Buffer is the editable scratchpad: full text plus a selection expressed in
// rune offsets. SelStart == SelEnd when nothing is selected.
type Buffer struct {
	Text     string
	SelStart int
	SelEnd   int
}

// Edit is the outcome of a structural keystroke.
type Edit struct {
	Text     string
	SelStart int
	SelEnd   int
}

func NewBuffer(text string) Buffer {
	n := len([]rune(text))
	return Buffer{Text: text, SelStart: n, SelEnd: n}
}

// Apply commits the edited text first and only then positions the caret
// against the committed text.
func (b Buffer) Apply(e Edit) Buffer {
	b.Text = e.Text
	n := len([]rune(b.Text))
	b.SelStart = clamp(e.SelStart, 0, n)
	b.SelEnd = clamp(e.SelEnd, b.SelStart, n)
	return b
}

func (b Buffer) Caret() int { return b.SelStart }

func (b Buffer) normalized() Buffer {
	n := len([]rune(b.Text))
	b.SelStart = clamp(b.SelStart, 0, n)
	b.SelEnd = clamp(b.SelEnd, b.SelStart, n)
	return b
}

func (b Buffer) Insert(s string) Buffer {
	b = b.normalized()
	r := []rune(b.Text)
	ins := []rune(s)
	out := make([]rune, 0, len(r)+len(ins))
	out = append(out, r[:b.SelStart]...)
	out = append(out, ins...)
	out = append(out, r[b.SelEnd:]...)
	caret := b.SelStart + len(ins)
	return Buffer{Text: string(out), SelStart: caret, SelEnd: caret}
}

func (b Buffer) Backspace() Buffer {
	b = b.normalized()
	if b.SelStart != b.SelEnd {
		return b.Insert("")
	}
	if b.SelStart == 0 {
		return b
	}
	b.SelStart--
	return b.Insert("")
}

func (b Buffer) Delete() Buffer {
	b = b.normalized()
	if b.SelStart != b.SelEnd {
		return b.Insert("")
	}
	if b.SelEnd >= len([]rune(b.Text)) {
		return b
	}
	b.SelEnd++
	return b.Insert("")
}

func (b Buffer) MoveTo(pos int) Buffer {
	pos = clamp(pos, 0, len([]rune(b.Text)))
	b.SelStart, b.SelEnd = pos, pos
	return b
}

func (b Buffer) Left() Buffer  { return b.MoveTo(b.normalized().SelStart - 1) }
func (b Buffer) Right() Buffer { return b.MoveTo(b.normalized().SelEnd + 1) }

func (b Buffer) Home() Buffer {
	r := []rune(b.Text)
	return b.MoveTo(lineStart(r, b.normalized().SelStart))
}

func (b Buffer) End() Buffer {
	r := []rune(b.Text)
	return b.MoveTo(lineEnd(r, b.normalized().SelEnd))
}

func (b Buffer) Up() Buffer   { return b.verticalMove(-1) }
func (b Buffer) Down() Buffer { return b.verticalMove(1) }

func (b Buffer) verticalMove(delta int) Buffer {
	b = b.normalized()
	lines := strings.Split(b.Text, "\n")
	row, col := b.Position()
	row += delta
	if row < 0 || row >= len(lines) {
		return b.MoveTo(b.SelStart)
	}
	pos := 0
	for i := 0; i < row; i++ {
		pos += len([]rune(lines[i])) + 1
	}
	return b.MoveTo(pos + min(col, len([]rune(lines[row]))))
}

// Position reports the caret as zero based row and column.
func (b Buffer) Position() (row, col int) {
	r := []rune(b.Text)
	caret := clamp(b.SelStart, 0, len(r))
	for _, c := range r[:caret] {
		if c == '\n' {
			row++
			col = 0
			continue
		}
		col++
	}
	return row, col
}

// Split returns the text before and after the caret.
func (b Buffer) Split() (string, string) {
	r := []rune(b.Text)
	caret := clamp(b.SelStart, 0, len(r))
	return string(r[:caret]), string(r[caret:])
}

func lineStart(r []rune, pos int) int {
	for i := pos - 1; i >= 0; i-- {
		if r[i] == '\n' {
			return i + 1
		}
	}
	return 0
}

func lineEnd(r []rune, pos int) int {
	for i := pos; i < len(r); i++ {
		if r[i] == '\n' {
			return i
		}
	}
	return len(r)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
