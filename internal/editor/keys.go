// Package editor implements the outline-aware editing keys shared by the
// today scratchpad and the week planner.
package editor

import "strings"

const bulletToken = "• "

type Key int

const (
	KeyOther Key = iota
	KeyDash
	KeyTab
	KeyShiftTab
	KeyEnter
)

// KeyFromString maps terminal key names ("tab", "shift+tab", "enter", "-")
// to editor keys.
func KeyFromString(s string) Key {
	switch s {
	case "-":
		return KeyDash
	case "tab":
		return KeyTab
	case "shift+tab":
		return KeyShiftTab
	case "enter":
		return KeyEnter
	default:
		return KeyOther
	}
}

type currentLine struct {
	runes  []rune
	start  int
	end    int
	indent int
	bullet bool
	body   string
}

func locate(buf Buffer) currentLine {
	r := []rune(buf.Text)
	cl := currentLine{runes: r}
	cl.start = lineStart(r, buf.SelStart)
	cl.end = lineEnd(r, buf.SelEnd)
	text := string(r[cl.start:cl.end])
	for cl.indent < len(text) && text[cl.indent] == '\t' {
		cl.indent++
	}
	rest := text[cl.indent:]
	if strings.HasPrefix(rest, bulletToken) {
		cl.bullet = true
		cl.body = strings.TrimSpace(strings.TrimPrefix(rest, bulletToken))
	}
	return cl
}

func (cl currentLine) splice(from, to int, insert string) string {
	var sb strings.Builder
	sb.WriteString(string(cl.runes[:from]))
	sb.WriteString(insert)
	sb.WriteString(string(cl.runes[to:]))
	return sb.String()
}

// HandleKey applies the outline rules for key. It reports false when the key
// is not one it owns and should fall through to plain editing. A handled key
// may still leave the text unchanged.
func HandleKey(key Key, buf Buffer) (Edit, bool) {
	buf = buf.normalized()
	switch key {
	case KeyDash:
		return dash(buf), true
	case KeyTab:
		return indent(buf), true
	case KeyShiftTab:
		return outdent(buf), true
	case KeyEnter:
		return enter(buf), true
	default:
		return Edit{}, false
	}
}

func unchanged(buf Buffer) Edit {
	return Edit{Text: buf.Text, SelStart: buf.SelStart, SelEnd: buf.SelEnd}
}

func caretAt(text string, pos int) Edit {
	return Edit{Text: text, SelStart: pos, SelEnd: pos}
}

func dash(buf Buffer) Edit {
	cl := locate(buf)
	beforeCaret := string(cl.runes[cl.start:buf.SelStart])
	onlyTabs := strings.Trim(beforeCaret, "\t") == ""
	blank := strings.TrimSpace(string(cl.runes[cl.start:cl.end])) == ""
	if !onlyTabs && !blank {
		return caretAt(cl.splice(buf.SelStart, buf.SelEnd, "-"), buf.SelStart+1)
	}
	at := cl.start + cl.indent
	return caretAt(cl.splice(at, max(buf.SelEnd, at), bulletToken), at+len([]rune(bulletToken)))
}

func indent(buf Buffer) Edit {
	cl := locate(buf)
	if !cl.bullet || cl.indent >= 2 {
		return unchanged(buf)
	}
	return caretAt(cl.splice(cl.start, cl.start, "\t"), buf.SelStart+1)
}

func outdent(buf Buffer) Edit {
	cl := locate(buf)
	if cl.indent == 0 {
		return unchanged(buf)
	}
	return caretAt(cl.splice(cl.start, cl.start+1, ""), max(cl.start, buf.SelStart-1))
}

func enter(buf Buffer) Edit {
	cl := locate(buf)
	if !cl.bullet {
		return caretAt(cl.splice(buf.SelStart, buf.SelEnd, "\n"), buf.SelStart+1)
	}
	if cl.body == "" {
		if cl.indent == 0 {
			return caretAt(cl.splice(cl.start, cl.end, ""), cl.start)
		}
		seed := strings.Repeat("\t", cl.indent-1) + bulletToken
		return caretAt(cl.splice(cl.start, cl.end, seed), cl.start+len([]rune(seed)))
	}
	insert := "\n" + strings.Repeat("\t", cl.indent) + bulletToken
	return caretAt(cl.splice(buf.SelStart, buf.SelEnd, insert), buf.SelStart+len([]rune(insert)))
}
