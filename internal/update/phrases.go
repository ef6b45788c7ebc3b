package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/goodbuddi/internal/model"
	"github.com/sandeepkv93/goodbuddi/internal/views"
)

func (m *Model) openPhrases() {
	m.Modal = ModalPhrases
	m.Phrases.Cursor = 0
	m.Phrases.Adding = false
	m.phraseInput.SetValue("")
}

func (m Model) handlePhrasesKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.Phrases.Adding {
		switch msg.String() {
		case "esc":
			m.Phrases.Adding = false
			m.phraseInput.Blur()
			m.phraseInput.SetValue("")
		case "enter":
			text := strings.TrimSpace(m.phraseInput.Value())
			m.Phrases.Adding = false
			m.phraseInput.Blur()
			m.phraseInput.SetValue("")
			if text == "" {
				return m, nil
			}
			next, err := m.Phrases.Book.Add(text)
			if err != nil {
				m.setError(err)
				return m, nil
			}
			m.savePhrases(next)
			m.Phrases.Cursor = len(m.Phrases.Book.Phrases) - 1
		default:
			var cmd tea.Cmd
			m.phraseInput, cmd = m.phraseInput.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	book := m.Phrases.Book
	switch msg.String() {
	case "esc":
		m.Modal = ModalNone
	case "up", "k":
		if m.Phrases.Cursor > 0 {
			m.Phrases.Cursor--
		}
	case "down", "j":
		if m.Phrases.Cursor < len(book.Phrases)-1 {
			m.Phrases.Cursor++
		}
	case "a":
		if len(book.Phrases) >= model.MaxPhrases {
			m.setError(model.ErrTooManyPhrases)
			return m, nil
		}
		m.Phrases.Adding = true
		m.phraseInput.Focus()
	case "d":
		next, err := book.Remove(m.Phrases.Cursor)
		if err != nil {
			m.setError(err)
			return m, nil
		}
		m.savePhrases(next)
	case "p":
		target := m.Phrases.Cursor
		if book.Pinned == target {
			target = -1
		}
		next, err := book.Pin(target)
		if err != nil {
			m.setError(err)
			return m, nil
		}
		m.savePhrases(next)
	}
	return m, nil
}

// savePhrases stores book and refreshes the billboard when the pin changed
// or the shown phrase is gone.
func (m *Model) savePhrases(book model.PhraseBook) {
	saved := book.Cleaned()
	if m.planner != nil {
		var err error
		saved, err = m.planner.SavePhrases(m.ctx, book)
		if err != nil {
			m.setError(err)
			return
		}
	}
	prev := m.Phrases.Book
	m.Phrases.Book = saved
	if m.Phrases.Cursor >= len(saved.Phrases) {
		m.Phrases.Cursor = max(len(saved.Phrases)-1, 0)
	}
	if prev.Pinned != saved.Pinned || !contains(saved.Phrases, m.Billboard) {
		m.Billboard = saved.Daily(m.rng)
	}
	m.Status = StatusBar{Text: fmt.Sprintf("phrases saved (%d/%d)", len(saved.Phrases), model.MaxPhrases)}
}

func (m Model) renderPhrasesView() string {
	return views.RenderPhrasesPanel(views.PhrasesPanelData{
		Phrases:   m.Phrases.Book.Phrases,
		Pinned:    m.Phrases.Book.Pinned,
		Cursor:    m.Phrases.Cursor,
		Max:       model.MaxPhrases,
		Adding:    m.Phrases.Adding,
		InputView: m.phraseInput.View(),
	})
}
