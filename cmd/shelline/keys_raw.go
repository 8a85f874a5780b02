package main

import (
	"bufio"

	tea "github.com/charmbracelet/bubbletea"
)

// readKey decodes one key press from r into a tea.KeyMsg, recognizing
// the escape sequences a raw-mode terminal sends for arrows/home/end/
// delete and the C0 control bytes for ctrl-letter combinations, then
// defers to editor.TranslateKey for the InputEvent mapping. This is the
// demo binary's half of the key pipeline; pkg/editor owns the
// bubbletea-to-InputEvent translation itself.
func readKey(r *bufio.Reader) (tea.KeyMsg, error) {
	b, err := r.ReadByte()
	if err != nil {
		return tea.KeyMsg{}, err
	}

	switch b {
	case 0x1b:
		return readEscape(r)
	case '\r', '\n':
		return tea.KeyMsg{Type: tea.KeyEnter}, nil
	case 0x7f, 0x08:
		return tea.KeyMsg{Type: tea.KeyBackspace}, nil
	case 0x09:
		return tea.KeyMsg{Type: tea.KeyTab}, nil
	case 0x01:
		return tea.KeyMsg{Type: tea.KeyCtrlA}, nil
	case 0x02:
		return tea.KeyMsg{Type: tea.KeyCtrlB}, nil
	case 0x03:
		return tea.KeyMsg{Type: tea.KeyCtrlC}, nil
	case 0x04:
		return tea.KeyMsg{Type: tea.KeyCtrlD}, nil
	case 0x05:
		return tea.KeyMsg{Type: tea.KeyCtrlE}, nil
	case 0x06:
		return tea.KeyMsg{Type: tea.KeyCtrlF}, nil
	case 0x0b:
		return tea.KeyMsg{Type: tea.KeyCtrlK}, nil
	case 0x0c:
		return tea.KeyMsg{Type: tea.KeyCtrlL}, nil
	case 0x12:
		return tea.KeyMsg{Type: tea.KeyCtrlR}, nil
	case 0x14:
		return tea.KeyMsg{Type: tea.KeyCtrlT}, nil
	case 0x15:
		return tea.KeyMsg{Type: tea.KeyCtrlU}, nil
	case 0x17:
		return tea.KeyMsg{Type: tea.KeyCtrlW}, nil
	case 0x19:
		return tea.KeyMsg{Type: tea.KeyCtrlY}, nil
	}

	if b < 0x20 {
		// Unrecognized control byte: no mapping in TranslateKey, the
		// editor loop logs it at debug level per §7.
		return tea.KeyMsg{Type: tea.KeyType(b)}, nil
	}

	r.UnreadByte()
	return readRune(r)
}

func readRune(r *bufio.Reader) (tea.KeyMsg, error) {
	ru, _, err := r.ReadRune()
	if err != nil {
		return tea.KeyMsg{}, err
	}
	if ru == ' ' {
		return tea.KeyMsg{Type: tea.KeySpace}, nil
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{ru}}, nil
}

func readEscape(r *bufio.Reader) (tea.KeyMsg, error) {
	b1, err := r.ReadByte()
	if err != nil {
		// A lone ESC with nothing following: treat as Esc.
		return tea.KeyMsg{Type: tea.KeyEsc}, nil
	}
	if b1 != '[' && b1 != 'O' {
		r.UnreadByte()
		return tea.KeyMsg{Type: tea.KeyEsc}, nil
	}
	b2, err := r.ReadByte()
	if err != nil {
		return tea.KeyMsg{Type: tea.KeyEsc}, nil
	}
	switch b2 {
	case 'A':
		return tea.KeyMsg{Type: tea.KeyUp}, nil
	case 'B':
		return tea.KeyMsg{Type: tea.KeyDown}, nil
	case 'C':
		return tea.KeyMsg{Type: tea.KeyRight}, nil
	case 'D':
		return tea.KeyMsg{Type: tea.KeyLeft}, nil
	case 'H':
		return tea.KeyMsg{Type: tea.KeyHome}, nil
	case 'F':
		return tea.KeyMsg{Type: tea.KeyEnd}, nil
	case 'Z':
		return tea.KeyMsg{Type: tea.KeyShiftTab}, nil
	case '3':
		if b3, err := r.ReadByte(); err == nil && b3 != '~' {
			r.UnreadByte()
		}
		return tea.KeyMsg{Type: tea.KeyDelete}, nil
	}
	return tea.KeyMsg{Type: tea.KeyEsc}, nil
}
