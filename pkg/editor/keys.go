package editor

import tea "github.com/charmbracelet/bubbletea"

// TranslateKey maps a bubbletea key event onto the closed InputEvent
// enumeration §6 describes, so the driving loop (cmd/shelline) never
// has to know the editor's command set; only this translation layer
// is aware of bubbletea's key representation.
func TranslateKey(msg tea.KeyMsg) []InputEvent {
	switch msg.Type {
	case tea.KeyRunes:
		events := make([]InputEvent, len(msg.Runes))
		for i, r := range msg.Runes {
			events[i] = InputEvent{Command: SelfInsert, Rune: r}
		}
		return events
	case tea.KeySpace:
		return []InputEvent{{Command: SelfInsert, Rune: ' '}}
	case tea.KeyEnter:
		return []InputEvent{{Command: Execute}}
	case tea.KeyBackspace:
		return []InputEvent{{Command: BackwardDeleteChar}}
	case tea.KeyDelete:
		return []InputEvent{{Command: DeleteChar}}
	case tea.KeyTab:
		return []InputEvent{{Command: Complete}}
	case tea.KeyShiftTab:
		return []InputEvent{{Command: CompleteAndSearch}}
	case tea.KeyLeft:
		return []InputEvent{{Command: BackwardChar}}
	case tea.KeyRight:
		return []InputEvent{{Command: ForwardChar}}
	case tea.KeyUp:
		return []InputEvent{{Command: UpLine}}
	case tea.KeyDown:
		return []InputEvent{{Command: DownLine}}
	case tea.KeyHome:
		return []InputEvent{{Command: BeginningOfLine}}
	case tea.KeyEnd:
		return []InputEvent{{Command: EndOfLine}}
	case tea.KeyEsc:
		return []InputEvent{{Command: Cancel}}
	case tea.KeyCtrlA:
		return []InputEvent{{Command: BeginningOfLine}}
	case tea.KeyCtrlE:
		return []InputEvent{{Command: EndOfLine}}
	case tea.KeyCtrlB:
		return []InputEvent{{Command: BackwardChar}}
	case tea.KeyCtrlF:
		return []InputEvent{{Command: ForwardChar}}
	case tea.KeyCtrlK:
		return []InputEvent{{Command: KillLine}}
	case tea.KeyCtrlU:
		return []InputEvent{{Command: BackwardKillLine}}
	case tea.KeyCtrlY:
		return []InputEvent{{Command: Yank}}
	case tea.KeyCtrlW:
		return []InputEvent{{Command: BackwardWord}}
	case tea.KeyCtrlL:
		return []InputEvent{{Command: ForceRepaint}}
	case tea.KeyCtrlR:
		return []InputEvent{{Command: HistorySearchBackward}}
	case tea.KeyCtrlC:
		return []InputEvent{{Command: Cancel}}
	case tea.KeyCtrlD:
		return []InputEvent{{Command: EOF}}
	case tea.KeyCtrlT:
		return []InputEvent{{Command: TransposeChars}}
	default:
		return nil
	}
}
