// Package editor implements the editor loop: it owns the event/key
// stream, dispatches input commands to handlers, and orchestrates the
// screen, prompt layout, pager, history, and editable-line components.
package editor

// Command is the closed enumeration of commands the input subsystem
// supplies. Each command is atomic; the editor does no further parsing
// of the event stream.
type Command int

const (
	BeginningOfLine Command = iota
	EndOfLine
	BeginningOfBuffer
	EndOfBuffer
	ForwardChar
	BackwardChar
	ForwardWord
	BackwardWord
	ForwardBigword
	BackwardBigword
	UpLine
	DownLine
	Null
	Cancel
	ForceRepaint
	Repaint
	EOF
	Complete
	CompleteAndSearch
	PagerToggleSearch
	KillLine
	BackwardKillLine
	KillWholeLine
	Yank
	YankPop
	BackwardDeleteChar
	DeleteChar
	Execute
	HistorySearchBackward
	HistorySearchForward
	HistoryTokenSearchBackward
	HistoryTokenSearchForward
	SuppressAutosuggestion
	AcceptAutosuggestion
	TransposeChars
	TransposeWords
	UpcaseWord
	DowncaseWord
	CapitalizeWord
	BeginSelection
	SwapSelectionStartStop
	EndSelection
	KillSelection
	ForwardJump
	BackwardJump
	ForwardJumpTill
	BackwardJumpTill
	RepeatJump
	ReverseRepeatJump
	SelfInsert
)

// pagingEndingCommands clears the pager on entry: history search,
// accept-autosuggestion, cancel, and (handled separately) non-
// navigation self-insertion when the pager's search field isn't
// focused.
var pagingEndingCommands = map[Command]bool{
	HistorySearchBackward:      true,
	HistorySearchForward:       true,
	HistoryTokenSearchBackward: true,
	HistoryTokenSearchForward:  true,
	AcceptAutosuggestion:       true,
	Cancel:                     true,
}

// historySearchCommands identifies the four history-search commands,
// consecutive presses of which continue walking the same search cursor
// rather than starting a fresh search against the (now-mutated) line.
var historySearchCommands = map[Command]bool{
	HistorySearchBackward:      true,
	HistorySearchForward:       true,
	HistoryTokenSearchBackward: true,
	HistoryTokenSearchForward:  true,
}

func endsPaging(cmd Command, pagerSearchFocused bool) bool {
	if pagingEndingCommands[cmd] {
		return true
	}
	return cmd == SelfInsert && !pagerSearchFocused
}
