package gui

type Action string

const (
	ActionReset Action = "Reset"
	ActionFlip  Action = "Flip"
	ActionExit  Action = "Exit"
)

var keyActions = map[rune]Action{
	'r': ActionReset,
	'f': ActionFlip,
	'q': ActionExit,
}
