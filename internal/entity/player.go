package entity

import "fmt"

type Mark string

const (
	MarkX Mark = "X"
	MarkO Mark = "O"

	EmptyCell Mark = ""
)

// Opponent - returns the other player's mark.
func (that Mark) Opponent() Mark {
	switch that {
	case MarkX:
		return MarkO
	case MarkO:
		return MarkX
	default:
		return EmptyCell
	}
}

func (that Mark) IsValid() bool {
	return that == MarkX || that == MarkO
}

// Player - name and mark of one participant. Fields are unexported, so a player can not change after NewPlayer.
type Player struct {
	name string
	mark Mark
}

func NewPlayer(name string, mark Mark) *Player {
	return &Player{
		name: name,
		mark: mark,
	}
}

func (that *Player) Name() string {
	return that.name
}

func (that *Player) Mark() Mark {
	return that.mark
}

func (that *Player) String() string {
	return fmt.Sprintf("%s (%s)", that.name, that.mark)
}
