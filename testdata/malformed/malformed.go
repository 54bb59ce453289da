package malformed

type Event interface {
	isEvent()
}

type Click struct {
	X int
}

//fromone:skp
type Key struct {
	Code rune
}

type Quit struct{}

func (Click) isEvent() {}
func (Key) isEvent() {}
func (Quit) isEvent() {}
