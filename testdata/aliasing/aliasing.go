package aliasing

type Text = string

type Message interface {
	isMessage()
}

type Raw struct {
	B byte
}

type Octet struct {
	V uint8
}

type Plain struct {
	S Text
}

type Note struct {
	Body string
}

type Flag struct {
	On bool
}

func (Raw) isMessage() {}
func (Octet) isMessage() {}
func (Plain) isMessage() {}
func (Note) isMessage() {}
func (Flag) isMessage() {}
