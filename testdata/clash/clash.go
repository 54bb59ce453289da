package clash

import (
	av1 "github.com/seitarof/gen-fromone/testdata/clash/a/v1"
	bv1 "github.com/seitarof/gen-fromone/testdata/clash/b/v1"
)

// v1 is the wire version.
const v1 = 1

type Msg interface {
	isMsg()
}

type A struct {
	X av1.X
}

type B struct {
	Y bv1.Y
}

type C struct {
	Both map[av1.X]bv1.Y
}

func (A) isMsg() {}
func (B) isMsg() {}
func (C) isMsg() {}
