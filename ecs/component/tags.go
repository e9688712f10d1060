package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type BotTag struct{}

var BotTagComponent = NewComponent[BotTag]()

// Name is the level entity name other entities refer to, e.g. a camera
// target.
type Name struct {
	Value string
}

var NameComponent = NewComponent[Name]()
