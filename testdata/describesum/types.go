package describesum

type Event interface {
	isEvent()
}

type Created struct {
	ID int
}

type Deleted struct {
	ID int
}

func (Created) isEvent() {}

func (Deleted) isEvent() {}

type Color string

const (
	Red   Color = "red"
	Green Color = "green"
	Blue  Color = "blue"
)
