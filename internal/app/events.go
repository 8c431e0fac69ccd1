package app

import "github.com/gdamore/tcell/v2"

// eventTimeout signals that the disambiguation window elapsed. Posted by
// the mapper's timer so the engine is only ever re-entered from the event
// loop goroutine.
type eventTimeout struct {
	tcell.EventTime
}

func newEventTimeout() *eventTimeout {
	ev := &eventTimeout{}
	ev.SetEventNow()
	return ev
}

// eventReload signals that a map file changed on disk.
type eventReload struct {
	tcell.EventTime
	path string
}

func newEventReload(path string) *eventReload {
	ev := &eventReload{path: path}
	ev.SetEventNow()
	return ev
}
