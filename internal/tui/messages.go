package tui

import "github.com/wangdage1949/WIF500-Lottery/internal/scanner"

type eventMsg struct {
	event scanner.Event
}

type eventsClosedMsg struct{}

type copiedMsg struct {
	err error
}
