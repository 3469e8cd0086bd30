package web

import (
	"github.com/futig/app-builder/internal/ui"
)

type SessionStore interface {
	Create() *ui.Session
	Get(id string) (*ui.Session, bool)
}

type Renderer interface {
	Render(snap ui.Snapshot, activeRole string) ([]byte, error)
}
