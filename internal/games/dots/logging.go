package dots

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-dots/internal/games/dots/engine"
)

// logger receives game and engine events. Silent unless SetLogger is called,
// since the game normally owns the terminal.
var logger = log.New(io.Discard)

// SetLogger installs the logger used by new games. Nil restores the
// silent default.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// newLogListener reports engine events at debug level.
func newLogListener(l *log.Logger) engine.Listener {
	return engine.ListenerFuncs{
		OnSpawn: func(t engine.Token, column int) {
			l.Debug("token spawned", "token", t.ID, "color", t.Color, "column", column)
		},
		OnDespawn: func(t engine.Token) {
			l.Debug("token despawned", "token", t.ID, "color", t.Color)
		},
		OnConnect: func(from, to engine.Token) {
			l.Debug("tokens connected", "from", from.ID, "to", to.ID)
		},
		OnDisconnect: func(t engine.Token) {
			l.Debug("token disconnected", "token", t.ID)
		},
	}
}
