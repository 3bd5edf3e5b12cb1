package engine

// Listener observes board and chain changes. Calls are synchronous and made
// from inside the operation that caused them, so implementations must not
// call back into the Board, Selection or Engine.
type Listener interface {
	// TokenSpawned fires when a token is created at the top of column.
	TokenSpawned(t Token, column int)

	// TokenDespawned fires when a token is removed, before the spawn that
	// refills its column.
	TokenDespawned(t Token)

	// TokensConnected fires when a link from -> to is added to the chain,
	// including the link that closes a loop.
	TokensConnected(from, to Token)

	// TokenDisconnected fires when the last chain element is dropped.
	TokenDisconnected(t Token)
}

// NopListener ignores all events.
type NopListener struct{}

func (NopListener) TokenSpawned(Token, int)      {}
func (NopListener) TokenDespawned(Token)         {}
func (NopListener) TokensConnected(Token, Token) {}
func (NopListener) TokenDisconnected(Token)      {}

// ListenerFuncs adapts optional callbacks to a Listener. Nil fields are skipped.
type ListenerFuncs struct {
	OnSpawn      func(t Token, column int)
	OnDespawn    func(t Token)
	OnConnect    func(from, to Token)
	OnDisconnect func(t Token)
}

func (f ListenerFuncs) TokenSpawned(t Token, column int) {
	if f.OnSpawn != nil {
		f.OnSpawn(t, column)
	}
}

func (f ListenerFuncs) TokenDespawned(t Token) {
	if f.OnDespawn != nil {
		f.OnDespawn(t)
	}
}

func (f ListenerFuncs) TokensConnected(from, to Token) {
	if f.OnConnect != nil {
		f.OnConnect(from, to)
	}
}

func (f ListenerFuncs) TokenDisconnected(t Token) {
	if f.OnDisconnect != nil {
		f.OnDisconnect(t)
	}
}

// Listeners fans every event out to each listener in order.
type Listeners []Listener

func (ls Listeners) TokenSpawned(t Token, column int) {
	for _, l := range ls {
		l.TokenSpawned(t, column)
	}
}

func (ls Listeners) TokenDespawned(t Token) {
	for _, l := range ls {
		l.TokenDespawned(t)
	}
}

func (ls Listeners) TokensConnected(from, to Token) {
	for _, l := range ls {
		l.TokensConnected(from, to)
	}
}

func (ls Listeners) TokenDisconnected(t Token) {
	for _, l := range ls {
		l.TokenDisconnected(t)
	}
}

// orNop returns l, or a NopListener when l is nil.
func orNop(l Listener) Listener {
	if l == nil {
		return NopListener{}
	}
	return l
}
