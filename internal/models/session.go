package models

import "time"

// Session - состояние одного TCP соединения, не сохраняется
type Session struct {
	ID          uint64
	RemoteAddr  string
	ConnectedAt time.Time
	// nil для анонимной сессии
	Account *Account
}

// NewSession - создание анонимной сессии
func NewSession(id uint64, remoteAddr string) *Session {
	return &Session{ID: id, RemoteAddr: remoteAddr, ConnectedAt: time.Now()}
}

// Authenticated - сессия привязана к аккаунту
func (s *Session) Authenticated() bool {
	return s.Account != nil
}
