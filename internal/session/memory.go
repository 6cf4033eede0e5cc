// Package session хранит профили пользователей и состояние их диалогов в памяти процесса.
package session

import (
	"errors"
	"sync"

	"github.com/mmeshcher/makburgers-bot/internal/model"
)

// ErrIncompleteProfile возвращается при попытке сохранить профиль без телефона или имени.
var ErrIncompleteProfile = errors.New("profile must have phone and name")

type entry struct {
	mu      sync.Mutex
	refs    int
	session model.Session
}

// Memory хранилище сессий. Сессия каждого пользователя защищена собственным мьютексом.
type Memory struct {
	mu       sync.RWMutex
	profiles map[int64]model.UserProfile
	entries  map[int64]*entry
}

// NewMemory создаёт хранилище с загруженными профилями. Неполные профили отбрасываются.
func NewMemory(profiles map[int64]model.UserProfile) *Memory {
	m := &Memory{
		profiles: make(map[int64]model.UserProfile, len(profiles)),
		entries:  make(map[int64]*entry),
	}
	for id, p := range profiles {
		if !p.Registered() {
			continue
		}
		p.ID = id
		m.profiles[id] = p
	}
	return m
}

// Get возвращает профиль зарегистрированного пользователя.
func (m *Memory) Get(userID int64) (model.UserProfile, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.profiles[userID]
	return p, ok
}

// Upsert сохраняет профиль. Принимаются только полностью заполненные профили.
func (m *Memory) Upsert(p model.UserProfile) error {
	if !p.Registered() {
		return ErrIncompleteProfile
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[p.ID] = p
	return nil
}

// Profiles возвращает копию всех профилей.
func (m *Memory) Profiles() map[int64]model.UserProfile {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[int64]model.UserProfile, len(m.profiles))
	for id, p := range m.profiles {
		out[id] = p
	}
	return out
}

// Acquire блокирует сессию пользователя и возвращает её вместе с функцией освобождения.
// Изменять сессию можно только до вызова release.
func (m *Memory) Acquire(userID int64) (*model.Session, func()) {
	e := m.entry(userID)
	e.mu.Lock()
	return &e.session, func() {
		e.mu.Unlock()
		m.release(userID, e)
	}
}

func (m *Memory) entry(userID int64) *entry {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[userID]
	if !ok {
		e = &entry{session: model.Session{State: model.StateUnregistered, Cart: model.Cart{}}}
		m.entries[userID] = e
	}
	e.refs++
	return e
}

// release удаляет пустую сессию незарегистрированного пользователя, когда её никто не держит.
// Такая сессия не отличается от новой.
func (m *Memory) release(userID int64, e *entry) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e.refs--
	if e.refs > 0 {
		return
	}
	if _, ok := m.profiles[userID]; ok {
		return
	}
	if e.session.State == model.StateUnregistered && !e.session.Cart.Active() {
		delete(m.entries, userID)
	}
}
