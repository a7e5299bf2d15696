package tgbot

import (
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
)

type EventType string

const (
	TierChanged     EventType = "tier"
	ChampionCrowned EventType = "champion"
)

var eventTypes = []EventType{TierChanged, ChampionCrowned}

type subscriptions struct {
	mu sync.RWMutex
	m  map[EventType]mapset.Set[int64]
}

func newSubs() *subscriptions {
	m := make(map[EventType]mapset.Set[int64])
	return &subscriptions{
		m: m,
	}
}

func (s *subscriptions) Add(t EventType, chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.m[t] == nil {
		s.m[t] = mapset.NewSet[int64]()
	}
	s.m[t].Add(chatID)
}

func (s *subscriptions) Remove(t EventType, chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.m[t] == nil {
		return
	}
	s.m[t].Remove(chatID)
}

func (s *subscriptions) GetChatIDs(t EventType) []int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.m[t] == nil {
		return nil
	}
	return s.m[t].ToSlice()
}

func (s *subscriptions) Subscribed(t EventType, chatID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.m[t] != nil && s.m[t].Contains(chatID)
}

func parseEventTypes(args string) ([]EventType, bool) {
	switch EventType(args) {
	case "":
		return eventTypes, true
	case TierChanged, ChampionCrowned:
		return []EventType{EventType(args)}, true
	}
	return nil, false
}
