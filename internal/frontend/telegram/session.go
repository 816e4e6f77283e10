package telegram

import (
	"sync"

	"github.com/vadimtrunov/MovieWeb/internal/catalog"
	"github.com/vadimtrunov/MovieWeb/internal/metadata/tmdb"
)

// chatSession is the browsing state of one chat: the list last shown and its
// search generations.
type chatSession struct {
	mu     sync.Mutex
	search *catalog.SearchSession
	label  string
	titles []tmdb.Title
	kind   tmdb.MediaKind // fallback kind for titles without media_type
	pager  catalog.Pager
}

func newChatSession() *chatSession {
	return &chatSession{search: catalog.NewSearchSession()}
}

// show replaces the current list and rewinds to its first page.
func (s *chatSession) show(label string, titles []tmdb.Title, kind tmdb.MediaKind, pageSize int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.label = label
	s.titles = titles
	s.kind = kind
	s.pager = catalog.NewPager(pageSize, len(titles), 1)
}

// listPage is one page of the current list.
type listPage struct {
	label  string
	titles []tmdb.Title
	kind   tmdb.MediaKind
	start  int
	prev   bool
	next   bool
}

// page returns the visible page of the current list.
func (s *chatSession) page() listPage {
	s.mu.Lock()
	defer s.mu.Unlock()
	start, end := s.pager.Visible()
	return listPage{
		label:  s.label,
		titles: s.titles[start:end],
		kind:   s.kind,
		start:  start,
		prev:   start > 0,
		next:   end < len(s.titles),
	}
}

// turn moves one page forward (delta > 0) or back and reports whether the page changed.
func (s *chatSession) turn(delta int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	before := s.pager.Offset
	if delta > 0 {
		s.pager = s.pager.Right()
	} else {
		s.pager = s.pager.Left()
	}
	return s.pager.Offset != before
}

// find returns a listed title by id.
func (s *chatSession) find(id int) (tmdb.Title, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.titles {
		if t.ID == id {
			return t, true
		}
	}
	return tmdb.Title{}, false
}

// sessionManager manages per-chat sessions and access control.
type sessionManager struct {
	mu       sync.Mutex
	sessions map[int64]*chatSession
	allowed  map[int64]bool // nil or empty = allow all
}

// newSessionManager creates a session manager.
// If allowedUserIDs is empty, all users are allowed.
func newSessionManager(allowedUserIDs []int64) *sessionManager {
	allowed := make(map[int64]bool, len(allowedUserIDs))
	for _, id := range allowedUserIDs {
		allowed[id] = true
	}
	return &sessionManager{
		sessions: make(map[int64]*chatSession),
		allowed:  allowed,
	}
}

// isAllowed checks if a user is authorized to use the bot.
func (sm *sessionManager) isAllowed(userID int64) bool {
	if len(sm.allowed) == 0 {
		return true
	}
	return sm.allowed[userID]
}

// get returns the chat's session, creating it on first use.
func (sm *sessionManager) get(chatID int64) *chatSession {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	s, ok := sm.sessions[chatID]
	if !ok {
		s = newChatSession()
		sm.sessions[chatID] = s
	}
	return s
}

// reset drops a chat's session.
func (sm *sessionManager) reset(chatID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	delete(sm.sessions, chatID)
}
