package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sunfrisky19/model-meals-workouts/logging"
	"github.com/sunfrisky19/model-meals-workouts/metrics"
	"github.com/sunfrisky19/model-meals-workouts/models"
	"github.com/sunfrisky19/model-meals-workouts/utils"
)

// DietState holds the diet type most recently selected. The zero value is unset.
type DietState struct {
	mu   sync.RWMutex
	diet models.DietType
}

// Set replaces the current diet. Last writer wins.
func (s *DietState) Set(d models.DietType) {
	s.mu.Lock()
	s.diet = d
	s.mu.Unlock()
}

func (s *DietState) Get() (models.DietType, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.diet, !s.diet.IsZero()
}

type dietSession struct {
	state    DietState
	lastSeen time.Time
}

// DietSessions keeps one DietState per client session. Idle sessions expire after ttl.
type DietSessions struct {
	mu       sync.RWMutex
	sessions map[string]*dietSession
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
}

func NewDietSessions(secret string, ttl time.Duration) *DietSessions {
	key := []byte(secret)
	if len(key) == 0 {
		var err error
		if key, err = utils.RandomSecret(32); err != nil {
			panic(err)
		}
		logging.Warn().Msg("SESSION_SECRET not set, diet session tokens will not survive a restart")
	}
	return &DietSessions{
		sessions: make(map[string]*dietSession),
		secret:   key,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Select stores diet for sessionID and returns a freshly signed token for it.
// An empty or unknown sessionID starts a new session.
func (s *DietSessions) Select(sessionID string, diet models.DietType) (string, error) {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	now := s.now()

	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		sess = &dietSession{}
		s.sessions[sessionID] = sess
	}
	sess.lastSeen = now
	n := len(s.sessions)
	s.mu.Unlock()

	sess.state.Set(diet)
	metrics.ActiveDietSessions.Set(float64(n))

	return utils.GenerateSessionToken(s.secret, sessionID, s.ttl)
}

// Lookup returns the state of a live session and refreshes its idle timer.
func (s *DietSessions) Lookup(sessionID string) (*DietState, bool) {
	if sessionID == "" {
		return nil, false
	}
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok || now.Sub(sess.lastSeen) > s.ttl {
		return nil, false
	}
	sess.lastSeen = now
	return &sess.state, true
}

// Diet is Lookup followed by Get.
func (s *DietSessions) Diet(sessionID string) (models.DietType, bool) {
	st, ok := s.Lookup(sessionID)
	if !ok {
		return "", false
	}
	return st.Get()
}

// ParseToken returns the session id carried by a token signed by this registry.
func (s *DietSessions) ParseToken(token string) (string, error) {
	return utils.ParseSessionToken(s.secret, token)
}

func (s *DietSessions) TTL() time.Duration { return s.ttl }

func (s *DietSessions) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Run evicts idle sessions until ctx is done.
func (s *DietSessions) Run(ctx context.Context) {
	interval := s.ttl / 4
	if interval > time.Minute {
		interval = time.Minute
	}
	if interval <= 0 {
		interval = time.Second
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := s.evictExpired(); n > 0 {
				logging.Debug().Int("evicted", n).Msg("diet sessions expired")
			}
		}
	}
}

func (s *DietSessions) evictExpired() int {
	now := s.now()
	evicted := 0

	s.mu.Lock()
	for id, sess := range s.sessions {
		if now.Sub(sess.lastSeen) > s.ttl {
			delete(s.sessions, id)
			evicted++
		}
	}
	n := len(s.sessions)
	s.mu.Unlock()

	metrics.ActiveDietSessions.Set(float64(n))
	return evicted
}
