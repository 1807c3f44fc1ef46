package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/oklog/ulid/v2"

	"finitefield.org/glb-gallery/internal/gallery"
)

const (
	defaultCookieName = "gallery_session"
	defaultCookiePath = "/"
)

// ErrInvalidConfig indicates the manager was initialised with missing or invalid options.
var ErrInvalidConfig = errors.New("session: invalid config")

// Data is the persisted payload: the viewer slot and the notice flag of one browser session.
type Data struct {
	ID          string              `json:"id"`
	CreatedAt   time.Time           `json:"createdAt"`
	Viewer      gallery.ViewerState `json:"viewer"`
	ViewerOpen  bool                `json:"viewerOpen"`
	NoticeShown bool                `json:"noticeShown"`
}

// Session holds mutable state for the current request lifecycle.
type Session struct {
	data  Data
	dirty bool
	fresh bool
}

// Config controls cookie encoding. A zero Lifetime issues a browser-session cookie.
type Config struct {
	CookieName     string
	HashKey        []byte
	BlockKey       []byte
	CookiePath     string
	CookieSecure   bool
	CookieSameSite http.SameSite
	Lifetime       time.Duration
	Now            func() time.Time
}

// Manager decodes and persists session state via signed (and optionally encrypted) cookies.
type Manager struct {
	cfg   Config
	codec *securecookie.SecureCookie
	now   func() time.Time
}

// NewManager constructs a Manager using the provided configuration.
func NewManager(cfg Config) (*Manager, error) {
	if len(cfg.HashKey) == 0 {
		return nil, fmt.Errorf("%w: hash key is required", ErrInvalidConfig)
	}
	if n := len(cfg.BlockKey); n != 0 && n != 16 && n != 24 && n != 32 {
		return nil, fmt.Errorf("%w: block key must be 16, 24 or 32 bytes", ErrInvalidConfig)
	}
	if cfg.CookieName == "" {
		cfg.CookieName = defaultCookieName
	}
	if cfg.CookiePath == "" {
		cfg.CookiePath = defaultCookiePath
	}
	if cfg.CookieSameSite == http.SameSiteDefaultMode {
		cfg.CookieSameSite = http.SameSiteLaxMode
	}
	nowFn := cfg.Now
	if nowFn == nil {
		nowFn = time.Now
	}

	codec := securecookie.New(cfg.HashKey, cfg.BlockKey)
	codec.SetSerializer(securecookie.JSONEncoder{})
	if cfg.Lifetime > 0 {
		codec.MaxAge(int(cfg.Lifetime.Seconds()))
	} else {
		codec.MaxAge(0)
	}

	return &Manager{cfg: cfg, codec: codec, now: nowFn}, nil
}

// GenerateKey returns a random key suitable for HashKey in local development.
func GenerateKey() []byte {
	return securecookie.GenerateRandomKey(32)
}

// Load retrieves the session from the request. Missing or tampered cookies yield a new session.
func (m *Manager) Load(r *http.Request) *Session {
	cookie, err := r.Cookie(m.cfg.CookieName)
	if err != nil {
		return m.New()
	}
	var stored Data
	if err := m.codec.Decode(m.cfg.CookieName, cookie.Value, &stored); err != nil || stored.ID == "" {
		return m.New()
	}
	return &Session{data: stored}
}

// New returns a pristine session with a fresh identifier.
func (m *Manager) New() *Session {
	return &Session{
		data: Data{
			ID:        ulid.Make().String(),
			CreatedAt: m.now().UTC(),
		},
		dirty: true,
		fresh: true,
	}
}

// Save writes the session cookie. Unchanged sessions are not rewritten.
func (m *Manager) Save(w http.ResponseWriter, sess *Session) error {
	if sess == nil {
		return errors.New("session: nil session")
	}
	if !sess.dirty {
		return nil
	}
	encoded, err := m.codec.Encode(m.cfg.CookieName, sess.data)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	cookie := &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    encoded,
		Path:     m.cfg.CookiePath,
		Secure:   m.cfg.CookieSecure,
		HttpOnly: true,
		SameSite: m.cfg.CookieSameSite,
	}
	if m.cfg.Lifetime > 0 {
		cookie.Expires = m.now().Add(m.cfg.Lifetime).UTC()
		cookie.MaxAge = int(m.cfg.Lifetime.Seconds())
	}
	http.SetCookie(w, cookie)
	sess.dirty = false
	return nil
}

// ID returns the stable session identifier.
func (s *Session) ID() string { return s.data.ID }

// Fresh reports whether the session was created during this request.
func (s *Session) Fresh() bool { return s.fresh }

// Dirty indicates whether the session contents have changed during this request.
func (s *Session) Dirty() bool { return s.dirty }

// Viewer restores the viewer state machine from the session.
func (s *Session) Viewer() *gallery.Viewer {
	return gallery.RestoreViewer(s.data.Viewer, s.data.ViewerOpen)
}

// StoreViewer persists the viewer slot and open flag.
func (s *Session) StoreViewer(v *gallery.Viewer) {
	slot, _ := v.Current()
	if slot == s.data.Viewer && v.IsOpen() == s.data.ViewerOpen {
		return
	}
	s.data.Viewer = slot
	s.data.ViewerOpen = v.IsOpen()
	s.dirty = true
}

// Notice restores the notice state machine. A restored notice is never open.
func (s *Session) Notice() *gallery.Notice {
	return gallery.RestoreNotice(s.data.NoticeShown, false)
}

// StoreNotice persists whether the notice has been shown.
func (s *Session) StoreNotice(n *gallery.Notice) {
	if n.Shown() == s.data.NoticeShown {
		return
	}
	s.data.NoticeShown = n.Shown()
	s.dirty = true
}
