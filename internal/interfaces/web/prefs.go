package web

import (
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
)

const prefsCookieName = "roomsched_filters"

// Prefs is the last filter a browser applied.
type Prefs struct {
	Date  string   `json:"d,omitempty"`
	Rooms []string `json:"r,omitempty"`
}

// PrefsStore keeps Prefs in a signed and encrypted cookie. A nil store is
// valid and remembers nothing.
type PrefsStore struct{ sc *securecookie.SecureCookie }

func NewPrefsStore(hashKey, blockKey []byte) *PrefsStore {
	sc := securecookie.New(hashKey, blockKey)
	sc.SetSerializer(securecookie.JSONEncoder{})
	sc.MaxAge(int((30 * 24 * time.Hour).Seconds()))
	return &PrefsStore{sc: sc}
}

func (p *PrefsStore) Save(w http.ResponseWriter, r *http.Request, prefs Prefs) error {
	if p == nil {
		return nil
	}
	encoded, err := p.sc.Encode(prefsCookieName, prefs)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     prefsCookieName,
		Value:    encoded,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   r.TLS != nil,
		MaxAge:   int((30 * 24 * time.Hour).Seconds()),
	})
	return nil
}

func (p *PrefsStore) Load(r *http.Request) (Prefs, bool) {
	if p == nil {
		return Prefs{}, false
	}
	c, err := r.Cookie(prefsCookieName)
	if err != nil {
		return Prefs{}, false
	}
	var prefs Prefs
	if err := p.sc.Decode(prefsCookieName, c.Value, &prefs); err != nil {
		return Prefs{}, false
	}
	return prefs, true
}
