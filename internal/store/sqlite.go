package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a preference key has never been written.
var ErrNotFound = errors.New("preference not found")

// Well-known preference keys, mirroring what the dashboard client persists.
const (
	keyLastLocation = "lastLocation"
	keySettings     = "settings"
)

// Settings is the user preference object: read once at startup, written only
// on explicit save.
type Settings struct {
	Units              string `json:"units" validate:"oneof=metric imperial"`
	Language           string `json:"language" validate:"required"`
	AutoRefreshSeconds int    `json:"autoRefreshSeconds" validate:"min=0"`
	Theme              string `json:"theme" validate:"oneof=light dark auto"`
	ShowHumidity       bool   `json:"showHumidity"`
	ShowWind           bool   `json:"showWind"`
	ShowPressure       bool   `json:"showPressure"`
}

// DefaultSettings are used until the user saves their own.
func DefaultSettings() Settings {
	return Settings{
		Units:              "metric",
		Language:           "en",
		AutoRefreshSeconds: 600,
		Theme:              "auto",
		ShowHumidity:       true,
		ShowWind:           true,
		ShowPressure:       true,
	}
}

// PrefsStore persists the last-selected location and settings in a small
// SQLite key/value table.
type PrefsStore struct {
	db *sql.DB
}

func NewPrefsStore(db *sql.DB) *PrefsStore {
	return &PrefsStore{db: db}
}

// InitSchema creates the preferences table if it does not exist.
func InitSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS prefs (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("init prefs schema: %w", err)
	}
	return nil
}

func (s *PrefsStore) get(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM prefs WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("read pref %q: %w", key, err)
	}
	return value, nil
}

func (s *PrefsStore) put(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO prefs (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("write pref %q: %w", key, err)
	}
	return nil
}

// LastLocation returns the last location string the user selected.
func (s *PrefsStore) LastLocation() (string, error) {
	return s.get(keyLastLocation)
}

// SaveLastLocation records the location the user explicitly requested.
func (s *PrefsStore) SaveLastLocation(location string) error {
	return s.put(keyLastLocation, location)
}

// LoadSettings returns the persisted settings, or ErrNotFound if the user
// never saved any.
func (s *PrefsStore) LoadSettings() (Settings, error) {
	raw, err := s.get(keySettings)
	if err != nil {
		return Settings{}, err
	}

	var settings Settings
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		return Settings{}, fmt.Errorf("decode settings: %w", err)
	}
	return settings, nil
}

// SaveSettings persists the settings object.
func (s *PrefsStore) SaveSettings(settings Settings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return s.put(keySettings, string(raw))
}
