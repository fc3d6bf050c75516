package storage

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/yourname/cadence/internal"
)

// userSetting is the on-disk shape for one user's module setting.
type userSetting struct {
	UserID  string                 `json:"user_id"`
	Setting internal.ModuleSetting `json:"setting"`
}

type FileStorage struct {
	events            map[string]*internal.Event                          // id -> Event
	userEventIndex    map[string][]*internal.Event                        // userID -> events sorted ascending by Timestamp
	settings          map[string]map[internal.ModuleType]*internal.ModuleSetting // userID -> moduleType -> setting
	users             map[string]*internal.User                           // token -> User
	mu                sync.RWMutex
	eventsFile        string
	settingsFile      string
	usersFile         string
	saveEventsChan    chan struct{}
	saveSettingsChan  chan struct{}
	shutdownChan      chan struct{}
	saveEventsDelay   time.Duration
	saveSettingsDelay time.Duration
	logger            internal.Logger
}

func NewFileStorage(eventsFile, settingsFile, usersFile string, logger internal.Logger) (*FileStorage, error) {
	s := &FileStorage{
		events:            make(map[string]*internal.Event),
		userEventIndex:    make(map[string][]*internal.Event),
		settings:          make(map[string]map[internal.ModuleType]*internal.ModuleSetting),
		users:             make(map[string]*internal.User),
		eventsFile:        eventsFile,
		settingsFile:      settingsFile,
		usersFile:         usersFile,
		saveEventsChan:    make(chan struct{}, 1),
		saveSettingsChan:  make(chan struct{}, 1),
		shutdownChan:      make(chan struct{}),
		saveEventsDelay:   500 * time.Millisecond,
		saveSettingsDelay: 500 * time.Millisecond,
		logger:            logger,
	}

	if err := s.loadEvents(); err != nil {
		logger.Errorf("storage: failed to load events: %v", err)
		return nil, err
	}
	if err := s.loadSettings(); err != nil {
		logger.Errorf("storage: failed to load settings: %v", err)
		return nil, err
	}
	if err := s.loadUsers(); err != nil {
		logger.Errorf("storage: failed to load users: %v", err)
		return nil, err
	}

	go s.saveEventsWorker()
	go s.saveSettingsWorker()

	return s, nil
}

func (s *FileStorage) loadEvents() error {
	file, err := os.Open(s.eventsFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	var events []*internal.Event
	if err := json.NewDecoder(file).Decode(&events); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range events {
		s.events[e.ID] = e
		s.userEventIndex[e.UserID] = append(s.userEventIndex[e.UserID], e)
	}
	for userID := range s.userEventIndex {
		sort.Slice(s.userEventIndex[userID], func(i, j int) bool {
			return s.userEventIndex[userID][i].Timestamp.Before(s.userEventIndex[userID][j].Timestamp)
		})
	}
	return nil
}

func (s *FileStorage) loadSettings() error {
	file, err := os.Open(s.settingsFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	var settings []userSetting
	if err := json.NewDecoder(file).Decode(&settings); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = make(map[string]map[internal.ModuleType]*internal.ModuleSetting)
	for i := range settings {
		us := settings[i]
		if s.settings[us.UserID] == nil {
			s.settings[us.UserID] = make(map[internal.ModuleType]*internal.ModuleSetting)
		}
		setting := us.Setting
		s.settings[us.UserID][setting.ModuleType] = &setting
	}
	return nil
}

func (s *FileStorage) loadUsers() error {
	file, err := os.Open(s.usersFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	var users []*internal.User
	if err := json.NewDecoder(file).Decode(&users); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range users {
		s.users[u.Token] = u
	}
	return nil
}

func atomicWriteFileJSON(filePath string, data interface{}) error {
	tempFile := filePath + ".tmp"
	f, err := os.Create(tempFile)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(tempFile)
		return err
	}

	return os.Rename(tempFile, filePath)
}

func (s *FileStorage) saveEvents() error {
	s.mu.RLock()
	events := make([]*internal.Event, 0, len(s.events))
	for _, e := range s.events {
		events = append(events, e)
	}
	s.mu.RUnlock()

	sort.Slice(events, func(i, j int) bool {
		return events[i].Timestamp.Before(events[j].Timestamp)
	})
	return atomicWriteFileJSON(s.eventsFile, events)
}

func (s *FileStorage) saveSettings() error {
	s.mu.RLock()
	settings := make([]userSetting, 0)
	for userID, byType := range s.settings {
		for _, setting := range byType {
			settings = append(settings, userSetting{UserID: userID, Setting: *setting})
		}
	}
	s.mu.RUnlock()

	return atomicWriteFileJSON(s.settingsFile, settings)
}

func (s *FileStorage) saveEventsWorker() {
	timer := time.NewTimer(s.saveEventsDelay)
	defer timer.Stop()

	for {
		select {
		case <-s.saveEventsChan:
			timer.Reset(s.saveEventsDelay)
		case <-timer.C:
			if err := s.saveEvents(); err != nil {
				s.logger.Errorf("storage: error saving events: %v", err)
			}
		case <-s.shutdownChan:
			return
		}
	}
}

func (s *FileStorage) saveSettingsWorker() {
	timer := time.NewTimer(s.saveSettingsDelay)
	defer timer.Stop()

	for {
		select {
		case <-s.saveSettingsChan:
			timer.Reset(s.saveSettingsDelay)
		case <-timer.C:
			if err := s.saveSettings(); err != nil {
				s.logger.Errorf("storage: error saving settings: %v", err)
			}
		case <-s.shutdownChan:
			return
		}
	}
}

func (s *FileStorage) Close() error {
	close(s.shutdownChan)

	// Save pending data synchronously on shutdown
	if err := s.saveEvents(); err != nil {
		return err
	}
	return s.saveSettings()
}

// --- EventRepository ---
func (s *FileStorage) SaveEvent(ctx context.Context, event *internal.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events[event.ID] = event
	events := s.userEventIndex[event.UserID]
	inserted := false
	for i, existing := range events {
		if existing.Timestamp.After(event.Timestamp) {
			events = append(events[:i], append([]*internal.Event{event}, events[i:]...)...)
			inserted = true
			break
		}
	}
	if !inserted {
		events = append(events, event)
	}
	s.userEventIndex[event.UserID] = events
	select {
	case s.saveEventsChan <- struct{}{}:
	default:
	}
	return nil
}

func (s *FileStorage) ListEvents(ctx context.Context, userID string) ([]internal.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	eventsPtr, ok := s.userEventIndex[userID]
	if !ok {
		return []internal.Event{}, nil
	}
	events := make([]internal.Event, len(eventsPtr))
	for i, e := range eventsPtr {
		events[i] = *e
	}
	return events, nil
}

func (s *FileStorage) ListEventsByModule(ctx context.Context, userID string, moduleType internal.ModuleType) ([]internal.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var events []internal.Event
	for _, e := range s.userEventIndex[userID] {
		if e.ModuleType == moduleType {
			events = append(events, *e)
		}
	}
	if events == nil {
		events = []internal.Event{}
	}
	return events, nil
}

// --- SettingRepository ---
func (s *FileStorage) UpsertSetting(ctx context.Context, userID string, setting *internal.ModuleSetting) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.settings[userID] == nil {
		s.settings[userID] = make(map[internal.ModuleType]*internal.ModuleSetting)
	}
	s.settings[userID][setting.ModuleType] = setting
	select {
	case s.saveSettingsChan <- struct{}{}:
	default:
	}
	return nil
}

func (s *FileStorage) ListSettings(ctx context.Context, userID string) ([]internal.ModuleSetting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	byType, ok := s.settings[userID]
	if !ok {
		return []internal.ModuleSetting{}, nil
	}
	settings := make([]internal.ModuleSetting, 0, len(byType))
	for _, setting := range byType {
		settings = append(settings, *setting)
	}
	sort.Slice(settings, func(i, j int) bool {
		return settings[i].ModuleType < settings[j].ModuleType
	})
	return settings, nil
}

// --- UserRepository ---
func (s *FileStorage) GetUserByToken(ctx context.Context, token string) (*internal.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[token]
	if !ok {
		return nil, errors.New("storage: user not found")
	}
	u := *user
	return &u, nil
}

// --- Compile-time assertions ---
var _ EventRepository = (*FileStorage)(nil)
var _ SettingRepository = (*FileStorage)(nil)
var _ UserRepository = (*FileStorage)(nil)
