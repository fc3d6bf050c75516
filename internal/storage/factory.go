package storage

import "github.com/yourname/cadence/internal"

type Repositories struct {
	Events   EventRepository
	Settings SettingRepository
	Users    UserRepository
}

func NewFileRepositories(eventsFile, settingsFile, usersFile string, logger internal.Logger) (Repositories, error) {
	storage, err := NewFileStorage(eventsFile, settingsFile, usersFile, logger)
	if err != nil {
		return Repositories{}, err
	}
	return Repositories{Events: storage, Settings: storage, Users: storage}, nil
}

func NewPostgresRepositories(dsn string, logger internal.Logger) (Repositories, error) {
	storage, err := NewPostgresStorage(dsn, logger)
	if err != nil {
		return Repositories{}, err
	}
	return Repositories{Events: storage, Settings: storage, Users: storage}, nil
}
