package services

import "sync"

type PreferenceRepository interface {
	DarkTheme() (bool, error)
	SetDarkTheme(enabled bool) error
}

type PreferencesService struct {
	mu          sync.Mutex
	preferences PreferenceRepository
}

func NewPreferencesService(preferences PreferenceRepository) *PreferencesService {
	return &PreferencesService{preferences: preferences}
}

func (service *PreferencesService) DarkTheme() (bool, error) {
	service.mu.Lock()
	defer service.mu.Unlock()
	return service.preferences.DarkTheme()
}

func (service *PreferencesService) SetDarkTheme(enabled bool) error {
	service.mu.Lock()
	defer service.mu.Unlock()
	return service.preferences.SetDarkTheme(enabled)
}
