package repo

import "sync"

type InMemorySettingsRepository struct {
	mu       sync.Mutex
	settings map[string]string
}

func NewInMemorySettingsRepository() *InMemorySettingsRepository {
	return &InMemorySettingsRepository{settings: map[string]string{}}
}

func (r *InMemorySettingsRepository) GetAll() (map[string]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := map[string]string{}
	for k, v := range DefaultSettings {
		out[k] = v
	}
	for k, v := range r.settings {
		out[k] = v
	}
	return out, nil
}

func (r *InMemorySettingsRepository) Set(key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.settings[key] = value
	return nil
}
