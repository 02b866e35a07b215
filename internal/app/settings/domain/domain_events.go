package domain

import "time"

// SettingsSavedEvent is raised when configuration documents were saved.
type SettingsSavedEvent struct {
	Documents []string
	SavedAt   time.Time
}

func (e *SettingsSavedEvent) EventType() string {
	return "settings.saved"
}

func (e *SettingsSavedEvent) AggregateID() string {
	return CollectionConfig
}

func (e *SettingsSavedEvent) OccurredAt() time.Time {
	return e.SavedAt
}
