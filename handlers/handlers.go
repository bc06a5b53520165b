package handlers

import (
	"daybook/services"
	"daybook/validator"
)

// Handlers bundles the HTTP layer's collaborators. Construct once at
// startup and register the methods as Fiber routes.
type Handlers struct {
	Days      *services.DayService
	Locations *services.LocationService
	Tags      *services.TagService
	Search    *services.SearchService
	Prefs     services.PreferencesRepository
	Backup    BackupRunner
	Validator *validator.Validator
}

func New(
	days *services.DayService,
	locations *services.LocationService,
	tags *services.TagService,
	search *services.SearchService,
	prefs services.PreferencesRepository,
	backup BackupRunner,
) *Handlers {
	return &Handlers{
		Days:      days,
		Locations: locations,
		Tags:      tags,
		Search:    search,
		Prefs:     prefs,
		Backup:    backup,
		Validator: validator.New(),
	}
}
