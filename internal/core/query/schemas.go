package query

import (
	"time"

	"github.com/renewables/energy-dashboard/internal/core/domain"
)

// ProjectSchema: energyType/status match exactly, location by substring, and
// search covers name, owner and location.
var ProjectSchema = Schema[domain.Project]{
	Filters: map[string]Filter[domain.Project]{
		"energyType": {Kind: Exact, Field: func(p domain.Project) string { return string(p.EnergyType) }},
		"status":     {Kind: Exact, Field: func(p domain.Project) string { return string(p.Status) }},
		"location":   {Kind: Contains, Field: func(p domain.Project) string { return p.Location }},
	},
	Search: []func(domain.Project) string{
		func(p domain.Project) string { return p.Name },
		func(p domain.Project) string { return p.Owner },
		func(p domain.Project) string { return p.Location },
	},
	Sort: map[string]Comparator[domain.Project]{
		"name":       Text(func(p domain.Project) string { return p.Name }),
		"owner":      Text(func(p domain.Project) string { return p.Owner }),
		"location":   Text(func(p domain.Project) string { return p.Location }),
		"energyType": Text(func(p domain.Project) string { return string(p.EnergyType) }),
		"status":     Text(func(p domain.Project) string { return string(p.Status) }),
		"capacity":   Number(func(p domain.Project) float64 { return p.Capacity }),
		"year":       Number(func(p domain.Project) int { return p.Year }),
		"createdAt":  Time(func(p domain.Project) time.Time { return p.CreatedAt }),
	},
	CreatedAt: func(p domain.Project) time.Time { return p.CreatedAt },
}

// UserSchema: role matches exactly and search covers name and email.
var UserSchema = Schema[domain.User]{
	Filters: map[string]Filter[domain.User]{
		"role": {Kind: Exact, Field: func(u domain.User) string { return u.Role }},
	},
	Search: []func(domain.User) string{
		func(u domain.User) string { return u.Name },
		func(u domain.User) string { return u.Email },
	},
	Sort: map[string]Comparator[domain.User]{
		"name":      Text(func(u domain.User) string { return u.Name }),
		"email":     Text(func(u domain.User) string { return u.Email }),
		"role":      Text(func(u domain.User) string { return u.Role }),
		"createdAt": Time(func(u domain.User) time.Time { return u.CreatedAt }),
	},
	CreatedAt: func(u domain.User) time.Time { return u.CreatedAt },
}
