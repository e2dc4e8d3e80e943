package query

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renewables/energy-dashboard/internal/core/domain"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// fixture returns projects in creation order, one minute apart.
func fixture() []domain.Project {
	raw := []struct {
		name, owner, loc string
		et               domain.EnergyType
		st               domain.ProjectStatus
		capacity         float64
		year             int
	}{
		{"Bhadla Solar Park", "RSDCL", "Rajasthan, India", domain.EnergySolar, domain.StatusOperational, 2245, 2021},
		{"Muppandal Wind Farm", "TEDA", "Tamil Nadu, India", domain.EnergyWind, domain.StatusOperational, 1500, 2000},
		{"Pavagada Solar Park", "KSPDCL", "Karnataka, India", domain.EnergySolar, domain.StatusOperational, 2050, 2019},
		{"Tehri Dam", "THDC India Ltd", "Uttarakhand, India", domain.EnergyHydro, domain.StatusOperational, 2400, 2006},
		{"Puga Valley Geothermal", "ONGC Energy", "Ladakh, India", domain.EnergyGeothermal, domain.StatusPlanning, 20, 2025},
		{"Jaisalmer Wind Park", "Suzlon Energy", "Rajasthan, India", domain.EnergyWind, domain.StatusOperational, 1064, 2012},
		{"Charanka Solar Park", "GPCL", "Gujarat, India", domain.EnergySolar, domain.StatusInProgress, 600, 2016},
	}
	out := make([]domain.Project, len(raw))
	for i, r := range raw {
		out[i] = domain.Project{
			ID:         fmt.Sprintf("p%d", i+1),
			Name:       r.name,
			Owner:      r.owner,
			Location:   r.loc,
			EnergyType: r.et,
			Status:     r.st,
			Capacity:   r.capacity,
			Year:       r.year,
			CreatedAt:  epoch.Add(time.Duration(i) * time.Minute),
		}
	}
	return out
}

func ids(items []domain.Project) []string {
	out := make([]string, len(items))
	for i, p := range items {
		out[i] = p.ID
	}
	return out
}

func TestRun_FilterByEnergyType(t *testing.T) {
	items := []domain.Project{
		{ID: "a", EnergyType: domain.EnergySolar, Capacity: 10, CreatedAt: epoch},
		{ID: "b", EnergyType: domain.EnergyWind, Capacity: 20, CreatedAt: epoch.Add(time.Minute)},
		{ID: "c", EnergyType: domain.EnergySolar, Capacity: 5, CreatedAt: epoch.Add(2 * time.Minute)},
	}

	res, err := Run(items, Spec{Filters: map[string]string{"energyType": "solar"}, SortBy: "capacity", SortOrder: "desc"}, ProjectSchema)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, []string{"a", "c"}, ids(res.Items))
}

func TestRun_ExactFilterIsCaseInsensitive(t *testing.T) {
	res, err := Run(fixture(), Spec{Filters: map[string]string{"energyType": "SOLAR", "status": "Operational"}}, ProjectSchema)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	assert.ElementsMatch(t, []string{"p1", "p3"}, ids(res.Items))
}

func TestRun_FilterConjunction(t *testing.T) {
	spec := Spec{
		Filters: map[string]string{"energyType": "wind", "status": "operational", "location": "rajasthan"},
		Search:  "park",
	}
	all := fixture()

	res, err := Run(all, spec, ProjectSchema)
	require.NoError(t, err)
	require.Equal(t, []string{"p6"}, ids(res.Items))

	matches := func(p domain.Project) bool {
		return p.EnergyType == domain.EnergyWind &&
			p.Status == domain.StatusOperational &&
			strings.Contains(strings.ToLower(p.Location), "rajasthan") &&
			(strings.Contains(strings.ToLower(p.Name), "park") ||
				strings.Contains(strings.ToLower(p.Owner), "park") ||
				strings.Contains(strings.ToLower(p.Location), "park"))
	}
	returned := map[string]bool{}
	for _, p := range res.Items {
		assert.True(t, matches(p), "returned item %s does not satisfy all predicates", p.ID)
		returned[p.ID] = true
	}
	for _, p := range all {
		if !returned[p.ID] {
			assert.False(t, matches(p), "excluded item %s satisfies all predicates", p.ID)
		}
	}
}

func TestRun_SearchMatchesAnyDesignatedField(t *testing.T) {
	res, err := Run(fixture(), Spec{Search: "energy"}, ProjectSchema)
	require.NoError(t, err)
	// owners "ONGC Energy" and "Suzlon Energy"
	assert.ElementsMatch(t, []string{"p5", "p6"}, ids(res.Items))

	res, err = Run(fixture(), Spec{Search: "GUJARAT"}, ProjectSchema)
	require.NoError(t, err)
	assert.Equal(t, []string{"p7"}, ids(res.Items))
}

func TestRun_EmptyFilterValueMeansNoFilter(t *testing.T) {
	res, err := Run(fixture(), Spec{Filters: map[string]string{"energyType": "", "location": ""}, Search: ""}, ProjectSchema)
	require.NoError(t, err)
	assert.Equal(t, 7, res.Total)
}

func TestRun_DefaultOrderIsNewestFirst(t *testing.T) {
	res, err := Run(fixture(), Spec{}, ProjectSchema)
	require.NoError(t, err)
	assert.Equal(t, []string{"p7", "p6", "p5", "p4", "p3", "p2", "p1"}, ids(res.Items))
	assert.Equal(t, DefaultPage, res.Page)
	assert.Equal(t, DefaultLimit, res.Limit)
}

func TestRun_SortNumericNotLexical(t *testing.T) {
	items := []domain.Project{
		{ID: "a", Capacity: 9, CreatedAt: epoch},
		{ID: "b", Capacity: 100, CreatedAt: epoch},
		{ID: "c", Capacity: 20, CreatedAt: epoch},
	}
	res, err := Run(items, Spec{SortBy: "capacity"}, ProjectSchema)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c", "b"}, ids(res.Items))
}

func TestRun_SortStableForEqualKeys(t *testing.T) {
	all := fixture()
	for _, order := range []string{"asc", "desc"} {
		t.Run(order, func(t *testing.T) {
			res, err := Run(all, Spec{SortBy: "energyType", SortOrder: order, Limit: 100}, ProjectSchema)
			require.NoError(t, err)

			// Solar projects in creation order are p1, p3, p7.
			var solar []string
			for _, p := range res.Items {
				if p.EnergyType == domain.EnergySolar {
					solar = append(solar, p.ID)
				}
			}
			assert.Equal(t, []string{"p1", "p3", "p7"}, solar)
		})
	}
}

func TestRun_SortDescending(t *testing.T) {
	res, err := Run(fixture(), Spec{SortBy: "year", SortOrder: "desc", Limit: 3}, ProjectSchema)
	require.NoError(t, err)
	assert.Equal(t, []string{"p5", "p1", "p3"}, ids(res.Items))
	assert.Equal(t, 7, res.Total)
}

func TestRun_PageTwo(t *testing.T) {
	items := make([]domain.Project, 5)
	for i := range items {
		items[i] = domain.Project{ID: string(rune('A' + i)), Name: string(rune('A' + i)), CreatedAt: epoch}
	}
	res, err := Run(items, Spec{SortBy: "name", Page: 2, Limit: 2}, ProjectSchema)
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "D"}, ids(res.Items))
	assert.Equal(t, 5, res.Total)
	assert.Equal(t, 3, res.TotalPages())
}

func TestRun_PageBeyondEnd(t *testing.T) {
	res, err := Run(fixture()[:3], Spec{Page: 10, Limit: 10}, ProjectSchema)
	require.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.NotNil(t, res.Items)
	assert.Equal(t, 3, res.Total)
}

func TestRun_NoMatches(t *testing.T) {
	res, err := Run(fixture(), Spec{Search: "nothing-like-this"}, ProjectSchema)
	require.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.Equal(t, 0, res.Total)
	assert.Equal(t, 0, res.TotalPages())
}

func TestRun_PaginationCoverage(t *testing.T) {
	all := fixture()
	spec := Spec{Filters: map[string]string{"location": "india"}, SortBy: "capacity", SortOrder: "desc"}

	full, err := Run(all, Spec{Filters: spec.Filters, SortBy: spec.SortBy, SortOrder: spec.SortOrder, Limit: MaxLimit}, ProjectSchema)
	require.NoError(t, err)

	for limit := 1; limit <= 4; limit++ {
		var concat []string
		first, err := Run(all, Spec{Filters: spec.Filters, SortBy: spec.SortBy, SortOrder: spec.SortOrder, Limit: limit}, ProjectSchema)
		require.NoError(t, err)
		for page := 1; page <= first.TotalPages(); page++ {
			res, err := Run(all, Spec{Filters: spec.Filters, SortBy: spec.SortBy, SortOrder: spec.SortOrder, Page: page, Limit: limit}, ProjectSchema)
			require.NoError(t, err)
			assert.Equal(t, full.Total, res.Total, "total must not depend on page/limit")
			concat = append(concat, ids(res.Items)...)
		}
		assert.Equal(t, ids(full.Items), concat, "limit=%d", limit)
	}
}

func TestRun_DoesNotMutateInput(t *testing.T) {
	all := fixture()
	before := ids(all)
	_, err := Run(all, Spec{SortBy: "name", SortOrder: "desc"}, ProjectSchema)
	require.NoError(t, err)
	assert.Equal(t, before, ids(all))
}

func TestRun_ValidationErrors(t *testing.T) {
	cases := []struct {
		name  string
		spec  Spec
		field string
	}{
		{"unknown sort key", Spec{SortBy: "owner_id"}, "sortBy"},
		{"bad sort order", Spec{SortBy: "name", SortOrder: "sideways"}, "sortOrder"},
		{"negative page", Spec{Page: -1}, "page"},
		{"limit too large", Spec{Limit: 101}, "limit"},
		{"negative limit", Spec{Limit: -5}, "limit"},
		{"unknown filter", Spec{Filters: map[string]string{"color": "red"}}, "color"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Run(fixture(), tc.spec, ProjectSchema)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidQuery))
			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tc.field, ve.Field)
		})
	}
}

func TestRun_LimitBoundsAccepted(t *testing.T) {
	for _, limit := range []int{1, 100} {
		_, err := Run(fixture(), Spec{Limit: limit}, ProjectSchema)
		assert.NoError(t, err, "limit=%d", limit)
	}
}

func TestRun_UserSchema(t *testing.T) {
	users := []domain.User{
		{ID: "u1", Name: "Admin User", Email: "admin@example.com", Role: domain.RoleAdmin, CreatedAt: epoch},
		{ID: "u2", Name: "Regular User", Email: "user@example.com", Role: domain.RoleUser, CreatedAt: epoch.Add(time.Minute)},
		{ID: "u3", Name: "Priya Sharma", Email: "priya.sharma@seci.co.in", Role: domain.RoleUser, CreatedAt: epoch.Add(2 * time.Minute)},
	}

	res, err := Run(users, Spec{Filters: map[string]string{"role": "user"}, Search: "seci"}, UserSchema)
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "u3", res.Items[0].ID)

	res, err = Run(users, Spec{SortBy: "email"}, UserSchema)
	require.NoError(t, err)
	assert.Equal(t, "u1", res.Items[0].ID)

	_, err = Run(users, Spec{SortBy: "capacity"}, UserSchema)
	assert.ErrorIs(t, err, domain.ErrInvalidQuery)
}
