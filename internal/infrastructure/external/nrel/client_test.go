package nrel

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/renewables/energy-dashboard/internal/core/domain"
)

func TestFetchProjects_MapsRecords(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/uswtdb/v1/turbines" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"project_name":"Desert Sun","owner":"SolarTech","energy_type":"Solar PV","capacity_mw":"150.5","state":"California","status":"Operating","year":2023,"latitude":34.05,"longitude":-118.24},
			{"case_id":3072661,"t_cap":1500,"t_state":"TX","p_year":"2019","ylat":31.9,"xlong":-99.9},
			{"project_name":"Plan B","energy_type":"tidal","status":"Proposed","year":2026},
			{"case_id":42,"t_cap":2000,"t_state":"IA","year":0}
		]`))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL + "/", APIKey: "k123"})
	got, err := c.FetchProjects(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotQuery != "api_key=k123&format=json&limit=100" {
		t.Errorf("unexpected query %q", gotQuery)
	}
	if len(got) != 4 {
		t.Fatalf("expected 4 records, got %d", len(got))
	}

	first := got[0]
	if first.Name != "Desert Sun" || first.EnergyType != "solar" || first.Capacity != 150.5 ||
		first.Location != "California, USA" || first.Status != "operational" || first.Year != 2023 {
		t.Errorf("unexpected first record: %+v", first)
	}
	if first.Latitude == nil || *first.Latitude != 34.05 {
		t.Errorf("latitude not mapped: %v", first.Latitude)
	}

	turbine := got[1]
	if turbine.Name != "Project 3072661" || turbine.Owner != "Unknown Owner" || turbine.EnergyType != "wind" ||
		turbine.Capacity != 1500 || turbine.Location != "TX, USA" || turbine.Year != 2019 {
		t.Errorf("unexpected turbine record: %+v", turbine)
	}
	if turbine.Longitude == nil || *turbine.Longitude != -99.9 {
		t.Errorf("xlong not mapped: %v", turbine.Longitude)
	}

	if got[2].EnergyType != "other" || got[2].Status != "planning" || got[2].Latitude != nil {
		t.Errorf("unexpected third record: %+v", got[2])
	}

	if got[3].Year != 2023 {
		t.Errorf("record without a year must default to 2023, got %d", got[3].Year)
	}
}

func TestFetchProjects_UpstreamFailures(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"server error": func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		},
		"not an array": func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"errors":["API_KEY_INVALID"]}`))
		},
	}
	for name, h := range cases {
		srv := httptest.NewServer(h)
		_, err := NewClient(Config{BaseURL: srv.URL}).FetchProjects(context.Background())
		srv.Close()
		if !errors.Is(err, domain.ErrUpstream) {
			t.Errorf("%s: expected ErrUpstream, got %v", name, err)
		}
	}

	// closed server
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	if _, err := NewClient(Config{BaseURL: url}).FetchProjects(context.Background()); !errors.Is(err, domain.ErrUpstream) {
		t.Errorf("unreachable: expected ErrUpstream, got %v", err)
	}
}

func TestNormalize(t *testing.T) {
	types := map[string]domain.EnergyType{
		"":              domain.EnergyWind,
		"Onshore WIND":  domain.EnergyWind,
		"hydroelectric": domain.EnergyHydro,
		"Biomass CHP":   domain.EnergyBiomass,
		"geothermal":    domain.EnergyGeothermal,
		"nuclear":       domain.EnergyOther,
	}
	for in, want := range types {
		if got := NormalizeEnergyType(in); got != want {
			t.Errorf("NormalizeEnergyType(%q) = %q, want %q", in, got, want)
		}
	}

	statuses := map[string]domain.ProjectStatus{
		"":                   domain.StatusOperational,
		"Under Construction": domain.StatusInProgress,
		"Cancelled":          domain.StatusDecommissioned,
		"proposed":           domain.StatusPlanning,
	}
	for in, want := range statuses {
		if got := NormalizeStatus(in); got != want {
			t.Errorf("NormalizeStatus(%q) = %q, want %q", in, got, want)
		}
	}
}
