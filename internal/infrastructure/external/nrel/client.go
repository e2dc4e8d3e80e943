// Package nrel fetches renewable project records from the NREL developer API
// and maps them onto project create inputs.
package nrel

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/renewables/energy-dashboard/internal/core/domain"
	"github.com/renewables/energy-dashboard/internal/core/ports"
)

const (
	DefaultBaseURL = "https://developer.nrel.gov/api"
	turbinesPath   = "/uswtdb/v1/turbines"
	fetchLimit     = 100
	maxBody        = 10 << 20

	// defaultYear is used for records that carry neither year nor p_year.
	defaultYear = 2023
)

type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(cfg Config) *Client {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{baseURL: base, apiKey: cfg.APIKey, http: &http.Client{Timeout: timeout}}
}

// FetchProjects requests one page of records. Any transport, status or
// decoding failure is reported as domain.ErrUpstream.
func (c *Client) FetchProjects(ctx context.Context) ([]ports.CreateProjectInput, error) {
	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("format", "json")
	q.Set("limit", strconv.Itoa(fetchLimit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+turbinesPath+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBody))
		return nil, fmt.Errorf("%w: status %d", domain.ErrUpstream, resp.StatusCode)
	}

	var records []record
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBody)).Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", domain.ErrUpstream, err)
	}

	out := make([]ports.CreateProjectInput, 0, len(records))
	for _, r := range records {
		out = append(out, r.toInput())
	}
	return out, nil
}

// record accepts both the project-style and the turbine-database field names.
type record struct {
	ProjectName string    `json:"project_name"`
	CaseID      flexFloat `json:"case_id"`
	Owner       string    `json:"owner"`
	EnergyType  string    `json:"energy_type"`
	CapacityMW  flexFloat `json:"capacity_mw"`
	TurbineCap  flexFloat `json:"t_cap"`
	State       string    `json:"state"`
	TState      string    `json:"t_state"`
	Status      string    `json:"status"`
	Year        flexFloat `json:"year"`
	PYear       flexFloat `json:"p_year"`
	Latitude    flexFloat `json:"latitude"`
	Longitude   flexFloat `json:"longitude"`
	YLat        flexFloat `json:"ylat"`
	XLong       flexFloat `json:"xlong"`
}

func (r record) toInput() ports.CreateProjectInput {
	name := r.ProjectName
	if name == "" && r.CaseID.set {
		name = "Project " + strconv.FormatFloat(r.CaseID.v, 'f', -1, 64)
	}
	owner := r.Owner
	if owner == "" {
		owner = "Unknown Owner"
	}
	state := firstNonEmpty(r.TState, r.State, "Unknown")
	year := defaultYear
	for _, y := range []flexFloat{r.Year, r.PYear} {
		if y.set && y.v != 0 {
			year = int(y.v)
			break
		}
	}

	return ports.CreateProjectInput{
		Name:       name,
		Owner:      owner,
		EnergyType: string(NormalizeEnergyType(r.EnergyType)),
		Capacity:   r.CapacityMW.or(r.TurbineCap).v,
		Location:   state + ", USA",
		Status:     string(NormalizeStatus(r.Status)),
		Year:       year,
		Latitude:   r.Latitude.or(r.YLat).ptr(),
		Longitude:  r.Longitude.or(r.XLong).ptr(),
	}
}

// NormalizeEnergyType maps free text onto the enumeration by keyword.
// Records with no recognisable type come from the turbine database and are wind.
func NormalizeEnergyType(s string) domain.EnergyType {
	lower := strings.ToLower(s)
	for _, t := range []domain.EnergyType{domain.EnergyWind, domain.EnergySolar, domain.EnergyHydro, domain.EnergyBiomass, domain.EnergyGeothermal} {
		if strings.Contains(lower, string(t)) {
			return t
		}
	}
	if strings.TrimSpace(s) == "" {
		return domain.EnergyWind
	}
	return domain.EnergyOther
}

// NormalizeStatus maps free text onto the lifecycle enumeration. A missing
// status means the record describes an installed asset.
func NormalizeStatus(s string) domain.ProjectStatus {
	lower := strings.ToLower(s)
	switch {
	case strings.Contains(lower, "operat"):
		return domain.StatusOperational
	case strings.Contains(lower, "construction"), strings.Contains(lower, "building"), strings.Contains(lower, "progress"):
		return domain.StatusInProgress
	case strings.Contains(lower, "planning"), strings.Contains(lower, "proposed"):
		return domain.StatusPlanning
	case strings.Contains(lower, "cancel"), strings.Contains(lower, "decommission"), strings.Contains(lower, "retired"):
		return domain.StatusDecommissioned
	}
	return domain.StatusOperational
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// flexFloat decodes a JSON number or numeric string. Anything else leaves
// it unset.
type flexFloat struct {
	v   float64
	set bool
}

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	f.v, f.set = v, true
	return nil
}

func (f flexFloat) or(other flexFloat) flexFloat {
	if f.set {
		return f
	}
	return other
}

func (f flexFloat) ptr() *float64 {
	if !f.set {
		return nil
	}
	v := f.v
	return &v
}
