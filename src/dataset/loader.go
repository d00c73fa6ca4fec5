package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"
)

// Resource names follow the static namespace convention
// {direction}_{dimension}_{year}.json, direction exp|imp, dimension
// products|countries.
const (
	ResourceExportProducts  = "exp_products"
	ResourceExportCountries = "exp_countries"
	ResourceImportProducts  = "imp_products"
	ResourceImportCountries = "imp_countries"
)

// resourceNameRe matches the {direction}_{dimension}_{year} naming used by
// the static namespace.
var resourceNameRe = regexp.MustCompile(`^(exp|imp)_(products|countries)_\d{4}$`)

// ValidResourceName reports whether name follows the dataset naming
// convention (without extension).
func ValidResourceName(name string) bool {
	return resourceNameRe.MatchString(name)
}

// DefaultTimeout bounds one resource fetch; a year switch should fail fast
// rather than hang the selector.
const DefaultTimeout = 30 * time.Second

// Loader fetches the four dataset resources for a year. Zero caching: every
// Load re-fetches, even for an unchanged year.
type Loader struct {
	BaseURL string
	client  *http.Client
}

// NewLoader builds a Loader against base (scheme://host[/prefix]). A zero
// timeout falls back to DefaultTimeout.
func NewLoader(base string, timeout time.Duration) *Loader {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Loader{
		BaseURL: strings.TrimRight(base, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// ResourceURL returns the fetch URL for one resource of one year.
func (l *Loader) ResourceURL(resource, year string) string {
	return fmt.Sprintf("%s/%s_%s.json", l.BaseURL, resource, year)
}

// Load fetches all four collections for year and returns them as one
// bundle. The fetches run concurrently but the result is atomic: if any
// single fetch or decode fails, the whole load fails and no bundle is
// returned. Callers render either the full year or nothing.
func (l *Loader) Load(ctx context.Context, year string) (*Bundle, error) {
	if strings.TrimSpace(year) == "" {
		return nil, fmt.Errorf("load: empty year")
	}
	resources := []string{
		ResourceExportProducts,
		ResourceExportCountries,
		ResourceImportProducts,
		ResourceImportCountries,
	}
	results := make([][]Record, len(resources))
	errs := make([]error, len(resources))
	var wg sync.WaitGroup
	start := time.Now()
	for i, res := range resources {
		wg.Add(1)
		go func(i int, res string) {
			defer wg.Done()
			results[i], errs[i] = l.fetch(ctx, res, year)
		}(i, res)
	}
	wg.Wait()
	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("load year %s: %s: %w", year, resources[i], err)
		}
	}
	Debugf("loaded year %s in %s (exp_products=%d exp_countries=%d imp_products=%d imp_countries=%d)",
		year, time.Since(start).Round(time.Millisecond),
		len(results[0]), len(results[1]), len(results[2]), len(results[3]))
	return &Bundle{
		Year:            year,
		ExportProducts:  results[0],
		ExportCountries: results[1],
		ImportProducts:  results[2],
		ImportCountries: results[3],
	}, nil
}

func (l *Loader) fetch(ctx context.Context, resource, year string) ([]Record, error) {
	url := l.ResourceURL(resource, year)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		// Drain a little of the body so the connection can be reused.
		io.Copy(io.Discard, io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%s: unexpected status %d", url, resp.StatusCode)
	}
	var records []Record
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", url, err)
	}
	return records, nil
}
