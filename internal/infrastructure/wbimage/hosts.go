package wbimage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/goccy/go-json"

	"github.com/wardrobelens/backend/internal/domain"
	"github.com/wardrobelens/backend/internal/logging"
)

// DefaultHostsURL lists the media basket hosts and the volume ranges they serve
const DefaultHostsURL = "https://basketstate.wbbasket.ru/v1/list/short?mediabasket"

const productsPerVolume = 100000

// HostRange maps an inclusive volume range to the image host serving it
type HostRange struct {
	MinVol  int64
	MaxVol  int64
	BaseURL string
}

// HostTable is an immutable, MinVol-sorted list of host ranges
type HostTable struct {
	ranges []HostRange
}

// NewHostTable builds a table from ranges in any order
func NewHostTable(ranges []HostRange) *HostTable {
	sorted := make([]HostRange, len(ranges))
	copy(sorted, ranges)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].MinVol < sorted[j].MinVol })
	return &HostTable{ranges: sorted}
}

// Len returns the number of known hosts
func (t *HostTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.ranges)
}

// HostFor returns the base URL of the host serving productID
func (t *HostTable) HostFor(productID uint64) (string, bool) {
	if t.Len() == 0 {
		return "", false
	}
	vol := int64(productID / productsPerVolume)

	// first range whose MaxVol is not below vol
	i := sort.Search(len(t.ranges), func(i int) bool { return t.ranges[i].MaxVol >= vol })
	if i < len(t.ranges) && t.ranges[i].MinVol <= vol {
		return t.ranges[i].BaseURL, true
	}
	return "", false
}

// ParseHostList turns the basket state payload into host ranges.
// Host names look like basket-12.wbbasket.ru; anything else is skipped.
func ParseHostList(list *domain.ImageHostList) []HostRange {
	if list == nil {
		return nil
	}

	ranges := make([]HostRange, 0, len(list.Projects.MediaBasket.Hosts))
	for name, r := range list.Projects.MediaBasket.Hosts {
		number, ok := basketNumber(name)
		if !ok {
			logging.Debug().Str("host", name).Msg("[IMAGE] skipping unrecognised host")
			continue
		}
		ranges = append(ranges, HostRange{
			MinVol:  r.MinVol,
			MaxVol:  r.MaxVol,
			BaseURL: fmt.Sprintf("http://basket-%s.wbbasket.ru", number),
		})
	}
	return ranges
}

func basketNumber(host string) (string, bool) {
	_, rest, found := strings.Cut(host, "-")
	if !found {
		return "", false
	}
	number, _, _ := strings.Cut(rest, ".")
	if number == "" {
		return "", false
	}
	return number, true
}

// LoadHostTable fetches the basket state endpoint and builds a host table
func LoadHostTable(ctx context.Context, client *http.Client, url string) (*HostTable, error) {
	if url == "" {
		url = DefaultHostsURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch image hosts: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch image hosts: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read image hosts: %w", err)
	}

	var list domain.ImageHostList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("decode image hosts: %w", err)
	}

	table := NewHostTable(ParseHostList(&list))
	logging.Info().Int("hosts", table.Len()).Msg("[IMAGE] host table loaded")
	return table, nil
}
