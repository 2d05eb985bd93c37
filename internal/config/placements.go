package config

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/ironsheep/product-compositor/internal/pipeline"
)

var placementHeader = []string{"platform", "product_type", "offset", "height"}

type placementKey struct {
	platform    string
	productType string
}

// PlacementTable holds the offset and height for each platform and product
// type pair. Lookups are case-insensitive.
type PlacementTable struct {
	rows map[placementKey]pipeline.Placement
}

// NewPlacementTable returns an empty table.
func NewPlacementTable() *PlacementTable {
	return &PlacementTable{rows: make(map[placementKey]pipeline.Placement)}
}

// Set adds or replaces a placement.
func (t *PlacementTable) Set(platform, productType string, p pipeline.Placement) {
	t.rows[newPlacementKey(platform, productType)] = p
}

// Placement implements pipeline.PlacementLookup.
func (t *PlacementTable) Placement(platform, productType string) (pipeline.Placement, error) {
	p, ok := t.rows[newPlacementKey(platform, productType)]
	if !ok {
		return pipeline.Placement{}, fmt.Errorf("%w: platform %q, product type %q",
			pipeline.ErrNoPlacement, platform, productType)
	}
	return p, nil
}

// Len returns the number of placements.
func (t *PlacementTable) Len() int { return len(t.rows) }

// Platforms returns the distinct platform names, sorted.
func (t *PlacementTable) Platforms() []string {
	seen := make(map[string]bool)
	var names []string
	for k := range t.rows {
		if !seen[k.platform] {
			seen[k.platform] = true
			names = append(names, k.platform)
		}
	}
	sort.Strings(names)
	return names
}

func newPlacementKey(platform, productType string) placementKey {
	return placementKey{
		platform:    strings.ToUpper(strings.TrimSpace(platform)),
		productType: strings.ToLower(strings.TrimSpace(productType)),
	}
}

// LoadPlacements parses a placement CSV with the header
// platform,product_type,offset,height.
func LoadPlacements(r io.Reader) (*PlacementTable, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = len(placementHeader)

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("placement CSV is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read placement header: %w", err)
	}
	for i, want := range placementHeader {
		if strings.ToLower(strings.TrimSpace(header[i])) != want {
			return nil, fmt.Errorf("placement CSV header column %d is %q, want %q", i+1, header[i], want)
		}
	}

	table := NewPlacementTable()
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read placement CSV: %w", err)
		}
		line, _ := reader.FieldPos(0)

		offset, err := strconv.Atoi(strings.TrimSpace(record[2]))
		if err != nil || offset < 0 {
			return nil, fmt.Errorf("line %d: offset %q must be a non-negative integer", line, record[2])
		}
		height, err := strconv.Atoi(strings.TrimSpace(record[3]))
		if err != nil || height < 1 {
			return nil, fmt.Errorf("line %d: height %q must be a positive integer", line, record[3])
		}
		if strings.TrimSpace(record[0]) == "" || strings.TrimSpace(record[1]) == "" {
			return nil, fmt.Errorf("line %d: platform and product type are required", line)
		}

		table.Set(record[0], record[1], pipeline.Placement{Offset: offset, Height: height})
	}

	return table, nil
}

// LoadPlacementsFile opens path and parses it with LoadPlacements.
func LoadPlacementsFile(path string) (*PlacementTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open placements: %w", err)
	}
	defer f.Close()

	return LoadPlacements(f)
}
