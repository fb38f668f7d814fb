package detect

// Match is one motif occurrence mapped onto genome coordinates.
// Site holds the matched bases in motif orientation: reverse-strand sites
// are reverse complemented so they read in the motif's own direction.
type Match struct {
	Start      int
	End        int
	Strand     string
	Score      float64
	Confidence Confidence
	Site       string
}

// RegionMatch pairs a match with the region name it resolved to.
type RegionMatch struct {
	Region string
	Match  Match
}

// Table aggregates matches keyed by resolved region. It preserves both the
// order regions first appear and the arrival order of matches within each
// region; no coordinate sorting is applied.
type Table struct {
	order   []string
	matches map[string][]Match
}

// NewTable creates an empty result table.
func NewTable() *Table {
	return &Table{matches: make(map[string][]Match)}
}

// Add appends a match to the region's list, registering the region on
// first use.
func (t *Table) Add(region string, m Match) {
	if _, ok := t.matches[region]; !ok {
		t.order = append(t.order, region)
	}
	t.matches[region] = append(t.matches[region], m)
}

// Regions returns region names in first-insertion order.
func (t *Table) Regions() []string {
	return t.order
}

// Matches returns the region's matches in arrival order.
func (t *Table) Matches(region string) []Match {
	return t.matches[region]
}

// Len returns the total number of matches across all regions.
func (t *Table) Len() int {
	n := 0
	for _, ms := range t.matches {
		n += len(ms)
	}
	return n
}

// Each calls fn for every match in flush order: regions in first-insertion
// order, matches within a region in append order.
func (t *Table) Each(fn func(region string, m Match) error) error {
	for _, region := range t.order {
		for _, m := range t.matches[region] {
			if err := fn(region, m); err != nil {
				return err
			}
		}
	}
	return nil
}
