package workflows

import (
	"context"
	"slices"

	"github.com/PolarWolf314/waypoint/internal/tables"
)

// RecordFilter narrows BrowseRecords. Zero fields match everything.
type RecordFilter struct {
	ID          int
	ClientGroup string
	LegalEntity string
	Solution    string
}

func (f RecordFilter) matches(r tables.Record) bool {
	return (f.ID == 0 || r.UniqueID == f.ID) &&
		(f.ClientGroup == "" || r.ClientGroup == f.ClientGroup) &&
		(f.LegalEntity == "" || r.LegalEntity == f.LegalEntity) &&
		(f.Solution == "" || r.Solution == f.Solution)
}

// RecordSummary pairs a record with its progress.
type RecordSummary struct {
	Record  tables.Record `json:"record"`
	Summary Summary       `json:"summary"`
}

// BrowseResult contains the outcome of BrowseRecords.
type BrowseResult struct {
	// Records are the matching records in table order.
	Records []RecordSummary `json:"records"`

	// ClientGroups lists every client group.
	ClientGroups []string `json:"client_groups"`

	// LegalEntities lists the legal entities within the filter's client
	// group, or all of them when no client group is set.
	LegalEntities []string `json:"legal_entities"`

	// Solutions lists the solutions within the filter's client group and
	// legal entity.
	Solutions []string `json:"solutions"`
}

// BrowseRecords returns the records matching filter along with the facet
// values for narrowing the selection one level at a time. Facets are sorted
// and free of duplicates.
func (tr *Tracker) BrowseRecords(ctx context.Context, filter RecordFilter) (*BrowseResult, error) {
	t, _, err := tr.load(ctx)
	if err != nil {
		return nil, err
	}

	result := &BrowseResult{
		ClientGroups: facet(t.Records, RecordFilter{}, func(r tables.Record) string { return r.ClientGroup }),
		LegalEntities: facet(t.Records, RecordFilter{ClientGroup: filter.ClientGroup},
			func(r tables.Record) string { return r.LegalEntity }),
		Solutions: facet(t.Records, RecordFilter{ClientGroup: filter.ClientGroup, LegalEntity: filter.LegalEntity},
			func(r tables.Record) string { return r.Solution }),
	}

	for _, r := range t.Records {
		if filter.matches(r) {
			result.Records = append(result.Records, RecordSummary{
				Record:  r,
				Summary: summarize(t, r.UniqueID),
			})
		}
	}
	return result, nil
}

func facet(records []tables.Record, within RecordFilter, value func(tables.Record) string) []string {
	var values []string
	for _, r := range records {
		if !within.matches(r) {
			continue
		}
		if v := value(r); v != "" && !slices.Contains(values, v) {
			values = append(values, v)
		}
	}
	slices.Sort(values)
	return values
}
