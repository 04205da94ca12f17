package schema

import (
	"fmt"
	"strings"
)

// Requirement is a threshold on one record metric.
type Requirement struct {
	Description string    `json:"description" mapstructure:"description"`
	Metric      MetricKey `json:"metric" mapstructure:"metric"`
	Min         float64   `json:"min" mapstructure:"min"`
}

// CategoryRequirements is what a reference profile expects in one category.
type CategoryRequirements struct {
	Keywords       []string    `json:"keywords" mapstructure:"keywords"`
	Minimum        Requirement `json:"minimum" mapstructure:"minimum"`
	Differentiator Requirement `json:"differentiator" mapstructure:"differentiator"`
}

// ReferenceProfile describes a typical successful applicant for one institution and major.
type ReferenceProfile struct {
	ID         string                            `json:"id" mapstructure:"id"`
	College    string                            `json:"college" mapstructure:"college"`
	Major      string                            `json:"major" mapstructure:"major"`
	Keywords   []string                          `json:"keywords" mapstructure:"keywords"`
	Categories map[Category]CategoryRequirements `json:"categories" mapstructure:"categories"`
}

// ReferenceProfileSet is a validated, ordered collection of reference profiles.
type ReferenceProfileSet struct {
	Profiles       []ReferenceProfile `json:"profiles"`
	ReadinessTable GradeTable         `json:"readiness_table"`
}

// NewReferenceProfileSet validates profiles and pairs them with a readiness table.
// A nil table selects DefaultReadinessTable.
func NewReferenceProfileSet(profiles []ReferenceProfile, readiness *GradeTable) (*ReferenceProfileSet, error) {
	set := &ReferenceProfileSet{Profiles: profiles, ReadinessTable: DefaultReadinessTable()}
	if readiness != nil {
		set.ReadinessTable = *readiness
	}
	if err := set.Validate(); err != nil {
		return nil, err
	}
	return set, nil
}

// Validate checks ids, categories and requirement metrics.
func (s *ReferenceProfileSet) Validate() error {
	if len(s.Profiles) == 0 {
		return ErrNoReferences
	}
	if err := s.ReadinessTable.Validate(); err != nil {
		return fmt.Errorf("readiness table: %w", err)
	}
	seen := make(map[string]struct{}, len(s.Profiles))
	for i, p := range s.Profiles {
		if p.ID == "" {
			return fmt.Errorf("%w: profile %d has no id", ErrInvalidReference, i)
		}
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("%w: duplicate id %q", ErrInvalidReference, p.ID)
		}
		seen[p.ID] = struct{}{}
		for _, c := range AllCategories {
			req, ok := p.Categories[c]
			if !ok {
				return fmt.Errorf("%w: %s is missing category %s", ErrInvalidReference, p.ID, c)
			}
			for _, r := range []Requirement{req.Minimum, req.Differentiator} {
				if _, ok := ValidMetricKeys[r.Metric]; !ok {
					return fmt.Errorf("%w: %s/%s uses unknown metric %q", ErrInvalidReference, p.ID, c, r.Metric)
				}
			}
		}
	}
	return nil
}

// Filter returns a new set holding only profiles matching college and major.
// Empty arguments match everything; matching is case-insensitive substring.
func (s *ReferenceProfileSet) Filter(college, major string) (*ReferenceProfileSet, error) {
	var kept []ReferenceProfile
	for _, p := range s.Profiles {
		if college != "" && !strings.Contains(strings.ToLower(p.College), strings.ToLower(college)) {
			continue
		}
		if major != "" && !strings.Contains(strings.ToLower(p.Major), strings.ToLower(major)) {
			continue
		}
		kept = append(kept, p)
	}
	table := s.ReadinessTable
	return NewReferenceProfileSet(kept, &table)
}
