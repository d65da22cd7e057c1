package scenario

import (
	"context"
	"strings"
)

const (
	FeaturePet   = "Pet"
	FeatureStore = "Store"
)

// Scenario is one named contract check.
type Scenario struct {
	ID      string
	Feature string
	Title   string
	Run     func(ctx context.Context, env *Env) error
}

// Catalog returns every scenario in execution order.
func Catalog() []Scenario {
	out := append([]Scenario{}, petScenarios()...)
	return append(out, storeScenarios()...)
}

// Select narrows scenarios to the given features and id prefixes.
// Empty filters select everything.
func Select(all []Scenario, features, ids []string) []Scenario {
	var out []Scenario
	for _, s := range all {
		if len(features) > 0 && !containsFold(features, s.Feature) {
			continue
		}
		if len(ids) > 0 && !hasAnyPrefix(s.ID, ids) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func containsFold(values []string, target string) bool {
	for _, v := range values {
		if strings.EqualFold(strings.TrimSpace(v), target) {
			return true
		}
	}
	return false
}

func hasAnyPrefix(id string, prefixes []string) bool {
	for _, p := range prefixes {
		p = strings.TrimSpace(p)
		if p != "" && strings.HasPrefix(id, p) {
			return true
		}
	}
	return false
}
