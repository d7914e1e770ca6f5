// Package insight exposes the library facade: a registry resolving metric
// names to their handler services over a closed name set.
package insight

import (
	"fmt"

	accountdomain "github.com/smallbiznis/insight/internal/account/domain"
	conversiondomain "github.com/smallbiznis/insight/internal/conversion/domain"
	eventlogdomain "github.com/smallbiznis/insight/internal/eventlog/domain"
	goaldomain "github.com/smallbiznis/insight/internal/goal/domain"
	insightdomain "github.com/smallbiznis/insight/internal/insight/domain"
	propertydomain "github.com/smallbiznis/insight/internal/property/domain"
	"go.uber.org/fx"
)

// Metric names the supported metric handlers.
type Metric string

const (
	MetricAccounts    Metric = "accounts"
	MetricMrr         Metric = "mrr"
	MetricArpu        Metric = "arpu"
	MetricGoals       Metric = "goals"
	MetricProperties  Metric = "properties"
	MetricEvents      Metric = "events"
	MetricConversions Metric = "conversions"
)

// Registry maps metric names to constructed handler instances. Handlers are
// built eagerly at wiring time; unknown names are rejected instead of being
// resolved dynamically.
type Registry struct {
	accounts    accountdomain.Service
	queries     insightdomain.Service
	goals       goaldomain.Service
	properties  propertydomain.Service
	events      eventlogdomain.Service
	conversions conversiondomain.Service

	handlers map[Metric]any
}

type RegistryParam struct {
	fx.In

	Accounts    accountdomain.Service
	Queries     insightdomain.Service
	Goals       goaldomain.Service
	Properties  propertydomain.Service
	Events      eventlogdomain.Service
	Conversions conversiondomain.Service
}

func NewRegistry(p RegistryParam) *Registry {
	r := &Registry{
		accounts:    p.Accounts,
		queries:     p.Queries,
		goals:       p.Goals,
		properties:  p.Properties,
		events:      p.Events,
		conversions: p.Conversions,
	}
	r.handlers = map[Metric]any{
		MetricAccounts:    p.Accounts,
		MetricMrr:         p.Queries,
		MetricArpu:        p.Queries,
		MetricGoals:       p.Goals,
		MetricProperties:  p.Properties,
		MetricEvents:      p.Events,
		MetricConversions: p.Conversions,
	}
	return r
}

// Handler resolves a metric name to its handler instance.
func (r *Registry) Handler(name string) (any, error) {
	handler, ok := r.handlers[Metric(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", insightdomain.ErrUnsupportedMetric, name)
	}
	return handler, nil
}

// Typed accessors for callers that know what they want.

func (r *Registry) Accounts() accountdomain.Service       { return r.accounts }
func (r *Registry) Queries() insightdomain.Service        { return r.queries }
func (r *Registry) Goals() goaldomain.Service             { return r.goals }
func (r *Registry) Properties() propertydomain.Service    { return r.properties }
func (r *Registry) Events() eventlogdomain.Service        { return r.events }
func (r *Registry) Conversions() conversiondomain.Service { return r.conversions }
