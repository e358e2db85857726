// Package compose runs the full client-configuration pipeline: merge trade
// schemas, expand the reply-prompt template, compose and validate the label
// taxonomy. Every step is a pure function of the request plus the immutable
// registry, so a Composer is safe for concurrent use across clients.
package compose

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/GTP-getaipro/FWIQ-sub005/internal/entity"
	"github.com/GTP-getaipro/FWIQ-sub005/internal/schema"
	"github.com/GTP-getaipro/FWIQ-sub005/internal/taxonomy"
	"github.com/GTP-getaipro/FWIQ-sub005/internal/template"
)

// Composer builds client configuration artifacts from an injected registry.
type Composer struct {
	registry *schema.Registry
	log      *zap.Logger
}

// New returns a Composer. A nil logger disables logging.
func New(registry *schema.Registry, log *zap.Logger) *Composer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Composer{registry: registry, log: log}
}

// Request is one client's configuration input.
type Request struct {
	// TradeTypes index the schema registry, primary trade first.
	TradeTypes []string

	// Managers and Suppliers are client entities, in display order.
	Managers  []entity.Entity
	Suppliers []entity.Entity

	// Facts are flat business scalars (BusinessName, Phone, Website, ...)
	// resolved into template placeholders.
	Facts map[string]string

	// PromptTemplate overrides the built-in reply-prompt template.
	PromptTemplate string

	// StrictPlaceholders records a warning for each placeholder stripped
	// from the output instead of dropping it silently.
	StrictPlaceholders bool
}

// Result is the finished artifact set for one client.
type Result struct {
	// RequestID correlates log lines with the returned artifacts.
	RequestID string `json:"request_id"`

	// Prompt is the reply-prompt text with no unresolved markers.
	Prompt string `json:"prompt"`

	// Schema is the merged behavior schema the prompt was built from.
	Schema schema.BaseSchema `json:"-"`

	// Trades are the resolved trade types, primary first.
	Trades []string `json:"trades"`

	// Taxonomy is the composed label tree plus its provisioning order.
	Taxonomy taxonomy.Composed `json:"taxonomy"`

	// Report is the taxonomy integrity report. The caller decides whether
	// warnings (or even errors) block provisioning.
	Report taxonomy.Report `json:"report"`

	// Warnings aggregates non-fatal conditions from every stage.
	Warnings []string `json:"warnings,omitempty"`
}

// Compose runs the pipeline. The only error is a malformed prompt template;
// every data-level condition surfaces as a warning or in the report instead.
func (c *Composer) Compose(req Request) (*Result, error) {
	id := uuid.NewString()
	log := c.log.With(zap.String("request_id", id))

	managers := entity.Resolve(req.Managers)
	suppliers := entity.Resolve(req.Suppliers)

	merged := c.registry.Merge(req.TradeTypes)
	warnings := append([]string(nil), merged.Warnings...)
	log.Debug("merged trade schemas",
		zap.Strings("requested", req.TradeTypes),
		zap.Strings("resolved", merged.Trades))

	src := req.PromptTemplate
	if src == "" {
		src = DefaultPromptTemplate
	}
	data := buildData(merged, managers, suppliers, req.Facts, req.StrictPlaceholders)
	prompt, promptWarnings, err := template.Render(src, data)
	if err != nil {
		return nil, fmt.Errorf("prompt template: %w", err)
	}
	warnings = append(warnings, promptWarnings...)

	composed, taxWarnings := taxonomy.Compose(
		taxonomy.Base(),
		c.registry.Extensions(merged.Trades),
		entity.Names(managers),
		entity.Names(suppliers),
	)
	warnings = append(warnings, taxWarnings...)

	report := taxonomy.Validate(composed)

	log.Info("composed client configuration",
		zap.Strings("trades", merged.Trades),
		zap.Int("labels", len(composed.Order)),
		zap.Int("warnings", len(warnings)),
		zap.Bool("valid", report.Valid))

	return &Result{
		RequestID: id,
		Prompt:    prompt,
		Schema:    merged.Schema,
		Trades:    merged.Trades,
		Taxonomy:  composed,
		Report:    report,
		Warnings:  warnings,
	}, nil
}
