// Package config loads per-client configuration files for the composition
// pipeline: trade types, entities, business facts, and template options.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/GTP-getaipro/FWIQ-sub005/internal/entity"
)

// Client is one client's configuration file.
type Client struct {
	// TradeTypes must match schema registry keys, primary trade first.
	TradeTypes []string `yaml:"trade_types"`

	// Business holds the flat facts templates reference by name.
	Business Business `yaml:"business"`

	Managers  []entity.Entity `yaml:"managers"`
	Suppliers []entity.Entity `yaml:"suppliers"`

	// PromptTemplatePath points at a custom reply-prompt template. Empty
	// uses the built-in template.
	PromptTemplatePath string `yaml:"prompt_template"`

	// StrictPlaceholders surfaces stripped placeholders as warnings.
	StrictPlaceholders bool `yaml:"strict_placeholders"`
}

// Business is the flat scalar facts block.
type Business struct {
	Name           string `yaml:"name"`
	Phone          string `yaml:"phone"`
	Website        string `yaml:"website"`
	Currency       string `yaml:"currency"`
	Timezone       string `yaml:"timezone"`
	ServiceAreas   string `yaml:"service_areas"`
	OperatingHours string `yaml:"operating_hours"`
	ResponseTime   string `yaml:"response_time"`
	PricingText    string `yaml:"pricing_text"`
	BookingLink    string `yaml:"booking_link"`
	ReviewLink     string `yaml:"review_link"`
}

// Load reads and validates a client configuration file.
func Load(path string) (*Client, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read client config: %w", err)
	}
	var c Client
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse client config %s: %w", path, err)
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid client config %s: %w", path, err)
	}
	return &c, nil
}

func (c *Client) applyDefaults() {
	if c.Business.ResponseTime == "" {
		c.Business.ResponseTime = "within one business day"
	}
	if c.Business.OperatingHours == "" {
		c.Business.OperatingHours = "standard business hours"
	}
}

// Validate checks the fields composition cannot work without. Trade types
// are not checked against the registry here; an unknown trade is a runtime
// warning, not a config error.
func (c *Client) Validate() error {
	if strings.TrimSpace(c.Business.Name) == "" {
		return fmt.Errorf("business name is required")
	}
	if len(c.TradeTypes) == 0 {
		return fmt.Errorf("at least one trade type is required")
	}
	return nil
}

// Facts flattens the business block into the scalar map templates resolve
// against. Empty fields are omitted so lenient placeholder stripping applies.
func (c *Client) Facts() map[string]string {
	facts := map[string]string{
		"BusinessName":   c.Business.Name,
		"Phone":          c.Business.Phone,
		"Website":        c.Business.Website,
		"Currency":       c.Business.Currency,
		"Timezone":       c.Business.Timezone,
		"ServiceAreas":   c.Business.ServiceAreas,
		"OperatingHours": c.Business.OperatingHours,
		"ResponseTime":   c.Business.ResponseTime,
		"PricingText":    c.Business.PricingText,
		"BookingLink":    c.Business.BookingLink,
		"ReviewLink":     c.Business.ReviewLink,
	}
	for k, v := range facts {
		if v == "" {
			delete(facts, k)
		}
	}
	return facts
}
