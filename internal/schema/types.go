// Package schema defines the per-trade base configuration for the email
// automation product and the rules for merging several trades' schemas into
// one when a client operates more than one trade.
package schema

import (
	"fmt"
	"strings"

	"github.com/GTP-getaipro/FWIQ-sub005/internal/taxonomy"
)

// Formality is the register a client's replies are written in.
type Formality string

const (
	FormalityCasual       Formality = "casual"
	FormalityMedium       Formality = "medium"
	FormalityProfessional Formality = "professional"
)

// ordinal ranks formality levels so merging can pick the most formal source.
// Unknown values rank below casual and therefore never win a merge.
func (f Formality) ordinal() int {
	switch f {
	case FormalityCasual:
		return 1
	case FormalityMedium:
		return 2
	case FormalityProfessional:
		return 3
	default:
		return 0
	}
}

// Valid reports whether f is one of the defined levels.
func (f Formality) Valid() bool {
	return f.ordinal() > 0
}

// VoiceProfile shapes how replies sound.
type VoiceProfile struct {
	Tone                  string    `yaml:"tone"`
	FormalityLevel        Formality `yaml:"formality"`
	AllowPricingInReplies bool      `yaml:"allow_pricing"`
}

// AutoReplyPolicy controls which categories may be answered automatically.
type AutoReplyPolicy struct {
	EnabledCategories []string `yaml:"enabled_categories"`
	MinConfidence     float64  `yaml:"min_confidence"`
	ExcludedDomains   []string `yaml:"excluded_domains"`
}

// FollowUpGuidelines lists preferred phrasing for follow-up replies.
type FollowUpGuidelines struct {
	PreferredPhrasing []string `yaml:"preferred_phrasing"`
}

// UpsellGuidelines controls when and how replies mention additional services.
type UpsellGuidelines struct {
	Enabled           bool     `yaml:"enabled"`
	TriggerCategories []string `yaml:"trigger_categories"`
	Text              string   `yaml:"text"`
}

// CategoryOverride tunes reply behavior for a single email category.
// Lower PriorityLevel means higher priority.
type CategoryOverride struct {
	PriorityLevel  int      `yaml:"priority_level"`
	CustomLanguage []string `yaml:"custom_language"`
}

// Signature closes every reply.
type Signature struct {
	ClosingText    string `yaml:"closing_text"`
	SignatureBlock string `yaml:"signature_block"`
}

// BaseSchema is one trade type's static behavior, voice, and label
// configuration. A merged schema for a multi-trade client has the same
// shape.
type BaseSchema struct {
	VoiceProfile      VoiceProfile                `yaml:"voice_profile"`
	BehaviorGoals     []string                    `yaml:"behavior_goals"`
	AutoReplyPolicy   AutoReplyPolicy             `yaml:"auto_reply_policy"`
	FollowUp          FollowUpGuidelines          `yaml:"follow_up"`
	Upsell            UpsellGuidelines            `yaml:"upsell"`
	CategoryOverrides map[string]CategoryOverride `yaml:"category_overrides"`
	Signature         Signature                   `yaml:"signature"`
}

// Validate checks the fields every schema must carry. A schema failing these
// checks is malformed registry data: there is no safe default to merge
// around, so registry construction treats this as a hard failure.
func (s BaseSchema) Validate() error {
	if strings.TrimSpace(s.VoiceProfile.Tone) == "" {
		return fmt.Errorf("voice profile tone is required")
	}
	if !s.VoiceProfile.FormalityLevel.Valid() {
		return fmt.Errorf("invalid formality level %q", s.VoiceProfile.FormalityLevel)
	}
	if len(s.BehaviorGoals) == 0 {
		return fmt.Errorf("at least one behavior goal is required")
	}
	if s.AutoReplyPolicy.MinConfidence < 0 || s.AutoReplyPolicy.MinConfidence > 1 {
		return fmt.Errorf("min confidence %v outside [0,1]", s.AutoReplyPolicy.MinConfidence)
	}
	if strings.TrimSpace(s.Signature.SignatureBlock) == "" {
		return fmt.Errorf("signature block is required")
	}
	return nil
}

// Entry pairs a trade's base schema with its label taxonomy extension.
type Entry struct {
	Schema    BaseSchema         `yaml:"schema"`
	Extension taxonomy.Extension `yaml:"extension"`
}
