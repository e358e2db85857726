package schema

import (
	"fmt"
	"strings"
)

// Floor applied to the merged auto-reply confidence threshold. Merging must
// never produce a policy looser than any sensible single-trade default.
const minConfidenceFloor = 0.75

const (
	maxToneTokens       = 4
	maxPreferredPhrases = 6
)

// Merged is the result of folding one or more trade schemas.
type Merged struct {
	Schema   BaseSchema
	Trades   []string // resolved trade types, primary first
	Warnings []string
}

// Merge resolves the client's trade-type list against the registry and folds
// the resolved base schemas into one. Index 0 of the resolved list is the
// primary trade. Exactly one resolved schema is returned unchanged; unknown
// trades are dropped with a warning; if nothing resolves the registry's
// fallback schema is used.
//
// Merge is a pure function of its inputs and the registry.
func (r *Registry) Merge(trades []string) Merged {
	resolved, warnings := r.Resolve(trades)

	sources := make([]BaseSchema, len(resolved))
	for i, trade := range resolved {
		sources[i] = r.entries[trade].Schema
	}

	if len(sources) == 1 {
		return Merged{Schema: copySchema(sources[0]), Trades: resolved, Warnings: warnings}
	}

	merged := BaseSchema{
		VoiceProfile:      mergeVoice(sources, resolved),
		BehaviorGoals:     mergeGoals(sources, resolved),
		AutoReplyPolicy:   mergePolicy(sources),
		FollowUp:          mergeFollowUp(sources),
		Upsell:            mergeUpsell(sources, resolved),
		CategoryOverrides: mergeOverrides(sources),
		Signature:         mergeSignature(sources, resolved),
	}
	return Merged{Schema: merged, Trades: resolved, Warnings: warnings}
}

func mergeVoice(sources []BaseSchema, trades []string) VoiceProfile {
	var tokens []string
	seen := make(map[string]bool)
	for _, s := range sources {
		for _, tok := range toneTokens(s.VoiceProfile.Tone) {
			key := strings.ToLower(tok)
			if seen[key] {
				continue
			}
			seen[key] = true
			tokens = append(tokens, tok)
		}
	}
	if len(tokens) > maxToneTokens {
		tokens = tokens[:maxToneTokens]
	}
	tone := fmt.Sprintf("%s, adapted for combined %s services",
		strings.Join(tokens, ", "), joinNames(trades))

	formality := sources[0].VoiceProfile.FormalityLevel
	for _, s := range sources[1:] {
		if s.VoiceProfile.FormalityLevel.ordinal() > formality.ordinal() {
			formality = s.VoiceProfile.FormalityLevel
		}
	}

	allowPricing := false
	for _, s := range sources {
		allowPricing = allowPricing || s.VoiceProfile.AllowPricingInReplies
	}

	return VoiceProfile{Tone: tone, FormalityLevel: formality, AllowPricingInReplies: allowPricing}
}

// toneTokens splits a tone description on commas and the word "and".
func toneTokens(tone string) []string {
	normalized := strings.ReplaceAll(tone, ",", "\n")
	var out []string
	for _, part := range strings.Split(normalized, "\n") {
		for _, word := range strings.Split(" "+part+" ", " and ") {
			if trimmed := strings.TrimSpace(word); trimmed != "" {
				out = append(out, trimmed)
			}
		}
	}
	return out
}

func mergeGoals(sources []BaseSchema, trades []string) []string {
	lists := make([][]string, len(sources))
	for i, s := range sources {
		lists[i] = s.BehaviorGoals
	}
	goals := unionOrdered(lists...)
	goals = append(goals, fmt.Sprintf(
		"Coordinate scheduling and follow-up across %s jobs so multi-trade customers get one consistent experience",
		joinNames(trades)))
	return goals
}

func mergePolicy(sources []BaseSchema) AutoReplyPolicy {
	categories := make([][]string, len(sources))
	for i, s := range sources {
		categories[i] = s.AutoReplyPolicy.EnabledCategories
	}

	confidence := minConfidenceFloor
	for _, s := range sources {
		if s.AutoReplyPolicy.MinConfidence > confidence {
			confidence = s.AutoReplyPolicy.MinConfidence
		}
	}

	return AutoReplyPolicy{
		EnabledCategories: unionOrdered(categories...),
		MinConfidence:     confidence,
		// Excluded domains are client-shaped data; only the primary
		// trade's list applies.
		ExcludedDomains: copyStrings(sources[0].AutoReplyPolicy.ExcludedDomains),
	}
}

func mergeFollowUp(sources []BaseSchema) FollowUpGuidelines {
	lists := make([][]string, len(sources))
	for i, s := range sources {
		lists[i] = s.FollowUp.PreferredPhrasing
	}
	phrasing := unionOrdered(lists...)
	if len(phrasing) > maxPreferredPhrases {
		phrasing = phrasing[:maxPreferredPhrases]
	}
	return FollowUpGuidelines{PreferredPhrasing: phrasing}
}

func mergeUpsell(sources []BaseSchema, trades []string) UpsellGuidelines {
	enabled := false
	triggers := make([][]string, len(sources))
	for i, s := range sources {
		enabled = enabled || s.Upsell.Enabled
		triggers[i] = s.Upsell.TriggerCategories
	}
	return UpsellGuidelines{
		Enabled:           enabled,
		TriggerCategories: unionOrdered(triggers...),
		Text: fmt.Sprintf("Where it genuinely helps the customer, mention that we also handle %s work.",
			joinNames(trades)),
	}
}

func mergeOverrides(sources []BaseSchema) map[string]CategoryOverride {
	merged := make(map[string]CategoryOverride)
	for _, s := range sources {
		for name, override := range s.CategoryOverrides {
			existing, ok := merged[name]
			if !ok {
				merged[name] = CategoryOverride{
					PriorityLevel:  override.PriorityLevel,
					CustomLanguage: copyStrings(override.CustomLanguage),
				}
				continue
			}
			// Lower priority level wins; custom language accumulates.
			if override.PriorityLevel < existing.PriorityLevel {
				existing.PriorityLevel = override.PriorityLevel
			}
			existing.CustomLanguage = unionOrdered(existing.CustomLanguage, override.CustomLanguage)
			merged[name] = existing
		}
	}
	if len(merged) == 0 {
		return nil
	}
	return merged
}

func mergeSignature(sources []BaseSchema, trades []string) Signature {
	sig := sources[0].Signature
	sig.ClosingText = strings.TrimSpace(sig.ClosingText + "\n" +
		fmt.Sprintf("One team for your %s needs.", joinNames(trades)))
	return sig
}

// unionOrdered merges string lists into a duplicate-free list preserving
// first-seen order. Duplicates are matched by exact string.
func unionOrdered(lists ...[]string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, list := range lists {
		for _, v := range list {
			if seen[v] {
				continue
			}
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// joinNames renders a trade list as prose: "A", "A and B", "A, B and C".
func joinNames(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	}
	return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
}

func copyStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// copySchema deep-copies a schema so callers can never mutate registry data
// through a merge result.
func copySchema(s BaseSchema) BaseSchema {
	out := s
	out.BehaviorGoals = copyStrings(s.BehaviorGoals)
	out.AutoReplyPolicy.EnabledCategories = copyStrings(s.AutoReplyPolicy.EnabledCategories)
	out.AutoReplyPolicy.ExcludedDomains = copyStrings(s.AutoReplyPolicy.ExcludedDomains)
	out.FollowUp.PreferredPhrasing = copyStrings(s.FollowUp.PreferredPhrasing)
	out.Upsell.TriggerCategories = copyStrings(s.Upsell.TriggerCategories)
	if s.CategoryOverrides != nil {
		out.CategoryOverrides = make(map[string]CategoryOverride, len(s.CategoryOverrides))
		for name, o := range s.CategoryOverrides {
			o.CustomLanguage = copyStrings(o.CustomLanguage)
			out.CategoryOverrides[name] = o
		}
	}
	return out
}
