package compose

import (
	"fmt"
	"sort"
	"strings"

	"github.com/GTP-getaipro/FWIQ-sub005/internal/entity"
	"github.com/GTP-getaipro/FWIQ-sub005/internal/schema"
	"github.com/GTP-getaipro/FWIQ-sub005/internal/template"
)

// buildData assembles the scalar and list values a prompt template is
// evaluated against: caller-supplied business facts plus values derived from
// the merged schema. Derived values are rendered deterministically (override
// categories sort by name; everything else keeps schema order).
func buildData(merged schema.Merged, managers, suppliers []entity.Entity, facts map[string]string, strict bool) template.Data {
	scalars := make(map[string]string, len(facts)+16)
	for k, v := range facts {
		scalars[k] = v
	}

	s := merged.Schema
	scalars["Trades"] = strings.Join(merged.Trades, ", ")
	scalars["Tone"] = s.VoiceProfile.Tone
	scalars["Formality"] = string(s.VoiceProfile.FormalityLevel)
	scalars["PricingPolicy"] = pricingPolicy(s.VoiceProfile.AllowPricingInReplies)
	scalars["BehaviorGoals"] = bulleted(s.BehaviorGoals)
	scalars["PreferredPhrasing"] = bulleted(s.FollowUp.PreferredPhrasing)
	scalars["AutoReplyCategories"] = strings.Join(s.AutoReplyPolicy.EnabledCategories, ", ")
	scalars["MinConfidence"] = fmt.Sprintf("%.2f", s.AutoReplyPolicy.MinConfidence)
	scalars["ExcludedDomains"] = strings.Join(s.AutoReplyPolicy.ExcludedDomains, ", ")
	scalars["CategoryGuidance"] = categoryGuidance(s.CategoryOverrides)
	if s.Upsell.Enabled {
		scalars["UpsellText"] = s.Upsell.Text
	}

	// Signature text is schema data and may itself carry business-fact
	// placeholders; expand it before it becomes a value, since values are
	// never re-expanded.
	scalars["SignatureClosing"] = renderFragment(s.Signature.ClosingText, facts)
	scalars["SignatureBlock"] = renderFragment(s.Signature.SignatureBlock, facts)

	lists := map[string][]template.Item{
		"Managers":  managerItems(managers),
		"Suppliers": supplierItems(suppliers),
	}

	return template.Data{Scalars: scalars, Lists: lists, Strict: strict}
}

// renderFragment expands fact placeholders inside a schema-provided text
// fragment. A fragment that fails to parse is used verbatim.
func renderFragment(src string, facts map[string]string) string {
	if !strings.Contains(src, "{{") {
		return src
	}
	out, _, err := template.Render(src, template.Data{Scalars: facts})
	if err != nil {
		return src
	}
	return out
}

func pricingPolicy(allow bool) string {
	if allow {
		return "You may discuss indicative pricing when the customer asks."
	}
	return "Do not quote prices; offer to have the office prepare a quote instead."
}

func bulleted(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, line := range lines {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("- ")
		sb.WriteString(line)
	}
	return sb.String()
}

func categoryGuidance(overrides map[string]schema.CategoryOverride) string {
	if len(overrides) == 0 {
		return ""
	}
	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	for i, name := range names {
		o := overrides[name]
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("- %s (priority %d)", name, o.PriorityLevel))
		for _, line := range o.CustomLanguage {
			sb.WriteString("\n  - ")
			sb.WriteString(line)
		}
	}
	return sb.String()
}

func managerItems(managers []entity.Entity) []template.Item {
	items := make([]template.Item, len(managers))
	for i, m := range managers {
		items[i] = template.Item{"Name": m.Name, "Email": m.Email}
	}
	return items
}

func supplierItems(suppliers []entity.Entity) []template.Item {
	items := make([]template.Item, len(suppliers))
	for i, s := range suppliers {
		items[i] = template.Item{"Name": s.Name, "Domains": strings.Join(s.Domains, ", ")}
	}
	return items
}
