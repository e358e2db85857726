package compose

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"github.com/GTP-getaipro/FWIQ-sub005/internal/entity"
	"github.com/GTP-getaipro/FWIQ-sub005/internal/schema"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testComposer(t *testing.T) *Composer {
	t.Helper()
	reg, err := schema.Builtin()
	require.NoError(t, err)
	return New(reg, zaptest.NewLogger(t))
}

func testRequest() Request {
	return Request{
		TradeTypes: []string{"Electrician", "HVAC"},
		Managers: []entity.Entity{
			{Name: "Dana Whitfield", Email: "dana@brightline.test"},
			{Name: "  "},
			{Name: "Marcus Cole", Email: "marcus@brightline.test"},
		},
		Suppliers: []entity.Entity{
			{Name: "Apex Electrical Supply", Domains: []string{"apexsupply.test"}},
		},
		Facts: map[string]string{
			"BusinessName":   "Brightline Electric & Air",
			"Phone":          "555-0142",
			"Website":        "https://brightline.test",
			"ServiceAreas":   "Springfield metro",
			"OperatingHours": "Mon-Fri 7am-5pm",
			"ResponseTime":   "within one business hour",
		},
	}
}

func TestComposeEndToEnd(t *testing.T) {
	c := testComposer(t)

	result, err := c.Compose(testRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, result.RequestID)
	assert.Equal(t, []string{"Electrician", "HVAC"}, result.Trades)

	// Prompt is finished text: facts and schema values resolved, no
	// unresolved markers anywhere.
	assert.Contains(t, result.Prompt, "Brightline Electric & Air")
	assert.Contains(t, result.Prompt, "555-0142")
	assert.Contains(t, result.Prompt, "Dana Whitfield")
	assert.Contains(t, result.Prompt, "dana@brightline.test")
	assert.Contains(t, result.Prompt, "Apex Electrical Supply")
	assert.NotContains(t, result.Prompt, "{{")
	assert.NotContains(t, result.Prompt, "}}")

	// Taxonomy reflects both trades' extensions and the client entities.
	assert.Contains(t, result.Taxonomy.Order, "ELECTRICAL PROJECTS")
	assert.Contains(t, result.Taxonomy.Order, "SEASONAL")
	assert.Contains(t, result.Taxonomy.Order, "Marcus Cole")
	assert.Contains(t, result.Taxonomy.Order, "Apex Electrical Supply")

	assert.True(t, result.Report.Valid, "errors: %v", result.Report.Errors)
	assert.Empty(t, result.Warnings)
}

func TestComposeSignaturePlaceholdersExpanded(t *testing.T) {
	c := testComposer(t)

	result, err := c.Compose(testRequest())
	require.NoError(t, err)

	// The built-in signature blocks reference {{BusinessName}} and
	// {{Phone}}; they must arrive in the prompt fully expanded.
	assert.Contains(t, result.Prompt, "Brightline Electric & Air — Licensed Electricians")
	assert.NotContains(t, result.Prompt, "{{BusinessName}}")
}

func TestComposeUnknownTradeWarning(t *testing.T) {
	c := testComposer(t)
	req := testRequest()
	req.TradeTypes = []string{"Electrician", "Carpenter"}

	result, err := c.Compose(req)
	require.NoError(t, err)

	assert.Equal(t, []string{"Electrician"}, result.Trades)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], `"Carpenter"`)
}

func TestComposeAllUnknownFallsBack(t *testing.T) {
	c := testComposer(t)
	req := testRequest()
	req.TradeTypes = []string{"Carpenter"}

	result, err := c.Compose(req)
	require.NoError(t, err)

	assert.Equal(t, []string{schema.FallbackTrade}, result.Trades)
	assert.True(t, result.Report.Valid)
}

func TestComposeCustomTemplate(t *testing.T) {
	c := testComposer(t)
	req := testRequest()
	req.PromptTemplate = "{{BusinessName}} handles {{Trades}}.{{#Managers}} Manager: {{.Name}}.{{/Managers}}"

	result, err := c.Compose(req)
	require.NoError(t, err)

	assert.Equal(t,
		"Brightline Electric & Air handles Electrician, HVAC. Manager: Dana Whitfield. Manager: Marcus Cole.",
		result.Prompt)
}

func TestComposeMalformedTemplateFails(t *testing.T) {
	c := testComposer(t)
	req := testRequest()
	req.PromptTemplate = "{{#Managers}}never closed"

	_, err := c.Compose(req)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "prompt template")
}

func TestComposeStrictPlaceholders(t *testing.T) {
	c := testComposer(t)
	req := testRequest()
	req.PromptTemplate = "{{BusinessName}} {{NoSuchFact}}"
	req.StrictPlaceholders = true

	result, err := c.Compose(req)
	require.NoError(t, err)

	assert.Equal(t, "Brightline Electric & Air ", result.Prompt)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "{{NoSuchFact}}")
}

func TestComposeDeterministicPrompt(t *testing.T) {
	c := testComposer(t)
	req := testRequest()

	first, err := c.Compose(req)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		again, err := c.Compose(req)
		require.NoError(t, err)
		assert.Equal(t, first.Prompt, again.Prompt)
		assert.Equal(t, first.Taxonomy, again.Taxonomy)
		assert.Equal(t, first.Report, again.Report)
	}
}

func TestComposeConcurrentClients(t *testing.T) {
	c := testComposer(t)

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			req := testRequest()
			result, err := c.Compose(req)
			assert.NoError(t, err)
			assert.True(t, result.Report.Valid)
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}

func TestComposeNoEntities(t *testing.T) {
	c := testComposer(t)
	req := testRequest()
	req.Managers = nil
	req.Suppliers = nil

	result, err := c.Compose(req)
	require.NoError(t, err)

	// Entity blocks vanish without a trace and every slot is pruned.
	assert.NotContains(t, result.Prompt, "Route internal questions")
	assert.NotContains(t, result.Prompt, "supplier correspondence")
	for _, name := range result.Taxonomy.Order {
		assert.NotContains(t, name, "Slot")
	}
	assert.True(t, result.Report.Valid)

	mgrIdx := -1
	for i, cat := range result.Taxonomy.Categories {
		if cat.Name == "MANAGER" {
			mgrIdx = i
		}
	}
	require.GreaterOrEqual(t, mgrIdx, 0)
	assert.Empty(t, result.Taxonomy.Categories[mgrIdx].Children)
}
