package taxonomy

// Category names referenced by composition logic. MISC is the default
// insertion anchor for trade additions that do not declare one.
const (
	CategoryMisc      = "MISC"
	CategorySupport   = "SUPPORT"
	CategorySales     = "SALES"
	CategorySuppliers = "SUPPLIERS"
)

const (
	maxManagerSlots  = 5
	maxSupplierSlots = 10
)

// Base returns the universal label tree every client starts from. Callers
// receive a fresh deep copy so composition never mutates shared state.
func Base() []LabelNode {
	base := []LabelNode{
		{
			Name: "BANKING", Color: "#16a765", Intent: "finance",
			Children: []LabelNode{
				{Name: "Invoices", Intent: "finance_invoice"},
				{Name: "Payments", Intent: "finance_payment"},
				{Name: "Receipts", Intent: "finance_receipt"},
			},
		},
		{
			Name: "FORMS", Color: "#ffad47", Intent: "form_submission",
			Children: []LabelNode{
				{Name: "New Submissions", Intent: "form_new"},
				{Name: "Completed Forms", Intent: "form_done"},
			},
		},
		{
			Name: "REVIEWS", Color: "#f691b3", Intent: "review",
			Children: []LabelNode{
				{Name: "Positive Reviews", Intent: "review_positive"},
				{Name: "Negative Reviews", Intent: "review_negative", Critical: true},
			},
		},
		{
			Name: "MANAGER", Color: "#4a86e8", Intent: "internal_routing",
			Children: managerSlots(maxManagerSlots),
		},
		{
			Name: "SALES", Color: "#8e63ce", Intent: "sales",
			Children: []LabelNode{
				{Name: "New Leads", Intent: "sales_lead", Critical: true},
				{Name: "Quotes Sent", Intent: "sales_quote"},
				{Name: "Follow-Ups", Intent: "sales_followup"},
			},
		},
		{
			Name: "SUPPLIERS", Color: "#b99aff", Intent: "supplier",
			Children: supplierSlots(maxSupplierSlots),
		},
		{
			Name: "SUPPORT", Color: "#42d692", Intent: "support",
			Children: []LabelNode{
				{Name: "General Questions", Intent: "support_general"},
				{Name: "Appointments", Intent: "support_appointment"},
				{Name: "Warranty Claims", Intent: "support_warranty"},
			},
		},
		{
			Name: "URGENT", Color: "#fb4c2f", Intent: "urgent", Critical: true,
			Children: []LabelNode{
				{Name: "Emergency", Intent: "urgent_emergency", Critical: true},
				{Name: "Escalations", Intent: "urgent_escalation", Critical: true},
			},
		},
		{Name: CategoryMisc, Color: "#999999", Intent: "misc"},
		{
			Name: "PHONE", Color: "#ffc8af", Intent: "phone",
			Children: []LabelNode{
				{Name: "Voicemail", Intent: "phone_voicemail"},
				{Name: "Missed Calls", Intent: "phone_missed"},
			},
		},
		{Name: "PROMOTIONS", Color: "#fad165", Intent: "promotions"},
		{
			Name: "RECRUITMENT", Color: "#a2dcc1", Intent: "recruitment",
			Children: []LabelNode{
				{Name: "Applications", Intent: "recruitment_application"},
			},
		},
		{Name: "SOCIAL", Color: "#c9daf8", Intent: "social"},
	}

	out := make([]LabelNode, len(base))
	for i, n := range base {
		out[i] = n.Clone()
	}
	return out
}

func managerSlots(n int) []LabelNode {
	nodes := make([]LabelNode, n)
	for i := range nodes {
		nodes[i] = LabelNode{
			Color:  "#4a86e8",
			Intent: "internal_manager",
			Slot:   &Slot{Kind: SlotManager, Index: i + 1},
		}
	}
	return nodes
}

func supplierSlots(n int) []LabelNode {
	nodes := make([]LabelNode, n)
	for i := range nodes {
		nodes[i] = LabelNode{
			Color:  "#b99aff",
			Intent: "supplier_known",
			Slot:   &Slot{Kind: SlotSupplier, Index: i + 1},
		}
	}
	return nodes
}
