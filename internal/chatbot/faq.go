package chatbot

// DefaultEntries is the FAQ served by the site assistant.
var DefaultEntries = []Entry{
	{
		Topic:       "quote",
		Keywords:    []string{"quote", "price", "pricing", "cost", "bulk", "discount", "rfq"},
		Answer:      "Prices depend on quantity and configuration. Send us the product names and quantities through the contact form and we'll reply with a formal quote.",
		Suggestions: []string{"How long does delivery take?", "Do you offer volume discounts?"},
	},
	{
		Topic:       "datasheet",
		Keywords:    []string{"datasheet", "catalogue", "catalog", "pdf", "spec", "specification", "manual", "download"},
		Answer:      "Every product page links its catalogue PDF under the product images. If a datasheet is missing, ask us and we'll email it.",
		Suggestions: []string{"How do I request a quote?"},
	},
	{
		Topic:       "delivery",
		Keywords:    []string{"delivery", "shipping", "ship", "lead time", "dispatch", "courier", "track"},
		Answer:      "Stock items ship within 2 to 3 business days. Built-to-order equipment usually takes 2 to 4 weeks; we confirm the lead time with your quote.",
		Suggestions: []string{"Do you ship internationally?", "How do I request a quote?"},
	},
	{
		Topic:       "warranty",
		Keywords:    []string{"warranty", "guarantee", "repair", "broken", "faulty", "defect", "rma", "return"},
		Answer:      "All equipment carries a 24 month manufacturer warranty. For repairs or returns, send the serial number and a short fault description through the contact form.",
		Suggestions: []string{"How do I contact support?"},
	},
	{
		Topic:       "contact",
		Keywords:    []string{"contact", "phone", "email", "call", "sales", "support", "engineer", "talk"},
		Answer:      "You can reach our sales and support engineers through the contact form, and we answer within one business day.",
		Suggestions: []string{"How do I request a quote?", "What is the warranty?"},
	},
	{
		Topic:       "products",
		Keywords:    []string{"power supply", "psu", "oscilloscope", "multimeter", "load", "generator", "analyzer", "product", "range"},
		Answer:      "Browse the catalog by category from the menu. Each category lists its sub-ranges and the products in them, with key features and datasheets.",
		Suggestions: []string{"Where can I download a datasheet?", "How do I request a quote?"},
	},
	{
		Topic:       "newsletter",
		Keywords:    []string{"newsletter", "subscribe", "unsubscribe", "updates", "news"},
		Answer:      "Enter your email in the newsletter box at the bottom of any page to get product launches and application notes.",
		Suggestions: []string{"What products do you sell?"},
	},
}
