package unleashed

import "time"

type ResourceType string

const (
	StockOnHand    ResourceType = "StockOnHand"
	Customers      ResourceType = "Customers"
	Invoices       ResourceType = "Invoices"
	Products       ResourceType = "Products"
	SalesOrders    ResourceType = "SalesOrders"
	CreditNotes    ResourceType = "CreditNotes"
	PurchaseOrders ResourceType = "PurchaseOrders"
)

// Resource describes how the proxy talks to one upstream collection.
type Resource struct {
	Type ResourceType
	// Path is the upstream URL segment, e.g. /SalesOrders/{page}.
	Path string
	// Whitelist restricts the filters forwarded upstream. A nil whitelist
	// forwards everything.
	Whitelist []string
	// DefaultPageSize is injected when the client does not ask for one.
	DefaultPageSize int
	// DefaultChunkSize is the page limit for the chunked routes.
	DefaultChunkSize int
	// LineField names the embedded line collection for resources that can
	// be flattened into tabular rows. Empty for flat resources.
	LineField string
	// FetchDelay spaces consecutive page fetches as a courtesy to the
	// upstream rate limits.
	FetchDelay time.Duration
}

// Registry returns the closed table of supported resources. Built once at
// startup and passed by reference; nothing mutates it afterwards.
func Registry() map[ResourceType]Resource {
	resources := []Resource{
		{
			Type:             StockOnHand,
			Path:             "StockOnHand",
			DefaultPageSize:  500,
			DefaultChunkSize: 10,
			FetchDelay:       250 * time.Millisecond,
		},
		{
			Type:             Customers,
			Path:             "Customers",
			DefaultPageSize:  1000,
			DefaultChunkSize: 15,
			FetchDelay:       100 * time.Millisecond,
		},
		{
			Type: Invoices,
			Path: "Invoices",
			Whitelist: []string{
				"startDate", "endDate", "modifiedSince", "invoiceStatus",
				"customerCode", "invoiceNumber", "orderNumber", "serialBatch",
				"pageSize",
			},
			DefaultPageSize:  1000,
			DefaultChunkSize: 15,
			LineField:        "InvoiceLines",
			FetchDelay:       100 * time.Millisecond,
		},
		{
			Type:             Products,
			Path:             "Products",
			DefaultPageSize:  1000,
			DefaultChunkSize: 15,
			FetchDelay:       100 * time.Millisecond,
		},
		{
			Type: SalesOrders,
			Path: "SalesOrders",
			Whitelist: []string{
				"startDate", "endDate", "modifiedSince", "completedAfter",
				"completedBefore", "orderStatus", "customerCode", "customerId",
				"orderNumber", "pageSize",
			},
			DefaultPageSize:  1000,
			DefaultChunkSize: 15,
			LineField:        "SalesOrderLines",
			FetchDelay:       100 * time.Millisecond,
		},
		{
			Type:             CreditNotes,
			Path:             "CreditNotes",
			DefaultPageSize:  1000,
			DefaultChunkSize: 15,
			LineField:        "CreditLines",
			FetchDelay:       100 * time.Millisecond,
		},
		{
			Type:             PurchaseOrders,
			Path:             "PurchaseOrders",
			DefaultPageSize:  1000,
			DefaultChunkSize: 15,
			LineField:        "PurchaseOrderLines",
			FetchDelay:       100 * time.Millisecond,
		},
	}
	registry := make(map[ResourceType]Resource, len(resources))
	for _, resource := range resources {
		registry[resource.Type] = resource
	}
	return registry
}
