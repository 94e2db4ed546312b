package unleashed

// Record is a single upstream item. The shape depends entirely on the
// resource, so it stays an untyped JSON object all the way through the proxy.
type Record map[string]interface{}

type Pagination struct {
	NumberOfItems int `json:"NumberOfItems"`
	PageSize      int `json:"PageSize"`
	PageNumber    int `json:"PageNumber"`
	NumberOfPages int `json:"NumberOfPages"`
}

// Page is one upstream response.
type Page struct {
	Items      []Record   `json:"Items"`
	Pagination Pagination `json:"Pagination"`
}
