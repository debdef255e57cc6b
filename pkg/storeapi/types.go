package storeapi

// ProductPayload mirrors one catalog entry on the wire.
type ProductPayload struct {
	Brand       string `json:"brand"`
	Model       string `json:"model"`
	Price       int    `json:"price"`
	Description string `json:"desc"`
	ImageURL    string `json:"image"`
}

// CatalogPayload is the response body of the catalog fetch.
type CatalogPayload struct {
	Cars        []ProductPayload `json:"cars"`
	ShipmentFee int              `json:"shipment_fee"`
}

// OrderItem is one cart line as submitted, price captured at add time.
type OrderItem struct {
	Brand    string `json:"brand"`
	Model    string `json:"model"`
	Price    int    `json:"price"`
	Quantity int    `json:"quantity"`
}

// OrderRequest is the order submission body. Customer fields sit at the top
// level next to the items, matching the upstream contract.
type OrderRequest struct {
	Name    string      `json:"name"`
	Phone   string      `json:"phone"`
	Country string      `json:"country"`
	County  string      `json:"county"`
	Payment string      `json:"payment"`
	Items   []OrderItem `json:"items"`
}

// OrderResponse carries the raw status and decoded message of a submission
// that received any HTTP response. Interpretation belongs to the caller.
type OrderResponse struct {
	StatusCode int
	Message    string
}

// LoginResponse carries the raw status and decoded body of an admin login.
type LoginResponse struct {
	StatusCode int
	Success    bool
	Message    string
}
