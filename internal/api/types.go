package api

// Role identifies the access level of a staff member.
// The server enforces role checks on every endpoint; the client uses the
// role only to decide which screens to offer.
type Role string

const (
	// RoleAdmin can manage the catalog, inventory, and reports in addition
	// to running the checkout.
	RoleAdmin Role = "admin"

	// RoleCashier can run the checkout and browse products and orders.
	RoleCashier Role = "cashier"
)

// User is the authenticated identity as last confirmed by the POS service.
// It is an immutable snapshot - the authoritative copy always lives on the
// server and is refreshed on every session resolution.
type User struct {
	ID        int    `json:"id"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
}

// LoginRequest is the payload for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the successful login payload. ExpiresAt is informational
// only; the server remains the authority on token validity.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresAt   string `json:"expires_at"`
	User        User   `json:"user"`
}

// Category groups products in the catalog.
type Category struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
}

// Product is a purchasable catalog item. Price is a decimal carried as a
// string on the wire and is never parsed into a float.
type Product struct {
	ID         int    `json:"id"`
	SKU        string `json:"sku"`
	Name       string `json:"name"`
	CategoryID int    `json:"category_id"`
	Price      string `json:"price"`
	IsActive   bool   `json:"is_active"`
	CreatedAt  string `json:"created_at"`
}

// Inventory is the stock level for a single product.
type Inventory struct {
	ProductID int    `json:"product_id"`
	Quantity  int    `json:"quantity"`
	UpdatedAt string `json:"updated_at"`
}

// OrderItemInput is one line of an order-creation request.
type OrderItemInput struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

// OrderItem is a persisted order line, priced by the server at creation time.
type OrderItem struct {
	ID        int    `json:"id"`
	ProductID int    `json:"product_id"`
	UnitPrice string `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	LineTotal string `json:"line_total"`
}

// Order is a persisted order as returned by the POS service. TotalAmount is
// the server-computed total and is authoritative over any client estimate.
type Order struct {
	ID          int         `json:"id"`
	CreatedBy   int         `json:"created_by"`
	TotalAmount string      `json:"total_amount"`
	CreatedAt   string      `json:"created_at"`
	Items       []OrderItem `json:"items"`
}

// TopProduct is one entry in a daily report's best-seller list.
type TopProduct struct {
	ProductID int    `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Total     string `json:"total"`
}

// DailyReport aggregates one day of sales.
type DailyReport struct {
	Date        string       `json:"date"`
	OrderCount  int          `json:"order_count"`
	TotalAmount string       `json:"total_amount"`
	TopProducts []TopProduct `json:"top_products"`
}
