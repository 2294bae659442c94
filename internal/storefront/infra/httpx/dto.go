package httpx

// Money fields are strings with exactly two decimals.

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type StatsResponse struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Delivered int `json:"delivered"`
	Cancelled int `json:"cancelled"`
}

type TopProductResponse struct {
	ProductID     string `json:"product_id"`
	Name          string `json:"name"`
	ImageRef      string `json:"image_ref"`
	Unit          string `json:"unit"`
	TotalQuantity int    `json:"total_quantity"`
	OrderCount    int    `json:"order_count"`
}

type OrderSummaryResponse struct {
	OrderID     string `json:"order_id"`
	OrderDate   string `json:"order_date,omitempty"`
	Status      string `json:"status"`
	ItemCount   int    `json:"item_count"`
	TotalAmount string `json:"total_amount"`
}

type DashboardResponse struct {
	CustomerID          string                 `json:"customer_id"`
	CustomerName        string                 `json:"customer_name,omitempty"`
	Stats               StatsResponse          `json:"stats"`
	TopProducts         []TopProductResponse   `json:"top_products"`
	RecentOrders        []OrderSummaryResponse `json:"recent_orders"`
	UnreadNotifications int                    `json:"unread_notifications"`
}

type InvoiceItemResponse struct {
	ProductID   string `json:"product_id"`
	Name        string `json:"name"`
	Unit        string `json:"unit"`
	Quantity    int    `json:"quantity"`
	LineTotal   string `json:"line_total"`
	CGSTRate    string `json:"cgst_rate"`
	SGSTRate    string `json:"sgst_rate"`
	DeliveryFee string `json:"delivery_fee"`
}

type InvoiceResponse struct {
	OrderID          string                `json:"order_id"`
	OrderDate        string                `json:"order_date,omitempty"`
	Status           string                `json:"status"`
	Items            []InvoiceItemResponse `json:"items"`
	Subtotal         string                `json:"subtotal"`
	CGSTAmount       string                `json:"cgst_amount"`
	SGSTAmount       string                `json:"sgst_amount"`
	DeliveryFeeTotal string                `json:"delivery_fee_total"`
	GrandTotal       string                `json:"grand_total"`
}

type InvoiceListItemResponse struct {
	OrderID    string `json:"order_id"`
	OrderDate  string `json:"order_date,omitempty"`
	Status     string `json:"status"`
	ItemCount  int    `json:"item_count"`
	GrandTotal string `json:"grand_total"`
}

type StepResponse struct {
	Index     int    `json:"index"`
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
}

type TimelineResponse struct {
	OrderID      string         `json:"order_id"`
	Status       string         `json:"status"`
	CurrentIndex int            `json:"current_index"`
	Cancelled    bool           `json:"cancelled"`
	Steps        []StepResponse `json:"steps"`
}

type StatusHistoryResponse struct {
	RequestedStatus string `json:"requested_status"`
	Outcome         string `json:"outcome"`
	Error           string `json:"error,omitempty"`
	TraceID         string `json:"trace_id,omitempty"`
	RequestedAt     string `json:"requested_at"`
}

type ProductResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CategoryID  string `json:"category_id,omitempty"`
	ImageRef    string `json:"image_ref"`
	Unit        string `json:"unit"`
	Price       string `json:"price"`
	CGSTRate    string `json:"cgst_rate"`
	SGSTRate    string `json:"sgst_rate"`
	DeliveryFee string `json:"delivery_fee"`
	InStock     bool   `json:"in_stock"`
}

type CategoryResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageRef string `json:"image_ref,omitempty"`
}

type CartItemResponse struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	ImageRef  string `json:"image_ref"`
	Unit      string `json:"unit"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price"`
	LineTotal string `json:"line_total"`
}

type CartResponse struct {
	Items    []CartItemResponse `json:"items"`
	Subtotal string             `json:"subtotal"`
}

type AddToCartRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price"`
}

type NotificationResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Read      bool   `json:"read"`
	CreatedAt string `json:"created_at,omitempty"`
}

type NotificationsResponse struct {
	Items       []NotificationResponse `json:"items"`
	UnreadCount int                    `json:"unread_count"`
}

type ProfileResponse struct {
	CustomerID   string `json:"customer_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	ImageRef     string `json:"image_ref,omitempty"`
	BusinessName string `json:"business_name,omitempty"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
