package restapi

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/vino121095/valenmart-storefront/internal/storefront/core/domain/entity"
)

var (
	errEmptyPayload = errors.New("empty payload")
	errMissingID    = errors.New("missing identifier")
)

var (
	orderIDKeys     = []string{"orderId", "order_id", "oid", "id"}
	customerIDKeys  = []string{"customerId", "customer_id", "cid"}
	productIDKeys   = []string{"productId", "product_id", "pid"}
	productOrIDKeys = []string{"productId", "product_id", "pid", "id"}
	productKeys     = []string{"product", "Product", "productDetails"}
	itemsKeys       = []string{"items", "orderItems", "OrderItems", "order_items"}
)

// parseOrder validates one order object. Orders without an id are rejected;
// every other field falls back to its zero value.
func parseOrder(f fields) (entity.Order, error) {
	id := f.str(orderIDKeys...)
	if id == "" {
		return entity.Order{}, errMissingID
	}

	o := entity.Order{
		ID:         id,
		CustomerID: f.str(customerIDKeys...),
		OrderDate:  f.time("orderDate", "order_date", "createdAt", "created_at"),
		Status:     f.str("status", "orderStatus", "order_status"),
	}
	if total, ok := f.dec("totalAmount", "total_amount", "total"); ok {
		o.TotalAmount = &total
	}

	rawItems := f.list(itemsKeys...)
	o.Items = make([]entity.OrderLineItem, 0, len(rawItems))
	for _, it := range rawItems {
		item := parseLineItem(it)
		if item.OrderID == "" {
			item.OrderID = id
		}
		o.Items = append(o.Items, item)
	}
	return o, nil
}

// parseLineItem never fails. Items with no product id are kept so invoice
// totals still see their amounts; ranking skips them.
func parseLineItem(f fields) entity.OrderLineItem {
	product := f.object(productKeys...)
	productID := f.str(productIDKeys...)
	if productID == "" && product != nil {
		productID = product.str(productOrIDKeys...)
	}
	return entity.OrderLineItem{
		OrderID:   f.str("orderId", "order_id", "oid"),
		ProductID: productID,
		Quantity:  f.quantity("quantity", "qty"),
		LineTotal: f.decOrZero("lineTotal", "line_total", "totalPrice", "total_price", "amount"),
		Product:   parseSnapshot(f, product),
	}
}

// parseSnapshot reads product fields from the item itself first and from the
// nested product object second.
func parseSnapshot(item, product fields) entity.ProductSnapshot {
	pick := func(keys ...string) string {
		if s := item.str(keys...); s != "" {
			return s
		}
		return product.str(keys...)
	}
	rate := func(keys ...string) decimal.Decimal {
		if v, ok := item.dec(keys...); ok {
			return v
		}
		return product.decOrZero(keys...)
	}
	return entity.ProductSnapshot{
		Name:        pick("productName", "product_name", "name"),
		ImageRef:    pick("productImage", "product_image", "imageUrl", "image_url", "image"),
		Unit:        pick("unit", "product_unit"),
		CGSTRate:    rate("cgst", "cgstRate", "cgst_rate"),
		SGSTRate:    rate("sgst", "sgstRate", "sgst_rate"),
		DeliveryFee: rate("deliveryFee", "delivery_fee"),
	}
}

func parseProduct(f fields) (entity.Product, error) {
	id := f.str(productOrIDKeys...)
	if id == "" {
		return entity.Product{}, errMissingID
	}
	snap := parseSnapshot(f, nil)
	return entity.Product{
		ID:          id,
		Name:        snap.Name,
		CategoryID:  f.str("categoryId", "category_id", "category"),
		ImageRef:    snap.ImageRef,
		Unit:        snap.Unit,
		Price:       f.decOrZero("price", "unitPrice", "unit_price"),
		CGSTRate:    snap.CGSTRate,
		SGSTRate:    snap.SGSTRate,
		DeliveryFee: snap.DeliveryFee,
		InStock:     inStock(f),
	}, nil
}

// inStock defaults to true unless the backend says otherwise.
func inStock(f fields) bool {
	if raw := f.raw("inStock", "in_stock", "isAvailable", "is_available"); raw != nil {
		return fields{"v": raw}.boolean("v")
	}
	if stock, ok := f.dec("stock", "stockQuantity", "stock_quantity"); ok {
		return stock.IsPositive()
	}
	return true
}

func parseCategory(f fields) (entity.Category, error) {
	id := f.str("categoryId", "category_id", "cid", "id")
	if id == "" {
		return entity.Category{}, errMissingID
	}
	return entity.Category{
		ID:       id,
		Name:     f.str("categoryName", "category_name", "name"),
		ImageRef: f.str("categoryImage", "category_image", "image"),
	}, nil
}

func parseCartItem(f fields) (entity.CartItem, error) {
	id := f.str("cartId", "cart_id", "id")
	if id == "" {
		return entity.CartItem{}, errMissingID
	}
	product := f.object(productKeys...)
	productID := f.str(productIDKeys...)
	if productID == "" && product != nil {
		productID = product.str(productOrIDKeys...)
	}
	price, ok := f.dec("price", "unitPrice", "unit_price")
	if !ok && product != nil {
		price = product.decOrZero("price")
	}
	return entity.CartItem{
		ID:         id,
		CustomerID: f.str(customerIDKeys...),
		ProductID:  productID,
		Quantity:   f.quantity("quantity", "qty"),
		Price:      price,
		Product:    parseSnapshot(f, product),
	}, nil
}

func parseNotification(f fields) (entity.Notification, error) {
	id := f.str("notificationId", "notification_id", "nid", "id")
	if id == "" {
		return entity.Notification{}, errMissingID
	}
	read := f.boolean("read", "isRead", "is_read")
	if !read && f.str("status") != "" {
		read = f.boolean("status")
	}
	return entity.Notification{
		ID:         id,
		CustomerID: f.str(customerIDKeys...),
		Title:      f.str("title", "subject"),
		Message:    f.str("message", "body", "content"),
		Read:       read,
		CreatedAt:  f.time("createdAt", "created_at", "date"),
	}, nil
}

func parseProfile(f fields, customerID string) entity.CustomerProfile {
	p := entity.CustomerProfile{
		CustomerID:   f.str(customerIDKeys...),
		Name:         f.str("name", "customerName", "customer_name", "contactPersonName", "contact_person_name"),
		Email:        f.str("email"),
		Phone:        f.str("phone", "phoneNumber", "phone_number", "contactNumber", "contact_number"),
		Address:      f.str("address"),
		ImageRef:     f.str("profileImage", "profile_image", "image"),
		BusinessName: f.str("businessName", "business_name"),
	}
	if p.CustomerID == "" {
		p.CustomerID = customerID
	}
	return p
}

// parseAll applies parse to every element and drops the ones it rejects.
func parseAll[T any](list []fields, parse func(fields) (T, error)) []T {
	out := make([]T, 0, len(list))
	for _, f := range list {
		if v, err := parse(f); err == nil {
			out = append(out, v)
		}
	}
	return out
}
