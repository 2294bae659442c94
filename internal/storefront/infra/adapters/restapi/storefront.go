package restapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/vino121095/valenmart-storefront/internal/storefront/core/domain/entity"
	"github.com/vino121095/valenmart-storefront/internal/storefront/core/ports"
)

var (
	_ ports.CatalogService      = (*Client)(nil)
	_ ports.CartService         = (*Client)(nil)
	_ ports.NotificationService = (*Client)(nil)
	_ ports.ProfileService      = (*Client)(nil)
	_ ports.AccountService      = (*Client)(nil)
)

// ListProducts calls GET /api/product/all.
func (c *Client) ListProducts(ctx context.Context) ([]entity.Product, error) {
	const op = "products.list"
	list, err := c.getList(ctx, op, "/api/product/all")
	if err != nil {
		return nil, err
	}
	return parseAll(list, parseProduct), nil
}

// ListCategories calls GET /api/category/all.
func (c *Client) ListCategories(ctx context.Context) ([]entity.Category, error) {
	const op = "categories.list"
	list, err := c.getList(ctx, op, "/api/category/all")
	if err != nil {
		return nil, err
	}
	return parseAll(list, parseCategory), nil
}

// GetCart calls GET /api/cart/{customerId}.
func (c *Client) GetCart(ctx context.Context, customerID string) ([]entity.CartItem, error) {
	const op = "cart.get"
	list, err := c.getList(ctx, op, "/api/cart/"+url.PathEscape(customerID))
	if err != nil {
		return nil, err
	}
	return parseAll(list, parseCartItem), nil
}

type addToCartRequest struct {
	CustomerID string `json:"customerId"`
	ProductID  string `json:"productId"`
	Quantity   int    `json:"quantity"`
	Price      string `json:"price"`
}

// AddToCart calls POST /api/cart/create.
func (c *Client) AddToCart(ctx context.Context, req entity.AddToCart) (*entity.CartItem, error) {
	const op = "cart.add"
	payload, err := c.do(ctx, op, http.MethodPost, "/api/cart/create", addToCartRequest{
		CustomerID: req.CustomerID,
		ProductID:  req.ProductID,
		Quantity:   req.Quantity,
		Price:      req.Price.StringFixed(2),
	})
	if err != nil {
		return nil, err
	}
	f, err := decodeObject(payload)
	if err != nil {
		return nil, malformed(op, err)
	}
	item, err := parseCartItem(f)
	if err != nil {
		return nil, malformed(op, err)
	}
	return &item, nil
}

// RemoveFromCart calls DELETE /api/cart/delete/{cartId}.
func (c *Client) RemoveFromCart(ctx context.Context, cartID string) error {
	_, err := c.do(ctx, "cart.remove", http.MethodDelete, "/api/cart/delete/"+url.PathEscape(cartID), nil)
	return err
}

// ListNotifications calls GET /api/notification/all/{customerId}.
func (c *Client) ListNotifications(ctx context.Context, customerID string) ([]entity.Notification, error) {
	const op = "notifications.list"
	list, err := c.getList(ctx, op, "/api/notification/all/"+url.PathEscape(customerID))
	if err != nil {
		return nil, err
	}
	return parseAll(list, parseNotification), nil
}

// MarkAllRead calls PUT /api/notification/mark-read/{customerId}.
func (c *Client) MarkAllRead(ctx context.Context, customerID string) error {
	_, err := c.do(ctx, "notifications.mark_read", http.MethodPut, "/api/notification/mark-read/"+url.PathEscape(customerID), nil)
	return err
}

// GetProfile calls GET /api/customer-profile/{customerId}.
func (c *Client) GetProfile(ctx context.Context, customerID string) (*entity.CustomerProfile, error) {
	const op = "profile.get"
	payload, err := c.do(ctx, op, http.MethodGet, "/api/customer-profile/"+url.PathEscape(customerID), nil)
	if err != nil {
		return nil, err
	}
	f, err := decodeObject(payload)
	if err != nil {
		return nil, malformed(op, err)
	}
	p := parseProfile(f, customerID)
	return &p, nil
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPassword calls POST /api/forgot-password.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	_, err := c.do(ctx, "account.forgot_password", http.MethodPost, "/api/forgot-password", forgotPasswordRequest{Email: email})
	return err
}

func (c *Client) getList(ctx context.Context, op, path string) ([]fields, error) {
	payload, err := c.do(ctx, op, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	list, err := decodeList(payload)
	if err != nil {
		return nil, malformed(op, err)
	}
	return list, nil
}
