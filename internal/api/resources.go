package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"monitor-swiezosci/internal/models"
)

func (c *Client) Units(ctx context.Context) ([]models.Unit, error) {
	var units []models.Unit
	if err := c.doJSON(ctx, "GET", "/api/units", nil, nil, &units); err != nil {
		return nil, err
	}
	return units, nil
}

func (c *Client) Unit(ctx context.Context, id int64) (*models.Unit, error) {
	var unit models.Unit
	if err := c.doJSON(ctx, "GET", fmt.Sprintf("/api/units/%d", id), nil, nil, &unit); err != nil {
		return nil, err
	}
	return &unit, nil
}

func (c *Client) CreateUnit(ctx context.Context, unit models.Unit) (*models.Unit, error) {
	var created models.Unit
	if err := c.doEnvelope(ctx, "POST", "/api/units", nil, unit, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateUnit(ctx context.Context, id int64, unit models.Unit) (*models.Unit, error) {
	var updated models.Unit
	if err := c.doEnvelope(ctx, "PUT", fmt.Sprintf("/api/units/%d", id), nil, unit, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) UpdateInventory(ctx context.Context, id int64, count int) (*models.Unit, error) {
	query := url.Values{"count": {strconv.Itoa(count)}}
	var updated models.Unit
	if err := c.doEnvelope(ctx, "PATCH", fmt.Sprintf("/api/units/%d/inventory", id), query, nil, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteUnit(ctx context.Context, id int64) error {
	return c.doEnvelope(ctx, "DELETE", fmt.Sprintf("/api/units/%d", id), nil, nil, nil)
}

func (c *Client) Devices(ctx context.Context) ([]models.Device, error) {
	var devices []models.Device
	if err := c.doJSON(ctx, "GET", "/api/devices", nil, nil, &devices); err != nil {
		return nil, err
	}
	return devices, nil
}

func (c *Client) CreateDevice(ctx context.Context, device models.Device) (*models.Device, error) {
	var created models.Device
	if err := c.doEnvelope(ctx, "POST", "/api/devices", nil, device, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateDevice(ctx context.Context, id int64, device models.Device) (*models.Device, error) {
	var updated models.Device
	if err := c.doEnvelope(ctx, "PUT", fmt.Sprintf("/api/devices/%d", id), nil, device, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteDevice(ctx context.Context, id int64) error {
	return c.doEnvelope(ctx, "DELETE", fmt.Sprintf("/api/devices/%d", id), nil, nil, nil)
}

func (c *Client) Products(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.doJSON(ctx, "GET", "/api/products", nil, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) CreateProduct(ctx context.Context, product models.Product) (*models.Product, error) {
	var created models.Product
	if err := c.doEnvelope(ctx, "POST", "/api/products", nil, product, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id int64, product models.Product) (*models.Product, error) {
	var updated models.Product
	if err := c.doEnvelope(ctx, "PUT", fmt.Sprintf("/api/products/%d", id), nil, product, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.doEnvelope(ctx, "DELETE", fmt.Sprintf("/api/products/%d", id), nil, nil, nil)
}

func (c *Client) Users(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.doJSON(ctx, "GET", "/api/users", nil, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) UpdateUser(ctx context.Context, id int64, user models.User) (*models.User, error) {
	var updated models.User
	if err := c.doEnvelope(ctx, "PUT", fmt.Sprintf("/api/users/%d", id), nil, user, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.doEnvelope(ctx, "DELETE", fmt.Sprintf("/api/users/%d", id), nil, nil, nil)
}

func (c *Client) PromoteUser(ctx context.Context, id int64) error {
	return c.doEnvelope(ctx, "PATCH", fmt.Sprintf("/api/users/%d/promote", id), nil, nil, nil)
}

func (c *Client) DemoteUser(ctx context.Context, id int64) error {
	return c.doEnvelope(ctx, "PATCH", fmt.Sprintf("/api/users/%d/demote", id), nil, nil, nil)
}
