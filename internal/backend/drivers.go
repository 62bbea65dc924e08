package backend

import (
	"context"
	"fmt"
	"net/url"

	"github.com/nhle/fleet-dispatch/internal/model"
)

// ListDrivers fetches every driver record ordered by name.
func (c *Client) ListDrivers(ctx context.Context) ([]model.Driver, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set("order", "name.asc")

	var drivers []model.Driver
	if err := c.get(ctx, "drivers", query, &drivers); err != nil {
		return nil, fmt.Errorf("listing drivers: %w", err)
	}
	return drivers, nil
}
