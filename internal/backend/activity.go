package backend

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/nhle/fleet-dispatch/internal/model"
)

// RecentActivity fetches the newest entries from the combined activity
// feed (status changes and notes), newest first.
func (c *Client) RecentActivity(ctx context.Context, limit int) ([]model.Activity, error) {
	if limit <= 0 {
		limit = 10
	}

	query := url.Values{}
	query.Set("select", "*")
	query.Set("order", "created_at.desc")
	query.Set("limit", strconv.Itoa(limit))

	var entries []model.Activity
	if err := c.get(ctx, "load_activity", query, &entries); err != nil {
		return nil, fmt.Errorf("listing recent activity: %w", err)
	}
	return entries, nil
}
