package backend

import (
	"context"
	"fmt"
	"net/url"

	"go.uber.org/zap"

	"github.com/nhle/fleet-dispatch/internal/model"
	"github.com/nhle/fleet-dispatch/internal/status"
)

// ListLoads fetches every load record, newest first.
func (c *Client) ListLoads(ctx context.Context) ([]model.Load, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set("order", "created_at.desc")

	var loads []model.Load
	if err := c.get(ctx, "loads", query, &loads); err != nil {
		return nil, fmt.Errorf("listing loads: %w", err)
	}
	return loads, nil
}

// UpdateLoadStatus persists a status change for a single load. The new
// status is normalized before it leaves the process so the backend only
// ever receives canonical values. LoadID is the business identifier
// (the "load number"), not the row primary key.
func (c *Client) UpdateLoadStatus(ctx context.Context, loadID, newStatus string) error {
	if loadID == "" {
		return fmt.Errorf("updating load status: empty load id")
	}

	canonical := status.Normalize(newStatus)

	query := url.Values{}
	query.Set("load_id", "eq."+loadID)

	body := map[string]string{"status": canonical}
	if err := c.patch(ctx, "loads", query, body); err != nil {
		return fmt.Errorf("updating status of load %s: %w", loadID, err)
	}

	c.log.Info("load status updated",
		zap.String("load_id", loadID),
		zap.String("status", canonical),
	)
	return nil
}

// UpdateLoad persists an edit to a load's descriptive fields.
func (c *Client) UpdateLoad(ctx context.Context, loadID string, edit model.LoadEdit) error {
	if loadID == "" {
		return fmt.Errorf("updating load: empty load id")
	}

	query := url.Values{}
	query.Set("load_id", "eq."+loadID)

	body := map[string]interface{}{
		"broker_name":        edit.BrokerName,
		"broker_load_number": edit.BrokerLoadNumber,
		"load_type":          edit.LoadType,
		"rate":               edit.Rate,
		"temperature":        edit.Temperature,
	}
	if err := c.patch(ctx, "loads", query, body); err != nil {
		return fmt.Errorf("updating load %s: %w", loadID, err)
	}
	return nil
}

// MigrateLegacyActive rewrites every load still carrying the deprecated
// "Active" status to in_transit. It returns the number of rows that
// matched the pre-update query; rows changed between the count and the
// update are not re-verified, so the count is best effort.
func (c *Client) MigrateLegacyActive(ctx context.Context) (int, error) {
	query := url.Values{}
	query.Set("select", "load_id")
	query.Set("status", "eq.Active")

	var matches []struct {
		LoadID string `json:"load_id"`
	}
	if err := c.get(ctx, "loads", query, &matches); err != nil {
		return 0, fmt.Errorf("counting legacy active loads: %w", err)
	}
	if len(matches) == 0 {
		return 0, nil
	}

	update := url.Values{}
	update.Set("status", "eq.Active")
	body := map[string]string{"status": status.InTransit}
	if err := c.patch(ctx, "loads", update, body); err != nil {
		return 0, fmt.Errorf("migrating legacy active loads: %w", err)
	}

	c.log.Info("migrated legacy active loads", zap.Int("count", len(matches)))
	return len(matches), nil
}
