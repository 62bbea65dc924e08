package backend

import (
	"context"
	"fmt"
	"net/url"

	"github.com/nhle/fleet-dispatch/internal/model"
)

// stopRow maps the pickup_locations/delivery_locations column layouts
// onto a single shape. Each table prefixes its date/time columns.
type stopRow struct {
	ID           int64  `json:"id"`
	LoadID       string `json:"load_id"`
	City         string `json:"city"`
	State        string `json:"state"`
	Zip          string `json:"zip"`
	PickupDate   string `json:"pickup_date"`
	PickupTime   string `json:"pickup_time"`
	DeliveryDate string `json:"delivery_date"`
	DeliveryTime string `json:"delivery_time"`
}

func (r stopRow) toStop() model.Stop {
	s := model.Stop{
		ID:     r.ID,
		LoadID: r.LoadID,
		City:   r.City,
		State:  r.State,
		Zip:    r.Zip,
		Date:   r.PickupDate,
		Time:   r.PickupTime,
	}
	if r.DeliveryDate != "" {
		s.Date = r.DeliveryDate
		s.Time = r.DeliveryTime
	}
	return s
}

// PickupsOn fetches the pickup stops scheduled on the given date
// (YYYY-MM-DD).
func (c *Client) PickupsOn(ctx context.Context, date string) ([]model.Stop, error) {
	return c.stopsOn(ctx, "pickup_locations", "pickup_date", date)
}

// DeliveriesOn fetches the delivery stops scheduled on the given date
// (YYYY-MM-DD).
func (c *Client) DeliveriesOn(ctx context.Context, date string) ([]model.Stop, error) {
	return c.stopsOn(ctx, "delivery_locations", "delivery_date", date)
}

func (c *Client) stopsOn(ctx context.Context, table, dateColumn, date string) ([]model.Stop, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set(dateColumn, "eq."+date)

	var rows []stopRow
	if err := c.get(ctx, table, query, &rows); err != nil {
		return nil, fmt.Errorf("listing %s for %s: %w", table, date, err)
	}

	stops := make([]model.Stop, len(rows))
	for i, r := range rows {
		stops[i] = r.toStop()
	}
	return stops, nil
}

// DeliveriesForLoad fetches the delivery stops of a single load in
// stop order, for the detail view's destination line.
func (c *Client) DeliveriesForLoad(ctx context.Context, loadID string) ([]model.Stop, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set("load_id", "eq."+loadID)
	query.Set("order", "id.asc")

	var rows []stopRow
	if err := c.get(ctx, "delivery_locations", query, &rows); err != nil {
		return nil, fmt.Errorf("listing deliveries for load %s: %w", loadID, err)
	}

	stops := make([]model.Stop, len(rows))
	for i, r := range rows {
		stops[i] = r.toStop()
	}
	return stops, nil
}
