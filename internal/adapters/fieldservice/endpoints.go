package fieldservice

import (
	"context"
	"encoding/json"

	"laborreport/internal/core/labor"
	"laborreport/internal/core/odata"
)

// WorkOrderCountAlias names the aggregate column of work order counts
const WorkOrderCountAlias = "TotalWorkOrders"

// Technicians returns the full names of every field technician. Rows without
// a name are skipped
func (c *Client) Technicians(ctx context.Context) ([]string, error) {
	rows, err := c.FetchAll(ctx, TableTechnicians, Query{Select: "FullName"})
	names := make([]string, 0, len(rows))
	for _, raw := range rows {
		var r struct {
			FullName *string `json:"FullName"`
		}
		if jerr := json.Unmarshal(raw, &r); jerr != nil || r.FullName == nil {
			c.log.Warn().RawJSON("row", raw).Msg("skipping technician without FullName")
			continue
		}
		names = append(names, *r.FullName)
	}
	return names, err
}

// CountWorkOrders counts work orders matching filter
func (c *Client) CountWorkOrders(ctx context.Context, filter string) (int, error) {
	return c.Count(ctx, TableWorkOrders, filter, WorkOrderCountAlias)
}

// WorkOrderIDs returns the record ids of work orders matching filter
func (c *Client) WorkOrderIDs(ctx context.Context, filter string) ([]ID, error) {
	rows, err := c.FetchAll(ctx, TableWorkOrders, Query{Select: "RecordID", Filter: filter})
	ids := make([]ID, 0, len(rows))
	for _, raw := range rows {
		var r struct {
			RecordID *ID `json:"RecordID"`
		}
		if jerr := json.Unmarshal(raw, &r); jerr != nil || r.RecordID == nil {
			c.log.Warn().RawJSON("row", raw).Msg("skipping work order without RecordID")
			continue
		}
		ids = append(ids, *r.RecordID)
	}
	return ids, err
}

// JobItems returns the job items matching filter. Rows that do not decode are skipped
func (c *Client) JobItems(ctx context.Context, filter string) ([]labor.Item, error) {
	rows, err := c.FetchAll(ctx, TableJobItems, Query{Select: "ActivityNo, Item, Qty, Amount", Filter: filter})
	items := make([]labor.Item, 0, len(rows))
	for _, raw := range rows {
		var it labor.Item
		if jerr := json.Unmarshal(raw, &it); jerr != nil {
			c.log.Warn().Err(jerr).RawJSON("row", raw).Msg("skipping undecodable job item")
			continue
		}
		items = append(items, it)
	}
	return items, err
}

// OrderItems returns every job item of one work order
func (c *Client) OrderItems(ctx context.Context, order ID) ([]labor.Item, error) {
	return c.JobItems(ctx, odata.Eq(odata.FieldOrderNo, string(order)))
}
