package fieldservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	perr "laborreport/internal/platform/errors"
)

// Table names of the resources this client reads
const (
	TableTechnicians = "FieldTechnicians"
	TableWorkOrders  = "Activity"
	TableJobItems    = "ActivityJobItems"
)

// Query selects columns and rows of one table
type Query struct {
	Select string
	Filter string
	Apply  string
}

func (q Query) values(skip, top int) url.Values {
	v := url.Values{}
	if top > 0 {
		v.Set("skip", strconv.Itoa(skip))
		v.Set("top", strconv.Itoa(top))
	}
	if q.Select != "" {
		v.Set("select", q.Select)
	}
	if q.Filter != "" {
		v.Set("filter", q.Filter)
	}
	if q.Apply != "" {
		v.Set("apply", q.Apply)
	}
	return v
}

// envelope is a paged response; a nil Value marks a single-shot payload
type envelope struct {
	Value *[]json.RawMessage `json:"value"`
	Count *int               `json:"count"`
}

func tablePath(resource string) string { return "tables/" + resource }

// Count returns the number of rows of resource matching filter via an
// aggregate apply; alias names the aggregate column in the response
func (c *Client) Count(ctx context.Context, resource, filter, alias string) (int, error) {
	apply := fmt.Sprintf("aggregate($count as %s)", alias)
	if filter != "" {
		apply = fmt.Sprintf("filter(%s)/%s", filter, apply)
	}
	body, err := c.Do(ctx, tablePath(resource), Query{Apply: apply}.values(0, 0))
	if err != nil {
		return 0, err
	}
	var env struct {
		Value []map[string]json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return 0, perr.Wrapf(err, perr.ErrorCodeJSON, "decode %s count", resource)
	}
	if len(env.Value) == 0 {
		return 0, perr.JSONErrf("%s count response has no rows", resource)
	}
	raw, ok := env.Value[0][alias]
	if !ok {
		return 0, perr.JSONErrf("%s count response has no %s", resource, alias)
	}
	n, err := atoiLoose(raw)
	if err != nil {
		return 0, perr.Wrapf(err, perr.ErrorCodeJSON, "decode %s count", resource)
	}
	return n, nil
}

// FetchAll pages through resource until a page reports fewer rows than the
// page size. A response without a value array is returned as the whole
// result. On failure the rows gathered so far are returned with the error
func (c *Client) FetchAll(ctx context.Context, resource string, q Query) ([]json.RawMessage, error) {
	var (
		out  []json.RawMessage
		top  = c.opts.PageSize
		path = tablePath(resource)
	)
	for skip := 0; ; skip += top {
		body, err := c.Do(ctx, path, q.values(skip, top))
		if err != nil {
			c.log.Error().Err(err).Str("resource", resource).Int("skip", skip).Int("rows", len(out)).Msg("fetch failed returning partial rows")
			return out, err
		}

		var env envelope
		if err := json.Unmarshal(body, &env); err != nil {
			if hasValueKey(body) {
				c.log.Error().Err(err).Str("resource", resource).Int("skip", skip).Msg("malformed envelope returning partial rows")
				return out, perr.Wrapf(err, perr.ErrorCodeJSON, "decode %s page", resource)
			}
			rows, serr := singleShot(body)
			if serr != nil {
				c.log.Error().Err(err).Str("resource", resource).Int("skip", skip).Msg("malformed page returning partial rows")
				return out, perr.Wrapf(err, perr.ErrorCodeJSON, "decode %s page", resource)
			}
			return append(out, rows...), nil
		}
		if env.Value == nil {
			rows, err := singleShot(body)
			if err != nil {
				return out, err
			}
			return append(out, rows...), nil
		}

		page := *env.Value
		out = append(out, page...)
		n := len(page)
		if env.Count != nil {
			n = *env.Count
		}
		c.log.Debug().Str("resource", resource).Int("skip", skip).Int("count", n).Msg("page fetched")
		if n < top || len(page) == 0 {
			return out, nil
		}
	}
}

// hasValueKey reports whether body is an object carrying a value member,
// i.e. a paged envelope rather than an unpaged record
func hasValueKey(body []byte) bool {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil {
		return false
	}
	_, ok := obj["value"]
	return ok
}

// singleShot splits an unpaged body into rows: array elements, or the value itself
func singleShot(body []byte) ([]json.RawMessage, error) {
	body = bytes.TrimSpace(body)
	if len(body) > 0 && body[0] == '[' {
		var rows []json.RawMessage
		if err := json.Unmarshal(body, &rows); err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeJSON, "decode unpaged response")
		}
		return rows, nil
	}
	if !json.Valid(body) {
		return nil, perr.JSONErrf("unpaged response is not JSON")
	}
	return []json.RawMessage{json.RawMessage(body)}, nil
}
