package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"laborreport/internal/adapters/fieldservice"
	"laborreport/internal/core/labor"
	perr "laborreport/internal/platform/errors"
	"laborreport/internal/services/reports/domain"
	"laborreport/internal/services/reports/repo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	mu sync.Mutex

	techs    []string
	techsErr error
	ids      []fieldservice.ID
	idsErr   error
	countErr error
	items    func(filter string) ([]labor.Item, error)
	orders   map[fieldservice.ID][]labor.Item
	orderErr map[fieldservice.ID]error

	idFilters   []string
	itemFilters []string
}

func (f *fakeAPI) Technicians(context.Context) ([]string, error) { return f.techs, f.techsErr }

func (f *fakeAPI) CountWorkOrders(context.Context, string) (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return len(f.ids), nil
}

func (f *fakeAPI) WorkOrderIDs(_ context.Context, filter string) ([]fieldservice.ID, error) {
	f.mu.Lock()
	f.idFilters = append(f.idFilters, filter)
	f.mu.Unlock()
	return f.ids, f.idsErr
}

func (f *fakeAPI) JobItems(_ context.Context, filter string) ([]labor.Item, error) {
	f.mu.Lock()
	f.itemFilters = append(f.itemFilters, filter)
	f.mu.Unlock()
	if f.items == nil {
		return nil, nil
	}
	return f.items(filter)
}

func (f *fakeAPI) OrderItems(_ context.Context, id fieldservice.ID) ([]labor.Item, error) {
	if err := f.orderErr[id]; err != nil {
		return nil, err
	}
	return f.orders[id], nil
}

func str(s string) *string   { return &s }
func num(v float64) *float64 { return &v }

func laborItem(tech string, qty float64) labor.Item {
	return labor.Item{Name: str("labor:" + tech), Qty: num(qty)}
}

func partItem(name string, amount float64) labor.Item {
	return labor.Item{Name: str(name), Qty: num(1), Amount: num(amount)}
}

func ids(n int) []fieldservice.ID {
	out := make([]fieldservice.ID, n)
	for i := range out {
		out[i] = fieldservice.ID(fmt.Sprint(i))
	}
	return out
}

type recordingProgress struct {
	tasks    []string
	totals   []int
	advanced int
	done     int
}

func (p *recordingProgress) Start(task string, total int) {
	p.tasks = append(p.tasks, task)
	p.totals = append(p.totals, total)
}
func (p *recordingProgress) Advance(n int) { p.advanced += n }
func (p *recordingProgress) Done()         { p.done++ }

func newSvc(t *testing.T, api domain.FieldService, cfg Config, opts ...Option) (*Svc, *repo.FileStore) {
	t.Helper()
	store := repo.NewFile(filepath.Join(t.TempDir(), "reports.json"))
	opts = append([]Option{WithRunID(func() string { return "run-1" })}, opts...)
	return New(api, store, cfg, opts...), store
}

var jan = domain.Spec{Start: "2024-01-01", End: "2024-02-01", Type: domain.Rental}

func TestRunTallyChunksIDsAndSums(t *testing.T) {
	api := &fakeAPI{
		techs: []string{"Ron", "April"},
		ids:   ids(12),
		items: func(string) ([]labor.Item, error) {
			return []labor.Item{laborItem("Ron", 1), laborItem("Jerry", 2)}, nil
		},
	}
	prog := &recordingProgress{}
	svc, _ := newSvc(t, api, Config{ChunkSize: 5}, WithProgress(prog))

	res, err := svc.Run(context.Background(), jan)
	require.NoError(t, err)
	assert.Equal(t, domain.Metrics{"Ron": 3, "April": 0}, res.Metrics)
	assert.Equal(t, "run-1", res.RunID)
	assert.Equal(t, "2024-01-01:2024-02-01::Rental", res.Name)
	assert.Equal(t, 12, res.Orders)
	assert.Equal(t, 6, res.Items)
	assert.Zero(t, res.Failures)
	assert.False(t, res.Saved)

	assert.Equal(t, []string{
		"(EntityCompanyName eq 'Accurate Rental' or ContactsName eq 'Accurate Rental') and " +
			"ActualCompletedDate ge '2024-01-01T00:00:00' and ActualCompletedDate lt '2024-02-01T00:00:00'",
	}, api.idFilters)
	require.Len(t, api.itemFilters, 3)
	assert.Equal(t, "contains(Item,'labor:') and (ActivityNo eq '10' or ActivityNo eq '11')", api.itemFilters[2])

	assert.Equal(t, []string{"Getting work orders", "Counting hours"}, prog.tasks)
	assert.Equal(t, []int{12, 3}, prog.totals)
	assert.Equal(t, 15, prog.advanced)
	assert.Equal(t, 2, prog.done)
}

func TestRunSurvivesMissingWorkOrderCount(t *testing.T) {
	api := &fakeAPI{
		techs:    []string{"Ron"},
		ids:      ids(2),
		countErr: perr.Unavailablef("count down"),
		items: func(string) ([]labor.Item, error) {
			return []labor.Item{laborItem("Ron", 2)}, nil
		},
	}
	prog := &recordingProgress{}
	svc, _ := newSvc(t, api, Config{}, WithProgress(prog))

	res, err := svc.Run(context.Background(), jan)
	require.NoError(t, err)
	assert.Equal(t, domain.Metrics{"Ron": 2}, res.Metrics)
	assert.Zero(t, res.Failures)
	assert.Equal(t, 0, prog.totals[0])
	assert.Equal(t, 2, res.Orders)
}

func TestRunAllInternalsExcludesCustomers(t *testing.T) {
	api := &fakeAPI{techs: []string{"Ron"}}
	svc, _ := newSvc(t, api, Config{})

	spec := jan
	spec.Type = domain.AllInternals
	_, err := svc.Run(context.Background(), spec)
	require.NoError(t, err)
	require.Len(t, api.idFilters, 1)
	f := api.idFilters[0]
	assert.True(t, strings.HasPrefix(f, "(EntityCompanyName ne 'Accurate - Lost Time' and ContactsName ne 'Accurate - Lost Time') and "), f)
	assert.Equal(t, 4, strings.Count(f, "EntityCompanyName ne"))
	assert.NotContains(t, f, " or ")
}

func TestRunServiceCallsUsesItsTagWithoutCustomers(t *testing.T) {
	api := &fakeAPI{
		techs: []string{"Ann"},
		ids:   ids(1),
		items: func(string) ([]labor.Item, error) {
			return []labor.Item{{Name: str("Service call:Ann"), Qty: num(1)}, laborItem("Ann", 5)}, nil
		},
	}
	svc, _ := newSvc(t, api, Config{})

	spec := jan
	spec.Type = domain.ServiceCalls
	res, err := svc.Run(context.Background(), spec)
	require.NoError(t, err)
	assert.Equal(t, domain.Metrics{"Ann": 1}, res.Metrics)
	assert.True(t, strings.HasPrefix(api.idFilters[0], "ActualCompletedDate ge"))
	assert.True(t, strings.HasPrefix(api.itemFilters[0], "contains(Item,'Service call:') and "))
}

func TestRunChunkFailureIsCountedAndSkipped(t *testing.T) {
	calls := 0
	api := &fakeAPI{
		techs: []string{"Ron"},
		ids:   ids(20),
		items: func(string) ([]labor.Item, error) {
			calls++
			if calls == 1 {
				return nil, perr.Unavailablef("boom")
			}
			return []labor.Item{laborItem("Ron", 2)}, nil
		},
	}
	svc, _ := newSvc(t, api, Config{})

	res, err := svc.Run(context.Background(), jan)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Failures)
	assert.Equal(t, domain.Metrics{"Ron": 2}, res.Metrics)
}

func TestRunProportional(t *testing.T) {
	api := &fakeAPI{
		techs: []string{"Ron", "Leslie"},
		ids:   []fieldservice.ID{"a", "b", "c", "d"},
		orders: map[fieldservice.ID][]labor.Item{
			"a": {laborItem("Ron", 2), partItem("Filter", 10)},
			"b": {laborItem("Ron", 1), laborItem("Leslie", 1), partItem("Hose", 40)},
			"c": {laborItem("Ron", 1), {Name: str("Service Call"), Qty: num(1), Amount: num(99)}},
		},
		orderErr: map[fieldservice.ID]error{"d": errors.New("gone")},
	}
	spec := jan
	spec.Type = domain.PartsPerLaborHour

	svc, _ := newSvc(t, api, Config{})
	res, err := svc.Run(context.Background(), spec)
	require.NoError(t, err)
	// Ron: 10, then 20 -> 15, then 0 ignored
	assert.InDelta(t, 15.0, res.Metrics["Ron"], 1e-9)
	assert.InDelta(t, 20.0, res.Metrics["Leslie"], 1e-9)
	assert.Equal(t, 1, res.Failures)
	assert.Empty(t, api.itemFilters)

	svc, _ = newSvc(t, api, Config{Average: labor.AverageMean})
	res, err = svc.Run(context.Background(), spec)
	require.NoError(t, err)
	assert.InDelta(t, 15.0, res.Metrics["Ron"], 1e-9)
}

func TestRunRejectsInvalidSpec(t *testing.T) {
	api := &fakeAPI{}
	svc, _ := newSvc(t, api, Config{})
	_, err := svc.Run(context.Background(), domain.Spec{Start: "2024-01-01", End: "2023-01-01", Type: domain.Rental})
	assert.Equal(t, perr.ErrorCodeValidation, perr.CodeOf(err))
	assert.Empty(t, api.idFilters)
}

func TestRunWithoutRosterFails(t *testing.T) {
	api := &fakeAPI{techsErr: perr.Unauthorizedf("bad key")}
	svc, _ := newSvc(t, api, Config{})
	_, err := svc.Run(context.Background(), jan)
	assert.Equal(t, perr.ErrorCodeUnauthorized, perr.CodeOf(err))
}

func TestRunWithoutClientIsUnavailable(t *testing.T) {
	svc, _ := newSvc(t, nil, Config{})
	_, err := svc.Run(context.Background(), jan)
	assert.Equal(t, perr.ErrorCodeUnavailable, perr.CodeOf(err))
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	api := &fakeAPI{
		techs: []string{"Ron"},
		ids:   ids(30),
		items: func(string) ([]labor.Item, error) {
			cancel()
			return nil, nil
		},
	}
	svc, _ := newSvc(t, api, Config{})
	_, err := svc.Run(ctx, jan)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, api.itemFilters, 1)
}

func TestGenerateStoresAndListSummarizes(t *testing.T) {
	api := &fakeAPI{
		techs: []string{"Ron", "April"},
		ids:   ids(1),
		items: func(string) ([]labor.Item, error) { return []labor.Item{laborItem("Ron", 4)}, nil },
	}
	svc, store := newSvc(t, api, Config{})
	ctx := context.Background()

	res, err := svc.Generate(ctx, jan)
	require.NoError(t, err)
	assert.True(t, res.Saved)

	m, err := store.Get(res.Name)
	require.NoError(t, err)
	assert.Equal(t, domain.Metrics{"Ron": 4, "April": 0}, m)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Rental", list[0].Label)
	assert.Equal(t, 2, list[0].Technicians)
	assert.InDelta(t, 4.0, list[0].Mean, 1e-9)
	assert.InDelta(t, 2.8284271, list[0].StdDev, 1e-6)

	name, err := svc.Resolve(ctx, "0")
	require.NoError(t, err)
	assert.Equal(t, res.Name, name)
	_, err = svc.Resolve(ctx, "3")
	assert.Equal(t, perr.ErrorCodeNotFound, perr.CodeOf(err))

	require.NoError(t, svc.Delete(ctx, name))
	_, err = svc.Get(ctx, name)
	assert.Equal(t, perr.ErrorCodeNotFound, perr.CodeOf(err))
}
