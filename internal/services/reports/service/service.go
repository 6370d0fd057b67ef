// Package service runs the report pipeline and serves stored reports
package service

import (
	"context"
	"strconv"
	"strings"

	"laborreport/internal/adapters/fieldservice"
	"laborreport/internal/core/labor"
	"laborreport/internal/core/odata"
	"laborreport/internal/core/stats"
	perr "laborreport/internal/platform/errors"
	"laborreport/internal/platform/logger"
	"laborreport/internal/services/reports/domain"

	"github.com/google/uuid"
)

// Service defines the reports service contract
type Service interface {
	domain.ServicePort
	Summary(ctx context.Context, name string) (domain.Summary, error)
	Resolve(ctx context.Context, ref string) (string, error)
}

// Config tunes the pipeline
type Config struct {
	// ChunkSize is how many work order ids go into one job item query
	ChunkSize int
	// Average combines per-order allocations of proportional reports
	Average labor.AverageMode
}

// Option customizes a Svc
type Option func(*Svc)

// WithProgress reports pipeline progress to p
func WithProgress(p domain.Progress) Option { return func(s *Svc) { s.progress = p } }

// WithRunID replaces the run id generator
func WithRunID(fn func() string) Option { return func(s *Svc) { s.newID = fn } }

// Svc implements Service
type Svc struct {
	api      domain.FieldService
	store    domain.Store
	cfg      Config
	progress domain.Progress
	newID    func() string
}

var _ Service = (*Svc)(nil)

// New constructs the reports service. api may be nil for read-only use
func New(api domain.FieldService, store domain.Store, cfg Config, opts ...Option) *Svc {
	if store == nil {
		panic("reports.Service requires a non nil Store")
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = odata.DefaultChunkSize
	}
	if cfg.Average == "" {
		cfg.Average = labor.AverageDecay
	}
	s := &Svc{api: api, store: store, cfg: cfg, progress: nopProgress{}, newID: uuid.NewString}
	for _, o := range opts {
		o(s)
	}
	if s.progress == nil {
		s.progress = nopProgress{}
	}
	return s
}

// Run computes a report without storing it. Failed pages, chunks and orders
// are logged and counted in Failures; only validation, a missing roster and
// cancellation abort the run
func (s *Svc) Run(ctx context.Context, spec domain.Spec) (domain.Result, error) {
	if err := spec.Validate(); err != nil {
		return domain.Result{}, err
	}
	if s.api == nil {
		return domain.Result{}, perr.Unavailablef("field service client is not configured")
	}
	params, _ := spec.Type.Params()

	res := domain.Result{RunID: s.newID(), Name: spec.Name(), Spec: spec}
	ctx = logger.WithRun(ctx, res.RunID, res.Name)
	log := logger.C(ctx)
	log.Info().Str("type", string(spec.Type)).Msg("report run started")

	names, err := s.api.Technicians(ctx)
	if err != nil {
		if len(names) == 0 || ctx.Err() != nil {
			log.Error().Err(err).Int("status", fieldservice.StatusOf(err)).Msg("technician roster unavailable")
			return res, err
		}
		log.Warn().Err(err).Int("technicians", len(names)).Msg("roster incomplete")
		res.Failures++
	}
	roster := labor.NewRoster(names...)

	filter := odata.And(odata.CustomerFilter(params.Customers, params.Exclude), odata.DateRange(spec.Start, spec.End))
	total, err := s.api.CountWorkOrders(ctx, filter)
	if err != nil {
		log.Warn().Err(err).Msg("work order count unavailable")
		total = 0
	} else {
		log.Info().Int("work_orders", total).Msg("work orders in range")
	}

	s.progress.Start("Getting work orders", total)
	ids, err := s.api.WorkOrderIDs(ctx, filter)
	s.progress.Advance(len(ids))
	s.progress.Done()
	if err != nil {
		if ctx.Err() != nil {
			return res, ctx.Err()
		}
		log.Warn().Err(err).Int("status", fieldservice.StatusOf(err)).Int("work_orders", len(ids)).Msg("work order list incomplete")
		res.Failures++
	}
	res.Orders = len(ids)

	var st labor.Stats
	if params.Proportional {
		res.Metrics, st, err = s.allocate(ctx, ids, roster, &res)
	} else {
		res.Metrics, st, err = s.tally(ctx, ids, params.ItemTag, roster, &res)
	}
	if err != nil {
		return res, err
	}

	log.Info().
		Int("orders", res.Orders).
		Int("items", res.Items).
		Int("attributed", st.Attributed).
		Int("ignored", st.Ignored).
		Int("malformed", st.Malformed).
		Int("failures", res.Failures).
		Msg("report run finished")
	return res, nil
}

// tally sums tagged labor quantities over id chunks
func (s *Svc) tally(ctx context.Context, ids []fieldservice.ID, tag string, roster labor.Roster, res *domain.Result) (labor.Metrics, labor.Stats, error) {
	log := logger.C(ctx)
	chunks := odata.ChunkIDs(odata.FieldOrderNo, fieldservice.Strings(ids), s.cfg.ChunkSize)
	out := roster.Zero()
	var st labor.Stats

	s.progress.Start("Counting hours", len(chunks))
	defer s.progress.Done()
	for i, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return nil, st, err
		}
		items, err := s.api.JobItems(ctx, odata.And(odata.Contains(odata.FieldItem, tag), chunk))
		if err != nil {
			if ctx.Err() != nil {
				return nil, st, ctx.Err()
			}
			log.Warn().Err(err).Int("status", fieldservice.StatusOf(err)).Int("chunk", i).Int("items", len(items)).Msg("job item chunk incomplete")
			res.Failures++
		}
		m, cs := labor.Tally(items, tag, roster, log)
		for tech, v := range m {
			out[tech] += v
		}
		st.Add(cs)
		res.Items += len(items)
		s.progress.Advance(1)
	}
	return out, st, nil
}

// allocate splits each order's parts revenue by labor share and averages across orders
func (s *Svc) allocate(ctx context.Context, ids []fieldservice.ID, roster labor.Roster, res *domain.Result) (labor.Metrics, labor.Stats, error) {
	log := logger.C(ctx)
	acc := labor.NewAccumulator(s.cfg.Average, roster)
	var st labor.Stats

	s.progress.Start("Calculating parts per labor hour", len(ids))
	defer s.progress.Done()
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return nil, st, err
		}
		items, err := s.api.OrderItems(ctx, id)
		if err != nil {
			if ctx.Err() != nil {
				return nil, st, ctx.Err()
			}
			log.Warn().Err(err).Int("status", fieldservice.StatusOf(err)).Str("order", id.String()).Msg("order skipped")
			res.Failures++
			s.progress.Advance(1)
			continue
		}
		m, ost := labor.AllocateOrder(items, roster, log)
		acc.Add(m)
		st.Add(ost)
		res.Items += len(items)
		s.progress.Advance(1)
	}
	return acc.Result(), st, nil
}

// Generate runs the report and stores it under its name
func (s *Svc) Generate(ctx context.Context, spec domain.Spec) (domain.Result, error) {
	res, err := s.Run(ctx, spec)
	if err != nil {
		return res, err
	}
	if err := s.store.Upsert(res.Name, res.Metrics); err != nil {
		return res, err
	}
	res.Saved = true
	logger.C(logger.WithRun(ctx, res.RunID, res.Name)).Info().Msg("report saved")
	return res, nil
}

// List summarizes every stored report in name order
func (s *Svc) List(_ context.Context) ([]domain.Summary, error) {
	doc, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	names := doc.Names()
	out := make([]domain.Summary, 0, len(names))
	for _, n := range names {
		out = append(out, summarize(n, doc[n]))
	}
	return out, nil
}

// Summary summarizes one stored report
func (s *Svc) Summary(_ context.Context, name string) (domain.Summary, error) {
	m, err := s.store.Get(name)
	if err != nil {
		return domain.Summary{}, err
	}
	return summarize(name, m), nil
}

func summarize(name string, m domain.Metrics) domain.Summary {
	parts, _ := domain.ParseName(name)
	sum := stats.Summarize(m.Values())
	return domain.Summary{Name: name, NameParts: parts, Technicians: len(m), Mean: sum.Mean, StdDev: sum.StdDev}
}

// Get returns a stored report
func (s *Svc) Get(_ context.Context, name string) (domain.Metrics, error) {
	return s.store.Get(name)
}

// Delete removes a stored report
func (s *Svc) Delete(_ context.Context, name string) error {
	return s.store.Delete(name)
}

// Resolve turns a listing index or a report name into a stored report name
func (s *Svc) Resolve(_ context.Context, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	names, err := s.store.List()
	if err != nil {
		return "", err
	}
	if i, err := strconv.Atoi(ref); err == nil {
		if i < 0 || i >= len(names) {
			return "", perr.NotFoundf("no report at index %d", i)
		}
		return names[i], nil
	}
	for _, n := range names {
		if n == ref {
			return n, nil
		}
	}
	return "", perr.NotFoundf("report %q not found", ref)
}

type nopProgress struct{}

func (nopProgress) Start(string, int) {}
func (nopProgress) Advance(int)       {}
func (nopProgress) Done()             {}
