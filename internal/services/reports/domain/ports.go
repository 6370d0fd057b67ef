package domain

import (
	"context"

	"laborreport/internal/adapters/fieldservice"
	"laborreport/internal/core/labor"
)

// FieldService is the slice of the field-service API the pipeline reads
type FieldService interface {
	Technicians(ctx context.Context) ([]string, error)
	CountWorkOrders(ctx context.Context, filter string) (int, error)
	WorkOrderIDs(ctx context.Context, filter string) ([]fieldservice.ID, error)
	JobItems(ctx context.Context, filter string) ([]labor.Item, error)
	OrderItems(ctx context.Context, order fieldservice.ID) ([]labor.Item, error)
}

// Store persists computed reports by name
type Store interface {
	Load() (Document, error)
	Upsert(name string, m Metrics) error
	Get(name string) (Metrics, error)
	List() ([]string, error)
	Delete(name string) error
}

// Progress receives pipeline progress; the CLI draws it, other callers pass nil
type Progress interface {
	Start(task string, total int)
	Advance(n int)
	Done()
}

// ServicePort is consumed by the CLI and the HTTP view
type ServicePort interface {
	Run(ctx context.Context, s Spec) (Result, error)
	Generate(ctx context.Context, s Spec) (Result, error)
	List(ctx context.Context) ([]Summary, error)
	Get(ctx context.Context, name string) (Metrics, error)
	Delete(ctx context.Context, name string) error
}
