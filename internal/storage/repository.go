package storage

import (
	"context"
	"errors"

	"github.com/sandeepkv93/goodbuddi/internal/model"
)

var ErrNotFound = errors.New("storage: not found")

type Repository interface {
	// SaveDayPlan replaces everything stored for the plan's date.
	SaveDayPlan(ctx context.Context, in model.DayPlan) error
	GetDayPlan(ctx context.Context, dateKey string) (model.DayPlan, error)
	ListDayPlans(ctx context.Context, filter DayPlanRange) ([]model.DayPlan, error)
	DeleteDayPlan(ctx context.Context, dateKey string) error
	// SaveEventProgress writes the completed and skipped flags of an event
	// and its activities.
	SaveEventProgress(ctx context.Context, ev model.Event) error

	SaveReflection(ctx context.Context, in model.Reflection) error
	GetReflection(ctx context.Context, dateKey string) (model.Reflection, error)
	ListReflections(ctx context.Context, filter ReflectionListFilter) ([]model.Reflection, error)

	GetPhraseBook(ctx context.Context) (model.PhraseBook, error)
	SavePhraseBook(ctx context.Context, in model.PhraseBook) error
}
