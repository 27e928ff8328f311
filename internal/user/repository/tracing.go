package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/myduka/myduka-backend/internal/user/domain"
)

var tracer = otel.Tracer("user-repository")

// GormUserRepositoryWithTracing wraps GormUserRepository with tracing
type GormUserRepositoryWithTracing struct {
	*GormUserRepository
}

// NewGormUserRepositoryWithTracing creates a new repository with tracing
func NewGormUserRepositoryWithTracing(db *gorm.DB) *GormUserRepositoryWithTracing {
	return &GormUserRepositoryWithTracing{
		GormUserRepository: NewGormUserRepository(db),
	}
}

// FindByIDWithContext traces the per-request user lookup. The authentication
// middleware prefers this over the plain FindByID so the span lands under the
// incoming request span.
func (r *GormUserRepositoryWithTracing) FindByIDWithContext(ctx context.Context, id uint) (*domain.User, error) {
	_, span := tracer.Start(ctx, "repository.FindByID",
		trace.WithAttributes(
			attribute.Int("user.id", int(id)),
		),
	)
	defer span.End()

	user, err := r.GormUserRepository.FindByID(id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return user, nil
}
