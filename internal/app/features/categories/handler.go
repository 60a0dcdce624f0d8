// internal/app/features/categories/handler.go

// Package categories owns the catalog taxonomy endpoints.
package categories

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	categorystore "github.com/skillforge/skillforge/internal/app/store/categories"
	coursestore "github.com/skillforge/skillforge/internal/app/store/courses"
)

// Handler owns the category endpoints.
type Handler struct {
	Categories *categorystore.Store
	Courses    *coursestore.Store
	Log        *zap.Logger
}

// NewHandler constructs a categories Handler bound to the given database
// and logger.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Categories: categorystore.New(db),
		Courses:    coursestore.New(db),
		Log:        logger,
	}
}
