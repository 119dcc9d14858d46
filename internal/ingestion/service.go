package ingestion

import (
	"time"

	"github.com/aevon-lab/project-locus/internal/core/storage"
	"github.com/aevon-lab/project-locus/internal/task"
	"github.com/gin-gonic/gin"
)

type Service struct {
	store            storage.MeasureStore
	runner           *task.Runner
	maxBodySizeBytes int
	now              func() time.Time
}

func NewService(store storage.MeasureStore, runner *task.Runner, maxBodySizeMB int) *Service {
	if store == nil {
		panic("ingestion: store must not be nil")
	}
	if runner == nil {
		panic("ingestion: runner must not be nil")
	}
	if maxBodySizeMB <= 0 {
		maxBodySizeMB = 1 // default to 1MB
	}
	return &Service{
		store:            store,
		runner:           runner,
		maxBodySizeBytes: maxBodySizeMB * 1024 * 1024,
		now:              time.Now,
	}
}

// RegisterRoutes registers the ingestion service routes.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.POST("/v1/submit", s.SubmitHandler)
}
