package app

import (
	"context"
	"fmt"
	"time"
)

type HealthStatus struct {
	Status     string            `json:"status"`
	Timestamp  time.Time         `json:"timestamp"`
	Components map[string]string `json:"components"`
}

type HealthService struct {
	app *App
}

func NewHealthService(app *App) *HealthService {
	return &HealthService{app: app}
}

func (s *HealthService) Check(ctx context.Context) HealthStatus {
	_ = ctx
	status := HealthStatus{
		Status:     "up",
		Timestamp:  time.Now().UTC(),
		Components: make(map[string]string),
	}

	if cur := s.app.Current(); cur == nil {
		status.Status = "starting"
		status.Components["analysis"] = "no result yet"
	} else {
		status.Components["analysis"] = fmt.Sprintf("ok (%d modules, %d files, run %s)",
			cur.Collection.Len(), cur.FileCount, cur.RunID)
	}

	if s.app.history != nil {
		status.Components["history"] = "ok"
	} else if s.app.Config.DB.Enabled {
		status.Status = "degraded"
		status.Components["history"] = "missing but enabled in config"
	}

	if s.app.activeWatcher != nil {
		status.Components["watcher"] = "ok"
	}
	return status
}

// Report renders Check for the /health endpoint.
func (s *HealthService) Report(ctx context.Context) map[string]any {
	status := s.Check(ctx)
	return map[string]any{
		"status":     status.Status,
		"timestamp":  status.Timestamp,
		"components": status.Components,
	}
}
