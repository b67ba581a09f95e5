// internal/app/features/statistics/handler.go
package statistics

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/vitamove/vitamove-server/internal/app/store/metrics"
	"github.com/vitamove/vitamove-server/internal/app/system/apiutil"
	"github.com/vitamove/vitamove-server/internal/app/system/timeouts"
)

// Handler serves read-only platform aggregates.
type Handler struct {
	Metrics *metricsstore.Store
	Log     *zap.Logger
}

func NewHandler(store *metricsstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Metrics: store, Log: logger}
}

// ServeGlobal handles GET /api/statistics/global. Partial failures degrade
// the affected counts to zero rather than failing the whole snapshot.
func (h *Handler) ServeGlobal(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	stats, err := h.Metrics.Global(ctx)
	if err != nil {
		h.Log.Warn("statistics: partial aggregate failure", zap.Error(err))
	}
	apiutil.WriteJSON(w, http.StatusOK, stats)
}
