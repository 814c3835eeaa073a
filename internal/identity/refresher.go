package identity

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// refreshWindow is how close to expiry a token may get before the
// refresher renews it.
const refreshWindow = 5 * time.Minute

// Refresher keeps the current session's ID token warm: a minutely cron
// job renews it shortly before expiry, the way the provider's browser
// SDK refreshes in the background. Without it a long-idle console would
// hit the refresh round trip on its next request.
type Refresher struct {
	supplier *Supplier
	cron     *cron.Cron
}

func NewRefresher(supplier *Supplier) *Refresher {
	return &Refresher{supplier: supplier, cron: cron.New()}
}

// Start schedules the refresh job.
func (r *Refresher) Start() error {
	if _, err := r.cron.AddFunc("@every 1m", r.tick); err != nil {
		return err
	}
	r.cron.Start()
	return nil
}

// Stop halts the scheduler; a tick already running is left to finish.
func (r *Refresher) Stop() {
	r.cron.Stop()
}

func (r *Refresher) tick() {
	sess := r.supplier.Current()
	if sess == nil || time.Until(sess.ExpiresAt) > refreshWindow {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), DefaultTimeout)
	defer cancel()

	if err := r.supplier.Refresh(ctx); err != nil {
		log.Printf("[warn] operation=proactive_refresh error=%v", err)
	}
}
