package main

import (
	"context"
	"fmt"
	"time"
)

func (app *application) backgroundTask(name string, fn func() error) {
	app.wg.Add(1)

	go func() {
		defer app.wg.Done()

		defer func() {
			if err := recover(); err != nil {
				app.logger.Error("background task panicked", "task", name, "error", fmt.Sprintf("%s", err))
			}
		}()

		if err := fn(); err != nil {
			app.logger.Error("background task failed", "task", name, "error", err)
		}
	}()
}

// startSessionSweeper periodically removes expired session rows. The original
// design swept only at startup; the ticker closes that gap.
func (app *application) startSessionSweeper() {
	app.backgroundTask("session-sweeper", func() error {
		ticker := time.NewTicker(app.config.session.sweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-app.stop:
				return nil
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				deleted, err := app.sessions.CleanupExpired(ctx)
				cancel()

				if err != nil {
					app.logger.Warn("session sweep failed", "error", err)
					continue
				}
				if deleted > 0 {
					app.logger.Info("expired sessions swept", "count", deleted)
				}
			}
		}
	})
}
