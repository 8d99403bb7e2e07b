package command

import (
	"fmt"

	"merchdash/internal/config"
	"merchdash/internal/db"
	"merchdash/internal/view"
)

type DbStatsCommand struct {
	View *view.Renderer
}

func (c *DbStatsCommand) Name() string {
	return "dbstats"
}

func (c *DbStatsCommand) Synopsis() string {
	return "Show the request log of the current session"
}

func (c *DbStatsCommand) Execute() error {
	if config.GetConfig().GetDbPath() == "" || !db.Enabled() {
		return fmt.Errorf("database not configured (use -db-path flag)")
	}

	sessionID := config.GetConfig().GetSessionId()
	if sessionID == "" {
		return fmt.Errorf("session ID not available")
	}

	stats, err := db.GetRequestStats(sessionID)
	if err != nil {
		return fmt.Errorf("failed to get database stats: %w", err)
	}

	c.View.DbStats(sessionID, stats)
	return nil
}
