package cron

import (
	"context"
	"time"
)

// RuleRefresher reloads cached company status rules.
type RuleRefresher interface {
	Refresh(ctx context.Context) error
}

type StatusRuleJobs struct {
	refresher RuleRefresher
	interval  time.Duration
}

func NewStatusRuleJobs(refresher RuleRefresher, interval time.Duration) *StatusRuleJobs {
	return &StatusRuleJobs{
		refresher: refresher,
		interval:  interval,
	}
}

func (j *StatusRuleJobs) RegisterJobs(scheduler *Scheduler) error {
	return scheduler.AddJob("refresh_status_rules", j.interval, j.RefreshStatusRules)
}

// RefreshStatusRules reloads the rules of every company seen since startup so that
// edits made in the HRIS admin reach the grid without waiting for the cache TTL.
func (j *StatusRuleJobs) RefreshStatusRules(ctx context.Context) error {
	return j.refresher.Refresh(ctx)
}
