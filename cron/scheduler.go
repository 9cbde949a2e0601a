package cron

import (
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
)

// StartCron schedules every registered job in registration order and starts
// the scheduler. schedules overrides a job's own schedule by name; an empty
// override disables the job.
func StartCron(schedules map[string]string) (*cron.Cron, error) {
	c := cron.New()
	Jobs()
	for _, j := range registered() {
		schedule := j.job.Schedule
		if s, ok := schedules[j.name]; ok {
			schedule = s
		}
		if schedule == "" {
			log.Printf("cron: job %s disabled", j.name)
			continue
		}
		run := j.job.Run
		if _, err := c.AddFunc(schedule, func() { run() }); err != nil {
			return nil, fmt.Errorf("failed to register job %s: %w", j.name, err)
		}
	}
	c.Start()
	return c, nil
}
