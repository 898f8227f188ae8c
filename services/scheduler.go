package services

import (
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"

	"clan-bingo-system/models"
)

// StartLifecycleScheduler flips event statuses on their timers: upcoming
// events activate at start_time and active events complete at end_time.
// Manual admin transitions remain available alongside.
func (s *EventService) StartLifecycleScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() {
			now := time.Now()

			var starting []models.BingoEvent
			err := s.DB.Where("status = ? AND start_time <= ?", models.EventStatusUpcoming, now).
				Find(&starting).Error
			if err != nil {
				log.Printf("[Scheduler] DB error: %v", err)
				return
			}
			for _, e := range starting {
				e.Status = models.EventStatusActive
				if err := s.DB.Save(&e).Error; err != nil {
					log.Printf("[Scheduler] failed to activate event %s: %v", e.ID, err)
				} else {
					log.Printf("✅ Event now active: %s", e.Name)
				}
			}

			var ending []models.BingoEvent
			// end_time > start_time filters out events created without one.
			err = s.DB.Where("status = ? AND end_time > start_time AND end_time <= ?",
				models.EventStatusActive, now).
				Find(&ending).Error
			if err != nil {
				log.Printf("[Scheduler] DB error: %v", err)
				return
			}
			for _, e := range ending {
				e.Status = models.EventStatusCompleted
				if err := s.DB.Save(&e).Error; err != nil {
					log.Printf("[Scheduler] failed to complete event %s: %v", e.ID, err)
				} else {
					log.Printf("🏁 Event completed: %s", e.Name)
				}
			}
		}),
	)
}
