package services

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// CronService runs scheduled maintenance jobs
type CronService struct {
	membershipService *MembershipService
	cron              *cron.Cron
}

// NewCronService creates a new cron service
func NewCronService(membershipService *MembershipService) *CronService {
	return &CronService{
		membershipService: membershipService,
		cron:              cron.New(),
	}
}

// Start registers and starts the scheduled jobs
func (s *CronService) Start() error {
	// Daily at 01:00: cancel overdue invoices, move lapsed memberships
	// into grace/expired
	_, err := s.cron.AddFunc("0 1 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		changed, err := s.membershipService.ExpireOverdue(ctx)
		if err != nil {
			log.Printf("❌ Membership expiry job failed: %v", err)
			return
		}
		log.Printf("✅ Membership expiry job done, %d records updated", changed)
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	log.Println("🚀 Cron service started")
	return nil
}

// Stop stops the scheduler and waits for running jobs
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("✅ Cron service stopped")
}
