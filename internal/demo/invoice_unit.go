package demo

import (
	"context"
	"fmt"
	"time"

	"kencana-crm/internal/adapters/persistence/models"
	"kencana-crm/internal/adapters/persistence/repositories"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InvoiceUnit raises invoices against every seeded membership.
// Statuses follow the production state machine; a paid invoice gets
// exactly one payment record, any other status gets none. The upgrade
// and paid probabilities come from configuration rather than being
// baked in.
type InvoiceUnit struct {
	gen           *DataGen
	tracker       *Tracker
	state         *State
	upgradeChance float64
	paidChance    float64
}

func (u *InvoiceUnit) Name() string { return "invoices" }

func (u *InvoiceUnit) Validate(ctx context.Context, db *gorm.DB) error {
	var memberships int64
	if err := db.WithContext(ctx).Model(&models.Membership{}).Count(&memberships).Error; err != nil {
		return err
	}
	if memberships == 0 {
		return fmt.Errorf("no memberships found, run the memberships unit first")
	}
	return nil
}

func (u *InvoiceUnit) Generate(ctx context.Context, tx *gorm.DB) error {
	invoiceRepo := repositories.NewInvoiceRepository(tx)
	membershipRepo := repositories.NewMembershipRepository(tx)
	levelRepo := repositories.NewLevelRepository(tx)

	memberships, err := membershipRepo.List(ctx)
	if err != nil {
		return err
	}
	levels, err := levelRepo.ListLevels(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	for _, membership := range memberships {
		perMembership := 1 + u.gen.Intn(2)
		for n := 0; n < perMembership; n++ {
			issuedAt := now.AddDate(0, 0, -u.gen.Intn(90))

			number, err := u.tracker.Unique(KindInvoiceNumber, func() string {
				return u.gen.InvoiceNumber(issuedAt)
			})
			if err != nil {
				return err
			}

			// Upgrade invoices snapshot both ends of the level change
			toLevel := levels[u.gen.Intn(len(levels))]
			var fromLevelID *uint
			if u.gen.Chance(u.upgradeChance) {
				for _, candidate := range levels {
					if candidate.ID != membership.LevelID {
						toLevel = candidate
						break
					}
				}
				from := membership.LevelID
				fromLevelID = &from
			} else {
				toLevel = pickLevel(levels, membership.LevelID)
			}

			status := u.rollStatus()
			invoice := &models.Invoice{
				InvoiceNumber: number,
				CustomerID:    membership.CustomerID,
				BranchID:      membership.BranchID,
				MembershipID:  membership.ID,
				FromLevelID:   fromLevelID,
				ToLevelID:     toLevel.ID,
				Amount:        toLevel.PricePerUnit,
				Status:        status,
				DueDate:       issuedAt.AddDate(0, 0, 14),
			}
			if status == models.InvoiceStatusPaid {
				paidAt := issuedAt.AddDate(0, 0, u.gen.Intn(14))
				invoice.PaidAt = &paidAt
			}

			if err := invoiceRepo.Create(ctx, invoice); err != nil {
				return fmt.Errorf("create invoice %s: %w", number, err)
			}
			u.state.InvoiceIDs = append(u.state.InvoiceIDs, invoice.ID)

			// One payment per paid invoice, none otherwise
			if status == models.InvoiceStatusPaid {
				payNumber, err := u.tracker.Unique(KindPaymentNumber, func() string {
					return u.gen.PaymentNumber(*invoice.PaidAt)
				})
				if err != nil {
					return err
				}

				methods := []string{
					models.PaymentMethodTransfer,
					models.PaymentMethodVirtualAcct,
					models.PaymentMethodCard,
				}
				payment := &models.Payment{
					InvoiceID:     invoice.ID,
					PaymentNumber: payNumber,
					Amount:        invoice.Amount,
					Method:        methods[u.gen.Intn(len(methods))],
					Reference:     uuid.NewString(),
					PaidAt:        *invoice.PaidAt,
				}
				if err := invoiceRepo.CreatePayment(ctx, payment); err != nil {
					return fmt.Errorf("create payment %s for invoice %s: %w", payNumber, number, err)
				}
			}
		}
	}

	return nil
}

// rollStatus draws an invoice status: paid with the configured
// probability, otherwise uniform over the non-paid statuses.
func (u *InvoiceUnit) rollStatus() string {
	if u.gen.Chance(u.paidChance) {
		return models.InvoiceStatusPaid
	}
	others := []string{
		models.InvoiceStatusPending,
		models.InvoiceStatusPendingPayment,
		models.InvoiceStatusCancelled,
	}
	return others[u.gen.Intn(len(others))]
}

// pickLevel returns the level currently held by the membership, or the
// first level when the membership's level is missing from the list.
func pickLevel(levels []*models.MembershipLevel, levelID uint) *models.MembershipLevel {
	for _, l := range levels {
		if l.ID == levelID {
			return l
		}
	}
	return levels[0]
}
