package jobs

import (
	"context"
	"time"

	"bikeshop-rental-backend/internal/logger"
)

// MarkOverdueContracts sweeps ongoing contracts past their planned end date
// and notifies the customers. The contract state is left alone; late fees are
// assessed at the counter when the bike actually comes back.
func (jr *JobRunner) MarkOverdueContracts() {
	jr.runWithRecovery("MarkOverdueContracts", func() {
		ctx := context.Background()

		overdue, err := jr.store.ContractRepository.ListOverdue(ctx, time.Now())
		if err != nil {
			logger.Error("Failed to list overdue contracts", "error", err)
			return
		}

		notified := 0
		for _, c := range overdue {
			logger.Warn("Contract overdue",
				"contract", c.Reference,
				"customer_id", c.CustomerID,
				"due", c.EndDate)

			customer, err := jr.store.CustomerRepository.GetByID(ctx, c.CustomerID)
			if err != nil {
				logger.Error("Failed to load customer for overdue notice",
					"contract", c.Reference, "error", err)
				continue
			}
			if err := jr.services.Email.SendOverdueNotice(ctx, customer.Email, customer.Name, &c); err != nil {
				logger.Error("Failed to send overdue notice",
					"contract", c.Reference, "error", err)
				continue
			}
			notified++
		}

		logger.Info("Overdue sweep completed",
			"overdue", len(overdue), "notified", notified)
	})
}

// SendReturnReminders emails customers whose ongoing rental ends within the
// configured look-ahead window.
func (jr *JobRunner) SendReturnReminders() {
	jr.runWithRecovery("SendReturnReminders", func() {
		ctx := context.Background()

		now := time.Now()
		window := time.Duration(jr.config.Rental.ReturnReminderHours) * time.Hour
		ending, err := jr.store.ContractRepository.ListEndingBetween(ctx, now, now.Add(window))
		if err != nil {
			logger.Error("Failed to list contracts ending soon", "error", err)
			return
		}

		sent := 0
		for _, c := range ending {
			customer, err := jr.store.CustomerRepository.GetByID(ctx, c.CustomerID)
			if err != nil {
				logger.Error("Failed to load customer for return reminder",
					"contract", c.Reference, "error", err)
				continue
			}
			if err := jr.services.Email.SendReturnReminder(ctx, customer.Email, customer.Name, &c); err != nil {
				logger.Error("Failed to send return reminder",
					"contract", c.Reference, "error", err)
				continue
			}
			sent++
		}

		logger.Info("Return reminders sent", "candidates", len(ending), "sent", sent)
	})
}
