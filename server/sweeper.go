/******************************************************************************
 *
 *  Description :
 *
 *  Periodic maintenance: retention sweep of fully-read notifications and
 *  dispatch of due meeting reminders. The same passes run on an internal
 *  ticker and on demand through the maintenance API.
 *
 *****************************************************************************/

package main

import (
	"time"

	"github.com/mentorhub/relay/server/logs"
	"github.com/mentorhub/relay/server/store"
	"github.com/mentorhub/relay/server/store/types"
)

// runMaintenancePasses executes one retention sweep and one reminder pass.
// Returns the number of records swept and the number of reminders sent.
func runMaintenancePasses() (int, int) {
	now := types.TimeNow()

	swept, err := store.Notifications.Sweep(now.Add(-globals.notifRetention))
	if err != nil {
		logs.Err.Println("sweeper: retention sweep failed:", err)
	} else if swept > 0 {
		logs.Info.Println("sweeper: swept", swept, "notifications")
		statsInc("NotificationsSweptTotal", swept)
	}

	due, err := store.Notifications.DueReminders(now)
	if err != nil {
		logs.Err.Println("sweeper: reminder query failed:", err)
		return swept, 0
	}
	for i := range due {
		// Delivery is best-effort, same as at creation time.
		deliverNotification(&due[i])
	}
	if len(due) > 0 {
		statsInc("RemindersSentTotal", len(due))
	}

	return swept, len(due)
}

// sweeperLoop runs maintenance passes on a fixed interval until the stop
// channel closes.
func sweeperLoop(interval time.Duration, stop <-chan bool) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			runMaintenancePasses()
		case <-stop:
			logs.Info.Println("sweeper: shutdown")
			return
		}
	}
}
