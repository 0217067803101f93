package routers

import (
	"schedule-ledger-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachScheduleEntryRoutes(router chi.Router, scheduleEntryController *controllers.ScheduleEntryController) {
	router.Get("/", scheduleEntryController.FindWeek)
	router.Post("/", scheduleEntryController.CreateEntry)
	router.Get("/{entryID}", scheduleEntryController.FindByID)
	router.Patch("/{entryID}", scheduleEntryController.UpdateEntry)
	router.Post("/{entryID}/payment", scheduleEntryController.MarkPaid)
	router.Delete("/{entryID}", scheduleEntryController.DeleteEntry)
}

func attachScheduleWeekRoutes(router chi.Router, scheduleEntryController *controllers.ScheduleEntryController) {
	router.Post("/projections", scheduleEntryController.ProjectWeek)
}

func attachClientRoutes(router chi.Router, scheduleEntryController *controllers.ScheduleEntryController) {
	router.Get("/{clientID}/schedule-entries", scheduleEntryController.FindClientEntries)
	router.Get("/{clientID}/subscription-run", scheduleEntryController.ResolveSubscriptionRun)
}
