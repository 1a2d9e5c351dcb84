package app

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// User management
	r.HandleFunc("/api/user", deps.UserHandler.CreateUser).Methods("POST")
	r.HandleFunc("/api/user/current", deps.UserHandler.CurrentUser).Methods("GET")
	r.HandleFunc("/api/user/current", deps.UserHandler.UpdateUser).Methods("PUT")

	// Expenses
	r.HandleFunc("/api/expenses/{month}", deps.ExpenseHandler.GetMonth).Methods("GET")
	r.HandleFunc("/api/expenses/{month}/days/{day:[0-9]+}", deps.ExpenseHandler.GetDay).Methods("GET")
	r.HandleFunc("/api/expenses/{month}/days/{day:[0-9]+}", deps.ExpenseHandler.SaveDay).Methods("PUT")

	// Limits
	r.HandleFunc("/api/limits", deps.LimitsHandler.GetLimits).Methods("GET")
	r.HandleFunc("/api/limits", deps.LimitsHandler.UpdateLimits).Methods("PUT")

	// Budget summary
	r.HandleFunc("/api/budget/summary", deps.BudgetHandler.GetSummary).Methods("GET")

	// Receipts
	r.HandleFunc("/api/receipts", deps.ReceiptHandler.Upload).Methods("POST")
	r.HandleFunc("/api/receipts", deps.ReceiptHandler.List).Methods("GET")
	r.HandleFunc("/api/receipts/{name}", deps.ReceiptHandler.Get).Methods("GET")
}
