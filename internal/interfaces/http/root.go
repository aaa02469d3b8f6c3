package http

import "net/http"

// HandleRoot is the unauthenticated API banner.
func HandleRoot(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"message": "Centime API v2.0",
		"status":  "operational",
		"endpoints": []string{
			"/auth/session", "/auth/me", "/auth/logout",
			"/accounts", "/transactions", "/investments",
			"/goals", "/debts", "/receivables", "/categories",
			"/products", "/shopping-lists", "/bank-connections",
			"/dashboard/summary", "/search", "/export/all", "/import/all",
			"/user/data/all (DELETE)",
		},
	})
}

// HandleHealth is the liveness probe.
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
