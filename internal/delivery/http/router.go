package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/sainikush/DevNexus-Central-Hub-for-Dev-Events/internal/delivery/http/controllers"
)

// NewRouter initializes the HTTP router with all application routes.
// uploadDir is the local directory backing the /uploads/ file server.
func NewRouter(eventController *controllers.EventController, bookingController *controllers.BookingController, uploadDir string) *http.ServeMux {
	mux := http.NewServeMux()

	// Events
	mux.HandleFunc("GET /events", eventController.ListEvents)
	mux.HandleFunc("POST /events", eventController.CreateEvent)
	mux.HandleFunc("GET /events/{slug}", eventController.GetEventBySlug)
	mux.HandleFunc("PATCH /events/{id}", eventController.UpdateEvent)
	mux.HandleFunc("GET /events/{slug}/similar", eventController.GetSimilarEvents)

	// Bookings
	mux.HandleFunc("POST /bookings", bookingController.CreateBooking)
	mux.HandleFunc("POST /events/{slug}/bookings", bookingController.CreateBookingBySlug)
	mux.HandleFunc("GET /events/{slug}/bookings/count", bookingController.CountBookings)

	// Uploaded event images
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
