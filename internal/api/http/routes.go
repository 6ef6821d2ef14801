// Package httpapi wires the emergency-assistant endpoints into the Fiber app.
package httpapi

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/emergencyai/emergency-assistant/internal/emergency"
	"github.com/emergencyai/emergency-assistant/internal/location"
	"github.com/emergencyai/emergency-assistant/internal/store"
)

var validate = validator.New()

// ErrorHandler renders every handler error as a JSON body with an "error"
// field, keeping fiber.Error status codes.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *emergency.Service, locations store.LocationStore, defaultLoc location.Location) {
	for _, category := range emergency.Categories {
		app.Get("/"+string(category), categoryHandler(service, category, defaultLoc))
	}

	app.Post("/save-location", saveLocationHandler(locations))

	app.Get("/status", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "operational",
			"message": "All systems are functioning normally.",
		})
	})
}

func categoryHandler(service *emergency.Service, category emergency.Category, defaultLoc location.Location) fiber.Handler {
	return func(c *fiber.Ctx) error {
		loc := location.Location{
			City:    c.Query("city", defaultLoc.City),
			Country: c.Query("country", defaultLoc.Country),
		}

		result, err := service.Fetch(c.Context(), category, loc)
		if err != nil {
			return mapFetchError(err)
		}
		return c.JSON(result.Payload())
	}
}

// mapFetchError keeps the upstream's own error text visible: a definitive
// upstream rejection maps to 404, everything else to 500.
func mapFetchError(err error) error {
	var aggErr *emergency.AggregationError
	if errors.As(err, &aggErr) {
		var upErr *emergency.UpstreamError
		if errors.As(err, &upErr) {
			return fiber.NewError(fiber.StatusNotFound, aggErr.Message)
		}
		return fiber.NewError(fiber.StatusInternalServerError, aggErr.Message)
	}
	return fiber.NewError(fiber.StatusInternalServerError, err.Error())
}

// saveLocationRequest is the POST /save-location body.
type saveLocationRequest struct {
	City    string `json:"city" validate:"required"`
	Country string `json:"country"`
}

func saveLocationHandler(locations store.LocationStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req saveLocationRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "City is required.")
		}

		country := req.Country
		if country == "" {
			country = "Unknown"
		}
		saved := store.SavedLocation{
			City:      req.City,
			Country:   country,
			Timestamp: time.Now().UTC(),
		}
		if err := locations.Save(c.Context(), saved); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Error saving location: "+err.Error())
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "Location saved successfully.",
		})
	}
}
