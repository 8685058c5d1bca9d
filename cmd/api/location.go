package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"geolocator/internal/card"
	"geolocator/internal/location"
	"geolocator/internal/sensor"
)

// GetLocationInput is what the browser reports about its own geolocation
// attempt. Leave all sensor fields empty when the browser has no
// geolocation capability.
type GetLocationInput struct {
	Latitude     string `form:"latitude"`                  // Device latitude in decimal degrees
	Longitude    string `form:"longitude"`                 // Device longitude in decimal degrees
	ErrorCode    string `form:"error_code"`                // GeolocationPositionError code when the device request failed
	ErrorMessage string `form:"error_message"`             // GeolocationPositionError message
	IP           string `form:"ip" binding:"omitempty,ip"` // Address to geolocate instead of the caller's
}

func (in GetLocationInput) report() sensor.Report {
	return sensor.Report{
		Latitude:     in.Latitude,
		Longitude:    in.Longitude,
		ErrorCode:    in.ErrorCode,
		ErrorMessage: in.ErrorMessage,
	}
}

// LocationResponse is the location card
type LocationResponse struct {
	card.View
	Timezone string `json:"timezone,omitempty" example:"Europe/Paris"` // IANA timezone when resolved from device coordinates
}

// LocationEvent is one server-sent event of a streamed resolution
type LocationEvent struct {
	State string `json:"state" example:"pending"` // pending, resolved or failed
	LocationResponse
}

// handleGetLocation godoc
// @Summary Resolve the user's location
// @Description Resolve city and country from device coordinates, falling back to IP geolocation when they are missing, denied or cannot be reverse geocoded
// @Tags location
// @Produce json
// @Param latitude query number false "Device latitude in decimal degrees" minimum(-90) maximum(90) example(48.8566)
// @Param longitude query number false "Device longitude in decimal degrees" minimum(-180) maximum(180) example(2.3522)
// @Param error_code query int false "Geolocation error code (1 denied, 2 unavailable, 3 timeout)"
// @Param error_message query string false "Geolocation error message"
// @Param ip query string false "IP address to geolocate, defaults to the caller's address"
// @Success 200 {object} LocationResponse
// @Failure 400 {object} map[string]string
// @Failure 502 {object} LocationResponse
// @Router /location [get]
func (app *App) handleGetLocation(c *gin.Context) {
	input, s, ok := app.bindSensor(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	view := card.New(app.cfg.App.RevealDelay)
	defer view.Close()

	final, err := app.locationService.Resolve(ctx, app.locationRequest(c, input, s), view)
	if err != nil {
		app.logger.Debug("location request abandoned", "error", err)
		c.Abort()
		return
	}

	select {
	case <-view.Revealed():
	case <-ctx.Done():
		c.Abort()
		return
	}

	resp := app.locationResponse(final, view.View())
	if _, failed := final.(location.Failed); failed {
		c.JSON(http.StatusBadGateway, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// handleStreamLocation godoc
// @Summary Stream a location resolution
// @Description Same resolution as /location, streamed as server-sent events: one "state" event per transition and a final "visible" event once the card should be shown
// @Tags location
// @Produce text/event-stream
// @Param latitude query number false "Device latitude in decimal degrees" minimum(-90) maximum(90) example(48.8566)
// @Param longitude query number false "Device longitude in decimal degrees" minimum(-180) maximum(180) example(2.3522)
// @Param error_code query int false "Geolocation error code (1 denied, 2 unavailable, 3 timeout)"
// @Param error_message query string false "Geolocation error message"
// @Param ip query string false "IP address to geolocate, defaults to the caller's address"
// @Success 200 {object} LocationEvent
// @Failure 400 {object} map[string]string
// @Router /location/stream [get]
func (app *App) handleStreamLocation(c *gin.Context) {
	input, s, ok := app.bindSensor(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	view := card.New(app.cfg.App.RevealDelay)
	defer view.Close()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	// Observers run on this goroutine, so writing to c here is safe
	send := location.ObserverFunc(func(st location.State) {
		view.Observe(st)
		c.SSEvent("state", LocationEvent{
			State:            stateName(st),
			LocationResponse: app.locationResponse(st, view.View()),
		})
		c.Writer.Flush()
	})

	final, err := app.locationService.Resolve(ctx, app.locationRequest(c, input, s), send)
	if err != nil {
		app.logger.Debug("location stream abandoned", "error", err)
		return
	}

	select {
	case <-view.Revealed():
		c.SSEvent("visible", LocationEvent{
			State:            stateName(final),
			LocationResponse: app.locationResponse(final, view.View()),
		})
		c.Writer.Flush()
	case <-ctx.Done():
	}
}

// bindSensor parses the query and builds the device sensor, writing a
// 400 response when the report is malformed
func (app *App) bindSensor(c *gin.Context) (GetLocationInput, sensor.Sensor, bool) {
	var input GetLocationInput

	if err := c.ShouldBindQuery(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return input, nil, false
	}

	s, err := sensor.FromReport(input.report())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return input, nil, false
	}

	return input, s, true
}

// locationRequest geolocates the explicit ip parameter, otherwise the
// caller's own address as seen through the trusted proxies
func (app *App) locationRequest(c *gin.Context, input GetLocationInput, s sensor.Sensor) location.Request {
	ip := input.IP
	if ip == "" {
		ip = c.ClientIP()
	}
	return location.Request{Sensor: s, IP: ip}
}

func (app *App) locationResponse(st location.State, view card.View) LocationResponse {
	resp := LocationResponse{View: view}

	resolved, ok := st.(location.Resolved)
	if !ok || resolved.Position == nil {
		return resp
	}

	tz, err := app.timezoneService.Lookup(*resolved.Position)
	if err != nil {
		app.logger.Debug("no timezone for position", "position", resolved.Position.String(), "error", err)
		return resp
	}
	resp.Timezone = tz
	return resp
}

func stateName(st location.State) string {
	switch st.(type) {
	case location.Resolved:
		return "resolved"
	case location.Failed:
		return "failed"
	default:
		return "pending"
	}
}
