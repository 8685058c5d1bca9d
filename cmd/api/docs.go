package main

// @title Geolocator API
// @version 1.0
// @description Resolves a user's approximate city and country from device coordinates, falling back to IP geolocation.

// @contact.name API Support
// @contact.email support@example.com

// @host localhost:8080
// @BasePath /
